package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string // unique, stored lowercased
	PasswordHash string // argon2id PHC string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
