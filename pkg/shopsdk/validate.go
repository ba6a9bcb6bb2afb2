package shopsdk

import (
	"regexp"
	"strings"
)

// Mirrors the server-side rules so bad input never reaches the network.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	passwordMinLen = 6
	passwordMaxLen = 64
)

func validateLogin(email, password string) error {
	fields := map[string]string{}
	if msg := emailMessage(email); msg != "" {
		fields["email"] = msg
	}
	if password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateRegister(name, email, password string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if msg := emailMessage(email); msg != "" {
		fields["email"] = msg
	}
	if msg := passwordMessage(password); msg != "" {
		fields["password"] = msg
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func emailMessage(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(email) {
		return "email is invalid"
	}
	return ""
}

func passwordMessage(password string) string {
	if password == "" {
		return "password is required"
	}
	if len(password) < passwordMinLen {
		return "password must be at least 6 characters"
	}
	if len(password) > passwordMaxLen {
		return "password must be at most 64 characters"
	}
	return ""
}
