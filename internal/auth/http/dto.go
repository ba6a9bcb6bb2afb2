package http

import (
	"regexp"
	"strings"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
)

// UserResponse is the public projection of a user. The password hash and
// timestamps never leave the service.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.String(),
	}
}

// AuthResponse is the payload inside {"data": ...} for login, register and
// refresh.
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         UserResponse `json:"user"`
}

func toAuthResponse(u domain.User, pair accessPair) AuthResponse {
	return AuthResponse{
		Token:        pair.access,
		RefreshToken: pair.refresh,
		ExpiresIn:    int64(pair.expiresIn / time.Second),
		User:         toUserResponse(u),
	}
}

type accessPair struct {
	access    string
	refresh   string
	expiresIn time.Duration
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ProductResponse exposes prices in integer cents; discountPriceCents is
// omitted when the product is not on offer.
type ProductResponse struct {
	ID                 string `json:"id"`
	CategoryID         string `json:"categoryId"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	PriceCents         int64  `json:"priceCents"`
	DiscountPriceCents *int64 `json:"discountPriceCents,omitempty"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		CategoryID:         p.CategoryID,
		Name:               p.Name,
		Description:        p.Description,
		PriceCents:         p.PriceCents,
		DiscountPriceCents: p.DiscountPriceCents,
	}
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	CategoryID         string `json:"categoryId"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	PriceCents         int64  `json:"priceCents"`
	DiscountPriceCents *int64 `json:"discountPriceCents"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	passwordMinLen = 6
	passwordMaxLen = 64
)

func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(email) {
		return "email is invalid"
	}
	return ""
}

func validatePassword(password string) string {
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

func (r RegisterRequest) validate() map[string]string {
	details := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		details["name"] = "name is required"
	}
	if msg := validateEmail(r.Email); msg != "" {
		details["email"] = msg
	}
	if msg := validatePassword(r.Password); msg != "" {
		details["password"] = msg
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (r LoginRequest) validate() map[string]string {
	details := map[string]string{}
	if msg := validateEmail(r.Email); msg != "" {
		details["email"] = msg
	}
	if r.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (r CreateCategoryRequest) validate() map[string]string {
	if strings.TrimSpace(r.Name) == "" {
		return map[string]string{"name": "name is required"}
	}
	return nil
}

func (r CreateProductRequest) validate() map[string]string {
	details := map[string]string{}
	if r.CategoryID == "" {
		details["categoryId"] = "categoryId is required"
	}
	if strings.TrimSpace(r.Name) == "" {
		details["name"] = "name is required"
	}
	if r.PriceCents <= 0 {
		details["priceCents"] = "priceCents must be positive"
	}
	if r.DiscountPriceCents != nil && (*r.DiscountPriceCents <= 0 || *r.DiscountPriceCents >= r.PriceCents) {
		details["discountPriceCents"] = "discountPriceCents must be positive and below priceCents"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (r ResetPasswordRequest) validate() map[string]string {
	details := map[string]string{}
	if r.Token == "" {
		details["token"] = "token is required"
	}
	if msg := validatePassword(r.NewPassword); msg != "" {
		details["newPassword"] = msg
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
