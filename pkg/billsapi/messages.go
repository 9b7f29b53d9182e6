// Package billsapi defines the Connect RPC contract of the bills and auth
// services: procedure names, messages, handlers and clients.
package billsapi

import (
	"github.com/mmynk/billed/internal/models"
)

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

type GetBillRequest struct {
	ID string `json:"id"`
}

type GetBillResponse struct {
	Bill models.Bill `json:"bill"`
}

// CreateBillRequest carries a new bill. The submitting employee is taken
// from the session, never from the request.
type CreateBillRequest struct {
	Type       string `json:"type" validate:"required,max=64"`
	Name       string `json:"name" validate:"max=256"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount     string `json:"amount" validate:"required,numeric"`
	VAT        string `json:"vat" validate:"omitempty,numeric"`
	Pct        int    `json:"pct" validate:"gte=0,lte=100"`
	Commentary string `json:"commentary" validate:"max=1024"`
	FileURL    string `json:"fileUrl" validate:"required,url"`
	FileName   string `json:"fileName" validate:"required,max=256"`
}

type CreateBillResponse struct {
	Bill models.Bill `json:"bill"`
}

// User is the public view of an account.
type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Type        models.UserType `json:"type"`
	CreatedAt   int64           `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	DisplayName string          `json:"displayName" validate:"required"`
	Password    string          `json:"password"`
	Type        models.UserType `json:"type"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// NewUser converts a stored user to its public view.
func NewUser(u *models.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Type:        u.Type,
		CreatedAt:   u.CreatedAt,
	}
}
