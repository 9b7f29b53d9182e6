// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billed/internal/models"
)

// ErrNotFound is returned when a bill or user does not exist.
var ErrNotFound = errors.New("not found")

// BillFilter narrows ListBills. The zero value lists every bill.
type BillFilter struct {
	// Email restricts the list to bills submitted by this employee.
	Email string
}

// Store defines the interface for bill and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBill persists a new bill.
	// bill.ID and bill.CreatedAt are populated by the store when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns the bills matching filter, oldest first.
	// Dates are returned exactly as stored.
	ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error)

	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return ErrNotFound for unknown users.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// UserBills lists the bills one user may see: their own for employees,
// all bills for admins.
type UserBills struct {
	store Store
	user  *models.User
}

// ForUser scopes store to user.
func ForUser(store Store, user *models.User) *UserBills {
	return &UserBills{store: store, user: user}
}

// List returns the bills visible to the user.
func (u *UserBills) List(ctx context.Context) ([]models.Bill, error) {
	return u.store.ListBills(ctx, u.Filter())
}

// Filter returns the BillFilter applied for the user.
func (u *UserBills) Filter() BillFilter {
	if u.user.IsAdmin() {
		return BillFilter{}
	}
	return BillFilter{Email: u.user.Email}
}
