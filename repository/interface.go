package repository

import (
	"context"
	"errors"

	"storefront/models"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key already exists.
	ErrDuplicate = errors.New("duplicate key")
)

// ProductRepository defines product persistence.
type ProductRepository interface {
	FindAll(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}

// OrderRepository defines order persistence. Lookups by orderId and
// trackingToken return ErrNotFound when absent.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	FindByTrackingToken(ctx context.Context, token string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
	Delete(ctx context.Context, orderID string) (*models.Order, error)
}

// SettingsRepository stores the singleton settings record.
type SettingsRepository interface {
	// Get returns ErrNotFound until settings are first saved.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}

// UserRepository is the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// Store bundles every repository the service needs.
type Store struct {
	Products ProductRepository
	Orders   OrderRepository
	Settings SettingsRepository
	Users    UserRepository
}
