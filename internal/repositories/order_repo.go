package repositories

import (
	"time"

	"gerai/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// Place persists the whole aggregate (order, shipping address, items) and
// applies the per-product stock decrements in quantities as one atomic unit.
// A product whose remaining stock no longer covers its quantity aborts the
// whole write with a ConflictError and no partial rows or decrements remain.
type OrderRepository interface {
	Place(order *models.Order, quantities map[string]int) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	MarkPaid(id string, paidAt time.Time) error
}
