package repositories

import "gerai/internal/models"

// ProductRepository defines the interface for product data access.
// GetAll returns products newest first.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
