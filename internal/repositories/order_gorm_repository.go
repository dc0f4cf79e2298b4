package repositories

import (
	"fmt"
	"time"

	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Place writes the order aggregate and decrements stock in one transaction.
//
// Each decrement is a conditional UPDATE guarded by count_in_stock >= qty, so
// two orders racing over the same product serialize on the row: the loser
// affects zero rows, gets a ConflictError and the transaction rolls back.
func (r *GORMOrderRepository) Place(order *models.Order, quantities map[string]int) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.ShippingAddress.OrderID = order.ID
	if order.ShippingAddress.ID == "" {
		order.ShippingAddress.ID = uuid.New().String()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for productID, qty := range quantities {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND count_in_stock >= ?", productID, qty).
				UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", qty))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", productID, res.Error)
			}
			if res.RowsAffected == 0 {
				// The product existed when the order was validated, so zero
				// affected rows means another order took the stock first.
				return models.NewConflict("stock for product %s was claimed by another order", productID)
			}
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an order with its shipping address and items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("ShippingAddress").Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders owned by a user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("ShippingAddress").Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("ShippingAddress").Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// MarkPaid flips the paid flag and stamps the payment time.
func (r *GORMOrderRepository) MarkPaid(id string, paidAt time.Time) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_paid": true, "paid_at": paidAt})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFound("order", id)
	}
	return nil
}
