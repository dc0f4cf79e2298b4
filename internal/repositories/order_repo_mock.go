package repositories

import (
	"sort"
	"sync"
	"time"

	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares the product map of a MockProductRepository so Place can apply
// stock decrements with the same all-or-nothing behavior as the GORM
// implementation. Lock order is always products before orders.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository backed
// by the given product repository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// Place stores the order aggregate and decrements stock atomically.
func (r *MockOrderRepository) Place(order *models.Order, quantities map[string]int) error {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	// Check every line before mutating anything.
	for productID, qty := range quantities {
		product, ok := r.products.products[productID]
		if !ok {
			return models.NewNotFound("product", productID)
		}
		if product.CountInStock < qty {
			return models.NewConflict("stock for product %s was claimed by another order", productID)
		}
	}

	for productID, qty := range quantities {
		product := r.products.products[productID]
		product.CountInStock -= qty
		r.products.products[productID] = product
	}

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
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, models.NewNotFound("order", id)
	}
	return &order, nil
}

// GetByUser returns all orders owned by a user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// MarkPaid flips the paid flag and stamps the payment time.
func (r *MockOrderRepository) MarkPaid(id string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return models.NewNotFound("order", id)
	}
	order.IsPaid = true
	order.PaidAt = &paidAt
	r.orders[id] = order
	return nil
}
