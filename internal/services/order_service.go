package services

import (
	"log"
	"time"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/rabbitmq"
)

// OrderService handles order placement and the order query operations.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil; order
// events are then skipped.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// PlaceOrder validates the cart, freezes the item snapshots and persists the
// aggregate with its stock decrements in a single transaction.
//
// Every line is validated before anything is written, so a failure on the
// last line cannot leave decrements from earlier lines behind. The price
// fields are taken from the request as supplied; a line price of zero falls
// back to the current catalog price.
func (s *OrderService) PlaceOrder(userID string, req models.PlaceOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, models.NewValidation("No order items")
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	quantities := make(map[string]int)
	for _, line := range req.OrderItems {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}

		if line.Qty <= 0 {
			return nil, models.NewValidation("Quantity must be greater than zero")
		}

		// Lines for the same product share its stock.
		if product.CountInStock < quantities[line.ProductID]+line.Qty {
			return nil, models.NewValidation("%s does not have enough stock", product.Name)
		}

		price := line.Price
		if price <= 0 {
			price = product.Price
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       line.Qty,
			Price:     price,
			Image:     product.Image,
		})
		quantities[line.ProductID] += line.Qty
	}

	order := &models.Order{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
		ShippingAddress: models.ShippingAddress{
			Address:       req.ShippingAddress.Address,
			City:          req.ShippingAddress.City,
			PostalCode:    req.ShippingAddress.PostalCode,
			Country:       req.ShippingAddress.Country,
			ShippingPrice: req.ShippingPrice,
		},
		Items: items,
	}

	if err := s.orderRepo.Place(order, quantities); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// GetOrder returns the aggregate if the caller owns it or is an admin.
func (s *OrderService) GetOrder(userID string, isAdmin bool, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, models.ErrForbidden
	}
	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (s *OrderService) ListMyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// ListAllOrders returns every order, newest first. Admin only, gated upstream.
func (s *OrderService) ListAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// MarkPaid flips the paid flag for the caller's own order (or any order for
// an admin) and stamps the payment time. Paying an already paid order leaves
// it paid and refreshes the timestamp.
func (s *OrderService) MarkPaid(userID string, isAdmin bool, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, models.ErrForbidden
	}

	now := time.Now()
	if err := s.orderRepo.MarkPaid(order.ID, now); err != nil {
		return nil, err
	}
	order.IsPaid = true
	order.PaidAt = &now

	s.publishEvent("order.paid", order)
	return order, nil
}

// publishEvent sends an order lifecycle event when a broker is attached.
// Publish failures are logged, not surfaced: the order is already committed.
func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"total":   order.TotalPrice,
		"isPaid":  order.IsPaid,
	}
	if err := s.mqClient.PublishOrderEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
