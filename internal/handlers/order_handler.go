package handlers

import (
	"log"

	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All order
// routes require authentication; the full listing additionally requires the
// admin gate.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	orders := router.Group("/orders", auth)
	orders.Post("/add", h.HandlePlaceOrder)
	orders.Get("/myorders", h.HandleGetMyOrders)
	orders.Get("/", admin, h.HandleGetAllOrders)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Put("/:id/pay", h.HandleMarkPaid)
}

// HandlePlaceOrder creates a new order from the submitted cart.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req models.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID, _ := currentUser(c)
	order, err := h.service.PlaceOrder(userID, req)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders retrieves the caller's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	orders, err := h.service.ListMyOrders(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetAllOrders retrieves all orders. Admin only.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order. The caller must own the order
// or be an admin.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, isAdmin := currentUser(c)
	order, err := h.service.GetOrder(userID, isAdmin, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleMarkPaid marks an order as paid. The caller must own the order or be
// an admin.
func (h *OrderHandler) HandleMarkPaid(c *fiber.Ctx) error {
	userID, isAdmin := currentUser(c)
	order, err := h.service.MarkPaid(userID, isAdmin, c.Params("id"))
	if err != nil {
		log.Printf("Error marking order %s paid: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}
