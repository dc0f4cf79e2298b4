package services_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

// newOrderTestEnv wires an OrderService against the in-memory repositories so
// stock movements can be asserted end to end.
func newOrderTestEnv() (*services.OrderService, *repositories.MockProductRepository, *repositories.MockOrderRepository) {
	productRepo := repositories.NewMockProductRepository()
	orderRepo := repositories.NewMockOrderRepository(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)
	return orderService, productRepo, orderRepo
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, id, name string, price float64, stock int) {
	t.Helper()
	err := repo.Create(&models.Product{
		ID:           id,
		Name:         name,
		Price:        price,
		CountInStock: stock,
		Image:        "/images/" + id + ".jpg",
	})
	assert.NoError(t, err)
}

func cartFor(items ...models.CartItem) models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		OrderItems:    items,
		PaymentMethod: "PayPal",
		TaxPrice:      1.50,
		ShippingPrice: 4.00,
		TotalPrice:    25.50,
		ShippingAddress: models.ShippingAddressRequest{
			Address:    "Jl. Merdeka 1",
			City:       "Jakarta",
			PostalCode: "10110",
			Country:    "Indonesia",
		},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)
	seedProduct(t, productRepo, "p2", "Headphones", 60.00, 10)

	order, err := orderService.PlaceOrder("user-1", cartFor(
		models.CartItem{ProductID: "p1", Qty: 2, Price: 10.00},
		models.CartItem{ProductID: "p2", Qty: 3, Price: 55.00},
	))
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, 25.50, order.TotalPrice) // totals are taken from the request
	assert.Len(t, order.Items, 2)

	// Snapshots frozen at order time
	assert.Equal(t, "Running Shoes", order.Items[0].Name)
	assert.Equal(t, 10.00, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Qty)
	assert.Equal(t, "/images/p1.jpg", order.Items[0].Image)
	assert.Equal(t, 55.00, order.Items[1].Price) // line price wins over catalog price

	// Shipping address created with the order
	assert.Equal(t, "Jakarta", order.ShippingAddress.City)
	assert.Equal(t, order.ID, order.ShippingAddress.OrderID)
	assert.Equal(t, 4.00, order.ShippingAddress.ShippingPrice)

	// Stock decreased by exactly the requested quantities
	p1, _ := productRepo.GetByID("p1")
	p2, _ := productRepo.GetByID("p2")
	assert.Equal(t, 3, p1.CountInStock)
	assert.Equal(t, 7, p2.CountInStock)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	orderService, _, orderRepo := newOrderTestEnv()

	_, err := orderService.PlaceOrder("user-1", models.PlaceOrderRequest{})
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "No order items")

	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_UnknownProduct(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	_, err := orderService.PlaceOrder("user-1", cartFor(
		models.CartItem{ProductID: "missing", Qty: 1},
	))
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestOrderService_PlaceOrder_InvalidQuantity(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	_, err := orderService.PlaceOrder("user-1", cartFor(
		models.CartItem{ProductID: "p1", Qty: 0},
	))
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	p1, _ := productRepo.GetByID("p1")
	assert.Equal(t, 5, p1.CountInStock)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	orderService, productRepo, orderRepo := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)
	seedProduct(t, productRepo, "p2", "Headphones", 60.00, 2)

	// Second line exceeds stock: nothing may change, including the first line
	_, err := orderService.PlaceOrder("user-1", cartFor(
		models.CartItem{ProductID: "p1", Qty: 2},
		models.CartItem{ProductID: "p2", Qty: 3},
	))
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "does not have enough stock")

	p1, _ := productRepo.GetByID("p1")
	p2, _ := productRepo.GetByID("p2")
	assert.Equal(t, 5, p1.CountInStock)
	assert.Equal(t, 2, p2.CountInStock)

	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_RepeatedLinesShareStock(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	// 3 + 3 over a stock of 5 must fail even though each line alone fits
	_, err := orderService.PlaceOrder("user-1", cartFor(
		models.CartItem{ProductID: "p1", Qty: 3},
		models.CartItem{ProductID: "p1", Qty: 3},
	))
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	p1, _ := productRepo.GetByID("p1")
	assert.Equal(t, 5, p1.CountInStock)
}

func TestOrderService_PlaceOrder_ConcurrentFullStock(t *testing.T) {
	orderService, productRepo, orderRepo := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 4)

	// Two orders both requesting the full remaining stock: exactly one may win
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orderService.PlaceOrder("user-1", cartFor(
				models.CartItem{ProductID: "p1", Qty: 4},
			))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var validationErr *models.ValidationError
		var conflictErr *models.ConflictError
		if !errors.As(err, &validationErr) && !errors.As(err, &conflictErr) {
			t.Errorf("loser must fail with a validation or conflict error, got %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	p1, _ := productRepo.GetByID("p1")
	assert.Equal(t, 0, p1.CountInStock)
	assert.GreaterOrEqual(t, p1.CountInStock, 0)

	orders, _ := orderRepo.GetAll()
	assert.Len(t, orders, 1)
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	placed, err := orderService.PlaceOrder("owner", cartFor(
		models.CartItem{ProductID: "p1", Qty: 1},
	))
	assert.NoError(t, err)

	// Owner can read it
	got, err := orderService.GetOrder("owner", false, placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// A stranger cannot
	_, err = orderService.GetOrder("stranger", false, placed.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// An admin can
	got, err = orderService.GetOrder("stranger", true, placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// Unknown order
	_, err = orderService.GetOrder("owner", false, "missing")
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestOrderService_SnapshotsSurviveProductEdits(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	placed, err := orderService.PlaceOrder("owner", cartFor(
		models.CartItem{ProductID: "p1", Qty: 2, Price: 10.00},
	))
	assert.NoError(t, err)

	// Edit the product after the order was placed
	product, _ := productRepo.GetByID("p1")
	product.Name = "Renamed Shoes"
	product.Price = 99.99
	product.Image = "/images/new.jpg"
	assert.NoError(t, productRepo.Update(product))

	got, err := orderService.GetOrder("owner", false, placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Running Shoes", got.Items[0].Name)
	assert.Equal(t, 10.00, got.Items[0].Price)
	assert.Equal(t, "/images/p1.jpg", got.Items[0].Image)
}

func TestOrderService_ListMyOrders_NewestFirst(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 50)

	first, err := orderService.PlaceOrder("owner", cartFor(models.CartItem{ProductID: "p1", Qty: 1}))
	assert.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := orderService.PlaceOrder("owner", cartFor(models.CartItem{ProductID: "p1", Qty: 1}))
	assert.NoError(t, err)
	_, err = orderService.PlaceOrder("someone-else", cartFor(models.CartItem{ProductID: "p1", Qty: 1}))
	assert.NoError(t, err)

	orders, err := orderService.ListMyOrders("owner")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	all, err := orderService.ListAllOrders()
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderService_MarkPaid(t *testing.T) {
	orderService, productRepo, _ := newOrderTestEnv()
	seedProduct(t, productRepo, "p1", "Running Shoes", 10.00, 5)

	placed, err := orderService.PlaceOrder("owner", cartFor(models.CartItem{ProductID: "p1", Qty: 1}))
	assert.NoError(t, err)
	assert.False(t, placed.IsPaid)
	assert.Nil(t, placed.PaidAt)

	// A stranger cannot pay someone else's order
	_, err = orderService.MarkPaid("stranger", false, placed.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	before := time.Now()
	paid, err := orderService.MarkPaid("owner", false, placed.ID)
	assert.NoError(t, err)
	assert.True(t, paid.IsPaid)
	if assert.NotNil(t, paid.PaidAt) {
		assert.False(t, paid.PaidAt.Before(before))
	}

	// Paying again keeps the order paid and refreshes the timestamp
	firstPaidAt := *paid.PaidAt
	time.Sleep(5 * time.Millisecond)
	paidAgain, err := orderService.MarkPaid("owner", false, placed.ID)
	assert.NoError(t, err)
	assert.True(t, paidAgain.IsPaid)
	assert.True(t, paidAgain.PaidAt.After(firstPaidAt))

	// Unknown order
	_, err = orderService.MarkPaid("owner", false, "missing")
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
