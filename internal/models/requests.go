package models

// Request payloads are explicit structs so malformed or unknown-shaped input
// is rejected at the boundary instead of being read permissively key by key.
// Pointer fields on the update payloads mean "leave unchanged when absent".

// CartItem is one requested line of a new order.
type CartItem struct {
	ProductID string  `json:"product" validate:"required"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// ShippingAddressRequest is the delivery address submitted with a new order.
type ShippingAddressRequest struct {
	Address    string `json:"address" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
}

// PlaceOrderRequest is the cart a client submits to create an order.
// Price fields are trusted as supplied and not recomputed server side.
type PlaceOrderRequest struct {
	OrderItems      []CartItem             `json:"orderItems" validate:"required,min=1,dive"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,max=100"`
	TaxPrice        float64                `json:"taxPrice" validate:"gte=0"`
	ShippingPrice   float64                `json:"shippingPrice" validate:"gte=0"`
	TotalPrice      float64                `json:"totalPrice" validate:"gte=0"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" validate:"required"`
}

// RegisterRequest creates a new account. Email doubles as the login name.
type RegisterRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest changes the caller's own account.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateUserRequest is the admin-side account update; it can flip the admin flag.
type UpdateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin"`
}

// CreateProductRequest creates a catalog entry. Absent fields fall back to
// sample defaults so an admin can create first and edit after.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"omitempty,max=100"`
	Brand        string  `json:"brand" validate:"omitempty,max=100"`
	Category     string  `json:"category" validate:"omitempty,max=100"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	Price        float64 `json:"price" validate:"gte=0"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
	Image        string  `json:"image" validate:"omitempty,max=255"`
}

// UpdateProductRequest is a partial catalog update.
type UpdateProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	Brand        *string  `json:"brand" validate:"omitempty,max=100"`
	Category     *string  `json:"category" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	CountInStock *int     `json:"countInStock" validate:"omitempty,gte=0"`
	Image        *string  `json:"image" validate:"omitempty,max=255"`
}
