package models

import "time"

// Order is the root of an append-only aggregate: the order row, its shipping
// address and its items are created together in one transaction and never
// extended afterwards. Only the paid flag changes later.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" gorm:"index;type:varchar(36)"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"type:varchar(100)"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"foreignKey:OrderID"`
	Items           []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

// ShippingAddress belongs to exactly one order.
type ShippingAddress struct {
	ID            string  `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string  `json:"-" gorm:"uniqueIndex;type:varchar(36)"`
	Address       string  `json:"address" gorm:"type:varchar(255)"`
	City          string  `json:"city" gorm:"type:varchar(100)"`
	PostalCode    string  `json:"postalCode" gorm:"type:varchar(20)"`
	Country       string  `json:"country" gorm:"type:varchar(100)"`
	ShippingPrice float64 `json:"shippingPrice"`
}

// OrderItem is one line of an order. Name, Price and Image are snapshots
// frozen at order time; editing the product later does not touch them.
type OrderItem struct {
	ID        string  `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product" gorm:"type:varchar(36)"`
	Name      string  `json:"name" gorm:"type:varchar(100)"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Image     string  `json:"image" gorm:"type:varchar(255)"`
}
