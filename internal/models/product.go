package models

import "time"

// Product represents a catalog entry. CountInStock is the shared counter
// mutated by order placement and must never drop below zero.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID       string    `json:"userId" gorm:"type:varchar(36)"` // admin who created the product
	Name         string    `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Brand        string    `json:"brand" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Category     string    `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Description  string    `json:"description" validate:"omitempty,max=500"`
	Price        float64   `json:"price" validate:"gte=0"`
	CountInStock int       `json:"countInStock" validate:"gte=0"`
	Image        string    `json:"image" validate:"omitempty,max=255"`
	Rating       float64   `json:"rating" validate:"gte=0,lte=5"`
	NumReviews   int       `json:"numReviews" validate:"gte=0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}
