package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductUpdate is a partial update: nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	ImageURL    *string
	Quantity    *int64
}
