package domain

import (
	"slices"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Colors      []string  `json:"colors"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasColor reports whether color is one of the product's offered variants.
func (p *Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}
