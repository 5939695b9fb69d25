package models

import (
	"time"
)

// Product is a local inventory row. Rows synced from MercadoLibre carry a
// MeliID; for items with variations the MeliID is "{itemID}-{variationID}"
// so each variation gets its own row while keeping the parent recoverable.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2)"`
	Stock     int       `json:"stock"`
	MeliID    *string   `json:"meli_id" gorm:"uniqueIndex"`
	Status    string    `json:"status" gorm:"default:unknown"`
	Brand     *string   `json:"brand"`
	Size      *string   `json:"size"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupedProduct folds variation rows back under their parent
// MercadoLibre item for presentation.
type GroupedProduct struct {
	MeliID     string             `json:"meli_id"`
	Title      string             `json:"title"`
	Status     string             `json:"status"`
	Variations []ProductVariation `json:"variations"`
}

// ProductVariation is one member of a GroupedProduct.
type ProductVariation struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}
