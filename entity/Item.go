package entity

import (
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model
	Name  string `json:"name"`
	Price int64  `json:"price"` // minor currency unit (VND)

	// Picture holds an external image URL; Image holds an uploaded blob.
	// When both are set the blob wins (served from /api/items/:id/image).
	Picture   string `json:"picture"`
	Image     []byte `gorm:"type:blob" json:"-"`
	ImageType string `json:"-"` // e.g. "image/png"

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
