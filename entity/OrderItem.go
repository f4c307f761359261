package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
	IsServed bool   `json:"isServed"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	ItemID uint `json:"itemId"`
	Item   Item `json:"-"`
}
