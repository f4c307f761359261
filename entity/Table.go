package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	TableAvailable = "available"
	TableReserved  = "reserved"
	TableOccupied  = "occupied"
)

type Table struct {
	gorm.Model
	Number string `json:"number" gorm:"uniqueIndex"`
	Status string `json:"status" gorm:"default:available"`

	ReservedAt *time.Time `json:"reservedAt"`
	ExpiresAt  *time.Time `json:"expiresAt"`

	// CurrentOrderID points at the table's open order; nil when nothing is
	// in flight. Updated in the same transaction as order create/close.
	CurrentOrderID *uint `json:"currentOrderId"`

	Orders []Order `json:"-" gorm:"foreignKey:TableID"`
}

// ReservationExpired reports whether a reserved hold has lapsed at now.
func (t *Table) ReservationExpired(now time.Time) bool {
	return t.Status == TableReserved && t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
