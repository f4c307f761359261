package entity

import (
	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	Total  int64  `json:"total"`
	Status string `json:"status" gorm:"default:pending"`

	TableID uint  `json:"tableId"`
	Table   Table `json:"-"`

	Items    []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Revenues []Revenue   `json:"-"`
}

// Open reports whether the order still accepts line items. Paid and
// cancelled are terminal; both the aggregator and checkout use this
// same predicate.
func (o *Order) Open() bool {
	return o.Status != OrderPaid && o.Status != OrderCancelled
}
