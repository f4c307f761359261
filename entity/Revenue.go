package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PayCash    = "cash"
	PayCard    = "card"
	PayMomo    = "momo"
	PayZaloPay = "zalopay"
	PayBanking = "banking"
)

// Revenue is the durable record of a checkout. Amount is captured once
// from the order total and never recomputed, even if catalog prices
// change afterwards.
type Revenue struct {
	gorm.Model
	Method string    `json:"method"`
	Amount int64     `json:"amount"`
	PaidAt time.Time `json:"paidAt"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}

// ValidPayMethod reports whether m is one of the accepted payment methods.
func ValidPayMethod(m string) bool {
	switch m {
	case PayCash, PayCard, PayMomo, PayZaloPay, PayBanking:
		return true
	}
	return false
}
