package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
)

// Booking is a customer's table request; independent of the order/table
// lifecycle (staff assign tables by hand when the party arrives).
type Booking struct {
	gorm.Model
	CustomerName  string    `json:"name"`
	CustomerPhone string    `json:"phone"`
	BookingTime   time.Time `json:"bookingTime"`
	GuestCount    int       `json:"guests"`
	Note          string    `json:"note"`
	Status        string    `json:"status" gorm:"default:pending"`
}
