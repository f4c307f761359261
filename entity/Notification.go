package entity

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	Message string `json:"message"`
	IsRead  bool   `json:"isRead"`

	TableID *uint  `json:"tableId"`
	Table   *Table `json:"-"`
}
