package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`

	Items []Item `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
