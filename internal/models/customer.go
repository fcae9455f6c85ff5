package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:254;uniqueIndex;not null"`
	Phone     string    `gorm:"size:20"` // optional
	CreatedAt time.Time `gorm:"index"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	return ValidatePhone(c.Phone)
}
