package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderCustomer struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:varchar(36);not null;uniqueIndex"`

	FirstName  string `gorm:"type:varchar(255);not null"`
	LastName   string `gorm:"type:varchar(255);null"`
	Email      string `gorm:"type:varchar(255);not null"`
	Phone      string `gorm:"type:varchar(20);not null"`
	Address    string `gorm:"type:text;not null"`
	Newsletter bool   `gorm:"default:false"`
	SaveInfo   bool   `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (oc *OrderCustomer) BeforeCreate(tx *gorm.DB) (err error) {
	if oc.ID == "" {
		oc.ID = uuid.New().String()
	}
	return
}
