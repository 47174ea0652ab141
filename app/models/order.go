package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentMethodBank = "bank"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems []OrderItem
	Customer   OrderCustomer `gorm:"foreignKey:OrderID"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(16,2);not null"`

	// PaymentMethod is "bank" for transfers or the gateway channel string for
	// card payments.
	PaymentMethod string `gorm:"size:100;not null"`
	PaymentStatus string `gorm:"size:100;not null"`
	PaymentRef    string `gorm:"size:255;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
