package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string          `gorm:"size:255;not null"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	OldPrice    decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	ImagePath   string          `gorm:"size:500"`
	CategoryID  string          `gorm:"size:36;index"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	Featured    bool            `gorm:"default:false"`
	Sizes       []ProductSize
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// StockForSize returns the live stock count for one size row, zero when the
// size is not offered.
func (p *Product) StockForSize(size string) int {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock
		}
	}
	return 0
}

func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s.Size == size {
			return true
		}
	}
	return false
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProductID string `gorm:"size:36;index:idx_product_size,unique"`
	Size      string `gorm:"size:20;not null;index:idx_product_size,unique"`
	Stock     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;index"`
	URL       string `gorm:"size:500;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
