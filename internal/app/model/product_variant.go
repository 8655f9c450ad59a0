package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a purchasable variation of a product. SKUs live in a
// single global namespace across all products. Among a product's active
// variants at most one carries IsDefault.
type ProductVariant struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	Name         string         `gorm:"not null" json:"name"`
	SKU          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Color        string         `gorm:"type:varchar(50)" json:"color"`
	ColorCode    string         `gorm:"type:varchar(10)" json:"color_code"`
	Size         string         `gorm:"type:varchar(50)" json:"size"`
	Price        int64          `gorm:"not null" json:"price"`
	ComparePrice *int64         `json:"compare_price,omitempty"`
	Stock        int            `gorm:"default:0" json:"stock"`
	ImageURL     string         `json:"image_url"`
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
