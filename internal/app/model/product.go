package model

import (
	"time"

	"gorm.io/gorm"
)

// StringList is an ordered list column stored as a JSON blob. Requests
// bind into it as a typed array, so malformed payloads are rejected at
// the boundary instead of reaching the database.
type StringList []string

// SpecMap holds free-form product specifications keyed by attribute name.
type SpecMap map[string]interface{}

// Product aggregates its variant set. Prices are whole currency units
// (VND carries no minor unit).
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Slug           string         `gorm:"type:varchar(60);uniqueIndex;not null" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	BasePrice      int64          `gorm:"not null" json:"base_price"`
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	SubcategoryID  *uint          `gorm:"index" json:"subcategory_id,omitempty"`
	BrandID        *uint          `gorm:"index" json:"brand_id,omitempty"`
	Images         StringList     `gorm:"type:text;serializer:json" json:"images"`
	Tags           StringList     `gorm:"type:text;serializer:json" json:"tags"`
	Specifications SpecMap        `gorm:"type:text;serializer:json" json:"specifications"`
	IsFeatured     bool           `gorm:"default:false;index" json:"is_featured"`
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`
	Rating         float64        `gorm:"default:0" json:"rating"`
	ReviewCount    int            `gorm:"default:0" json:"review_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory    `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Brand       *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	// Derived from the active variant set, never stored
	EffectivePrice int64 `gorm:"-" json:"effective_price"`
	MinPrice       int64 `gorm:"-" json:"min_price"`
	TotalStock     int   `gorm:"-" json:"total_stock"`
	HasVariants    bool  `gorm:"-" json:"has_variants"`
}

func (Product) TableName() string {
	return "products"
}

// ComputeDerived fills the derived pricing/stock fields from the loaded
// variant set. Inactive variants contribute nothing.
func (p *Product) ComputeDerived() {
	p.EffectivePrice = p.BasePrice
	p.MinPrice = p.BasePrice
	p.TotalStock = 0
	p.HasVariants = false

	first := true
	for i := range p.Variants {
		v := &p.Variants[i]
		if !v.IsActive {
			continue
		}
		p.HasVariants = true
		p.TotalStock += v.Stock
		if v.IsDefault {
			p.EffectivePrice = v.Price
		}
		if first || v.Price < p.MinPrice {
			p.MinPrice = v.Price
			first = false
		}
	}

	if !p.HasVariants {
		p.EffectivePrice = p.BasePrice
		p.MinPrice = p.BasePrice
	}
}

// ActiveVariants returns the active subset of the loaded variant set
func (p *Product) ActiveVariants() []ProductVariant {
	active := make([]ProductVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.IsActive {
			active = append(active, v)
		}
	}
	return active
}
