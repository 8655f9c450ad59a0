package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is the top level of the two-level catalog hierarchy.
// Categories are never hard-deleted: deactivation keeps subcategories and
// referencing products resolvable for historical orders.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"type:varchar(60);uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// Subcategory belongs to exactly one Category. Slugs are unique among
// siblings of the same category.
type Subcategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CategoryID uint           `gorm:"not null;index;uniqueIndex:idx_subcategories_category_slug" json:"category_id"`
	Name       string         `gorm:"not null" json:"name"`
	Slug       string         `gorm:"type:varchar(60);not null;uniqueIndex:idx_subcategories_category_slug" json:"slug"`
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder  int            `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}
