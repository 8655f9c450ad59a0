package model

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a flat, weakly-referenced catalog entity. The name is unique
// across active and inactive brands alike.
type Brand struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	NameEn      string         `gorm:"type:varchar(100)" json:"name_en"`
	LogoURL     string         `json:"logo_url"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Brand) TableName() string {
	return "brands"
}
