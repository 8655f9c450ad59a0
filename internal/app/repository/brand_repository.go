package repository

import (
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindByID(id uint) (*model.Brand, error)
	FindAll(activeOnly bool) ([]model.Brand, error)
	Update(brand *model.Brand) error
	NameExists(name string, excludeID uint) (bool, error)
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindByID(id uint) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) FindAll(activeOnly bool) ([]model.Brand, error) {
	var brands []model.Brand
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&brands).Error; err != nil {
		logger.Error("Failed to find brands", err)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) Update(brand *model.Brand) error {
	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

// NameExists checks name uniqueness across active and inactive brands
func (r *brandRepository) NameExists(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Brand{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
