package repository

import (
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubcategoryRepository interface {
	Create(subcategory *model.Subcategory) error
	FindByID(id uint) (*model.Subcategory, error)
	FindByCategoryID(categoryID uint, activeOnly bool) ([]model.Subcategory, error)
	Update(subcategory *model.Subcategory) error
	SlugExists(categoryID uint, slug string, excludeID uint) (bool, error)
	CountReferencingProducts(subcategoryID uint) (int64, error)
}

type subcategoryRepository struct {
	db *gorm.DB
}

func NewSubcategoryRepository(db *gorm.DB) SubcategoryRepository {
	return &subcategoryRepository{db: db}
}

func (r *subcategoryRepository) Create(subcategory *model.Subcategory) error {
	if err := r.db.Create(subcategory).Error; err != nil {
		logger.Error("Failed to create subcategory in database", err, map[string]interface{}{
			"name":        subcategory.Name,
			"slug":        subcategory.Slug,
			"category_id": subcategory.CategoryID,
		})
		return err
	}
	return nil
}

func (r *subcategoryRepository) FindByID(id uint) (*model.Subcategory, error) {
	var subcategory model.Subcategory
	if err := r.db.First(&subcategory, id).Error; err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (r *subcategoryRepository) FindByCategoryID(categoryID uint, activeOnly bool) ([]model.Subcategory, error) {
	var subcategories []model.Subcategory
	query := r.db.Where("category_id = ?", categoryID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("sort_order ASC, created_at ASC").Find(&subcategories).Error
	if err != nil {
		logger.Error("Failed to find subcategories by category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}
	return subcategories, nil
}

func (r *subcategoryRepository) Update(subcategory *model.Subcategory) error {
	if err := r.db.Save(subcategory).Error; err != nil {
		logger.Error("Failed to update subcategory in database", err, map[string]interface{}{
			"subcategory_id": subcategory.ID,
		})
		return err
	}
	return nil
}

// SlugExists checks slug uniqueness among siblings of the same category
func (r *subcategoryRepository) SlugExists(categoryID uint, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Subcategory{}).
		Where("category_id = ? AND slug = ?", categoryID, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountReferencingProducts counts products pointing at the subcategory.
// Re-parenting a referenced subcategory would orphan those products'
// category/subcategory pairing, so the service rejects it.
func (r *subcategoryRepository) CountReferencingProducts(subcategoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("subcategory_id = ?", subcategoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
