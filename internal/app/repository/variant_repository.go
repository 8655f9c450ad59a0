package repository

import (
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint, activeOnly bool) ([]model.ProductVariant, error)
	SKUExists(sku string, excludeID uint) (bool, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint, activeOnly bool) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	query := r.db.Where("product_id = ?", productID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at ASC").Find(&variants).Error; err != nil {
		logger.Error("Failed to find variants by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

// SKUExists checks the global SKU namespace across all products. It is
// an advisory pre-check; the unique index on sku remains the source of
// truth.
func (r *variantRepository) SKUExists(sku string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.ProductVariant{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
