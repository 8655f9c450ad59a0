package service

import (
	"errors"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateSKU    = errors.New("sku already in use")
)

type CreateVariantInput struct {
	Name         string
	SKU          string
	Color        string
	ColorCode    string
	Size         string
	Price        int64
	ComparePrice *int64
	Stock        int
	ImageURL     string
	IsDefault    *bool
}

type UpdateVariantInput struct {
	Name         *string
	SKU          *string
	Color        *string
	ColorCode    *string
	Size         *string
	Price        *int64
	ComparePrice *int64
	Stock        *int
	ImageURL     *string
	IsDefault    *bool
	IsActive     *bool
}

type VariantService interface {
	ListVariants(productID uint, activeOnly bool) ([]model.ProductVariant, error)
	GetVariantByID(id uint) (*model.ProductVariant, error)
	CreateVariant(productID uint, input CreateVariantInput) (*model.ProductVariant, error)
	UpdateVariant(id uint, input UpdateVariantInput) (*model.ProductVariant, error)
	DeleteVariant(id uint) error
}

type variantService struct {
	variantRepo repository.VariantRepository
	db          *gorm.DB
}

func NewVariantService(variantRepo repository.VariantRepository, db *gorm.DB) VariantService {
	return &variantService{
		variantRepo: variantRepo,
		db:          db,
	}
}

func (s *variantService) ListVariants(productID uint, activeOnly bool) ([]model.ProductVariant, error) {
	variants, err := s.variantRepo.FindByProductID(productID, activeOnly)
	if err != nil {
		logger.Error("Failed to list variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (s *variantService) GetVariantByID(id uint) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

// CreateVariant inserts a variant and settles the single-default rule in
// the same transaction: an explicit default demotes its siblings, and a
// product's first active variant becomes default implicitly.
func (s *variantService) CreateVariant(productID uint, input CreateVariantInput) (*model.ProductVariant, error) {
	logger.Info("Creating variant", map[string]interface{}{
		"product_id": productID,
		"sku":        input.SKU,
	})

	// advisory check against the global SKU namespace
	taken, err := s.variantRepo.SKUExists(input.SKU, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateSKU
	}

	var created *model.ProductVariant
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var activeCount int64
		if err := tx.Model(&model.ProductVariant{}).
			Where("product_id = ? AND is_active = ?", productID, true).
			Count(&activeCount).Error; err != nil {
			return err
		}

		makeDefault := activeCount == 0
		if input.IsDefault != nil && *input.IsDefault {
			makeDefault = true
			if err := demoteSiblings(tx, productID, 0); err != nil {
				return err
			}
		}

		variant := &model.ProductVariant{
			ProductID:    productID,
			Name:         input.Name,
			SKU:          input.SKU,
			Color:        input.Color,
			ColorCode:    input.ColorCode,
			Size:         input.Size,
			Price:        input.Price,
			ComparePrice: input.ComparePrice,
			Stock:        input.Stock,
			ImageURL:     input.ImageURL,
			IsDefault:    makeDefault,
			IsActive:     true,
		}
		if err := tx.Create(variant).Error; err != nil {
			if apperrors.IsDuplicateKeyOn(err, "sku") {
				return ErrDuplicateSKU
			}
			return err
		}

		created = variant
		return nil
	})
	if err != nil {
		logger.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": productID,
			"sku":        input.SKU,
		})
		return nil, err
	}

	logger.Info("Variant created successfully", map[string]interface{}{
		"variant_id": created.ID,
		"product_id": productID,
		"is_default": created.IsDefault,
	})
	return created, nil
}

func (s *variantService) UpdateVariant(id uint, input UpdateVariantInput) (*model.ProductVariant, error) {
	var updated *model.ProductVariant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var variant model.ProductVariant
		if err := tx.First(&variant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVariantNotFound
			}
			return err
		}

		if input.SKU != nil && *input.SKU != variant.SKU {
			taken, err := s.variantRepo.SKUExists(*input.SKU, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateSKU
			}
			variant.SKU = *input.SKU
		}
		if input.Name != nil {
			variant.Name = *input.Name
		}
		if input.Color != nil {
			variant.Color = *input.Color
		}
		if input.ColorCode != nil {
			variant.ColorCode = *input.ColorCode
		}
		if input.Size != nil {
			variant.Size = *input.Size
		}
		if input.Price != nil {
			variant.Price = *input.Price
		}
		if input.ComparePrice != nil {
			variant.ComparePrice = input.ComparePrice
		}
		if input.Stock != nil {
			variant.Stock = *input.Stock
		}
		if input.ImageURL != nil {
			variant.ImageURL = *input.ImageURL
		}
		if input.IsActive != nil {
			variant.IsActive = *input.IsActive
		}
		if input.IsDefault != nil {
			if *input.IsDefault && !variant.IsDefault {
				if err := demoteSiblings(tx, variant.ProductID, variant.ID); err != nil {
					return err
				}
			}
			variant.IsDefault = *input.IsDefault
		}
		if !variant.IsActive {
			variant.IsDefault = false
		}

		if err := tx.Save(&variant).Error; err != nil {
			if apperrors.IsDuplicateKeyOn(err, "sku") {
				return ErrDuplicateSKU
			}
			return err
		}

		// demotion or deactivation may have left the product without a
		// default; re-elect before committing
		if err := electDefault(tx, variant.ProductID); err != nil {
			return err
		}
		if err := tx.First(&variant, id).Error; err != nil {
			return err
		}

		updated = &variant
		return nil
	})
	if err != nil {
		logger.Error("Failed to update variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}

	logger.Info("Variant updated successfully", map[string]interface{}{
		"variant_id": updated.ID,
		"is_default": updated.IsDefault,
	})
	return updated, nil
}

// DeleteVariant deactivates the variant. When the default variant goes
// away the earliest-created remaining active variant is promoted in the
// same transaction, so the product never sits at zero defaults while
// active variants exist.
func (s *variantService) DeleteVariant(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var variant model.ProductVariant
		if err := tx.First(&variant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVariantNotFound
			}
			return err
		}

		variant.IsActive = false
		variant.IsDefault = false
		if err := tx.Save(&variant).Error; err != nil {
			return err
		}

		return electDefault(tx, variant.ProductID)
	})
	if err != nil {
		logger.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}

	logger.Info("Variant deactivated", map[string]interface{}{
		"variant_id": id,
	})
	return nil
}

// demoteSiblings clears the default flag on every other variant of the
// product inside the caller's transaction.
func demoteSiblings(tx *gorm.DB, productID uint, exceptID uint) error {
	query := tx.Model(&model.ProductVariant{}).Where("product_id = ?", productID)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update("is_default", false).Error
}

// electDefault promotes the earliest-created active variant when the
// product has active variants but no active default.
func electDefault(tx *gorm.DB, productID uint) error {
	var defaults int64
	err := tx.Model(&model.ProductVariant{}).
		Where("product_id = ? AND is_active = ? AND is_default = ?", productID, true, true).
		Count(&defaults).Error
	if err != nil {
		return err
	}
	if defaults > 0 {
		return nil
	}

	var candidate model.ProductVariant
	err = tx.Where("product_id = ? AND is_active = ?", productID, true).
		Order("created_at ASC, id ASC").
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // no active variants left
		}
		return err
	}

	logger.Debug("Promoting variant to default", map[string]interface{}{
		"product_id": productID,
		"variant_id": candidate.ID,
	})
	return tx.Model(&candidate).Update("is_default", true).Error
}
