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
	ErrBrandNotFound      = errors.New("brand not found")
	ErrDuplicateBrandName = errors.New("brand name already in use")
)

type CreateBrandInput struct {
	Name        string
	NameEn      string
	LogoURL     string
	Description string
}

type UpdateBrandInput struct {
	Name        *string
	NameEn      *string
	LogoURL     *string
	Description *string
	IsActive    *bool
}

type BrandService interface {
	ListBrands(activeOnly bool) ([]model.Brand, error)
	GetBrandByID(id uint) (*model.Brand, error)
	CreateBrand(input CreateBrandInput) (*model.Brand, error)
	UpdateBrand(id uint, input UpdateBrandInput) (*model.Brand, error)
	DeleteBrand(id uint) error
}

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

func (s *brandService) ListBrands(activeOnly bool) ([]model.Brand, error) {
	brands, err := s.brandRepo.FindAll(activeOnly)
	if err != nil {
		logger.Error("Failed to list brands", err)
		return nil, err
	}
	return brands, nil
}

func (s *brandService) GetBrandByID(id uint) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		logger.Error("Failed to fetch brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return brand, nil
}

func (s *brandService) CreateBrand(input CreateBrandInput) (*model.Brand, error) {
	logger.Info("Creating brand", map[string]interface{}{
		"name": input.Name,
	})

	// advisory check, the unique index is authoritative; it covers
	// inactive brands too
	taken, err := s.brandRepo.NameExists(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateBrandName
	}

	brand := &model.Brand{
		Name:        input.Name,
		NameEn:      input.NameEn,
		LogoURL:     input.LogoURL,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		if apperrors.IsDuplicateKeyOn(err, "name") {
			return nil, ErrDuplicateBrandName
		}
		return nil, err
	}

	logger.Info("Brand created successfully", map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return brand, nil
}

func (s *brandService) UpdateBrand(id uint, input UpdateBrandInput) (*model.Brand, error) {
	brand, err := s.GetBrandByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != brand.Name {
		taken, err := s.brandRepo.NameExists(*input.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateBrandName
		}
		brand.Name = *input.Name
	}
	if input.NameEn != nil {
		brand.NameEn = *input.NameEn
	}
	if input.LogoURL != nil {
		brand.LogoURL = *input.LogoURL
	}
	if input.Description != nil {
		brand.Description = *input.Description
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := s.brandRepo.Update(brand); err != nil {
		if apperrors.IsDuplicateKeyOn(err, "name") {
			return nil, ErrDuplicateBrandName
		}
		return nil, err
	}

	logger.Info("Brand updated successfully", map[string]interface{}{
		"brand_id": brand.ID,
	})
	return brand, nil
}

func (s *brandService) DeleteBrand(id uint) error {
	brand, err := s.GetBrandByID(id)
	if err != nil {
		return err
	}

	brand.IsActive = false
	if err := s.brandRepo.Update(brand); err != nil {
		logger.Error("Failed to deactivate brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}

	logger.Info("Brand deactivated", map[string]interface{}{
		"brand_id": id,
	})
	return nil
}
