package service

import (
	"errors"
	"strconv"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"github.com/vyanhpham/rosea-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidRelation = errors.New("invalid category/subcategory/brand reference")
)

type CreateProductInput struct {
	Name           string
	Slug           string
	Description    string
	BasePrice      int64
	CategoryID     uint
	SubcategoryID  *uint
	BrandID        *uint
	Images         model.StringList
	Tags           model.StringList
	Specifications model.SpecMap
	IsFeatured     bool
}

type UpdateProductInput struct {
	Name             *string
	Slug             *string
	Description      *string
	BasePrice        *int64
	CategoryID       *uint
	SubcategoryID    *uint
	ClearSubcategory bool
	BrandID          *uint
	ClearBrand       bool
	Images           *model.StringList
	Tags             *model.StringList
	Specifications   *model.SpecMap
	IsFeatured       *bool
	IsActive         *bool
}

type ProductListOptions struct {
	CategoryID    *uint
	SubcategoryID *uint
	BrandID       *uint
	Featured      *bool
	MinPrice      *int64
	MaxPrice      *int64
	InStock       bool
	Tag           string
	Search        string
	SortBy        string
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductService interface {
	GetProduct(identifier string) (*model.Product, error)
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	CreateProduct(input CreateProductInput) (*model.Product, error)
	UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
	brandRepo       repository.BrandRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
	brandRepo repository.BrandRepository,
) ProductService {
	return &productService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		brandRepo:       brandRepo,
	}
}

// GetProduct resolves a numeric identifier as an ID, anything else as a
// slug. The result carries the owning category/subcategory/brand, the
// active variant list and the derived pricing/stock fields.
func (s *productService) GetProduct(identifier string) (*model.Product, error) {
	var (
		product *model.Product
		err     error
	)
	if id, convErr := strconv.ParseUint(identifier, 10, 32); convErr == nil {
		product, err = s.productRepo.FindByID(uint(id))
	} else {
		product, err = s.productRepo.FindBySlug(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"identifier": identifier,
		})
		return nil, err
	}

	product.ComputeDerived()
	return product, nil
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	filter := repository.ProductFilter{
		CategoryID:    opts.CategoryID,
		SubcategoryID: opts.SubcategoryID,
		BrandID:       opts.BrandID,
		Featured:      opts.Featured,
		MinPrice:      opts.MinPrice,
		MaxPrice:      opts.MaxPrice,
		InStock:       opts.InStock,
		Tag:           opts.Tag,
		Search:        opts.Search,
		SortAscending: opts.SortAscending,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}

	switch opts.SortBy {
	case "price":
		filter.SortBy = repository.ProductSortPrice
	case "name":
		filter.SortBy = repository.ProductSortName
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	for i := range products {
		products[i].ComputeDerived()
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if err := s.validateRelations(input.CategoryID, input.SubcategoryID, input.BrandID); err != nil {
		return nil, err
	}

	base := input.Slug
	if base == "" {
		base = util.Slugify(input.Name)
	}

	images := input.Images
	if images == nil {
		images = model.StringList{}
	}

	exists := func(candidate string) (bool, error) {
		return s.productRepo.SlugExists(candidate, 0)
	}

	var created *model.Product
	err := insertWithUniqueSlug(base, exists, func(slug string) error {
		product := &model.Product{
			Name:           input.Name,
			Slug:           slug,
			Description:    input.Description,
			BasePrice:      input.BasePrice,
			CategoryID:     input.CategoryID,
			SubcategoryID:  input.SubcategoryID,
			BrandID:        input.BrandID,
			Images:         images,
			Tags:           input.Tags,
			Specifications: input.Specifications,
			IsFeatured:     input.IsFeatured,
			IsActive:       true,
		}
		if err := s.productRepo.Create(product); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": created.ID,
		"slug":       created.Slug,
	})

	created.ComputeDerived()
	return created, nil
}

func (s *productService) UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	switch {
	case input.ClearSubcategory:
		product.SubcategoryID = nil
	case input.SubcategoryID != nil:
		product.SubcategoryID = input.SubcategoryID
	}
	switch {
	case input.ClearBrand:
		product.BrandID = nil
	case input.BrandID != nil:
		product.BrandID = input.BrandID
	}

	// the resulting triple must be consistent even when only one side of
	// the category/subcategory pair changed
	if err := s.validateRelations(product.CategoryID, product.SubcategoryID, product.BrandID); err != nil {
		return nil, err
	}

	nameChanged := input.Name != nil && *input.Name != product.Name
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.Specifications != nil {
		product.Specifications = *input.Specifications
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil && *input.Slug != "":
		taken, err := s.productRepo.SlugExists(*input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
		product.Slug = *input.Slug
		if err := s.productRepo.Update(product); err != nil {
			if apperrors.IsDuplicateKeyOn(err, "slug") {
				return nil, ErrDuplicateSlug
			}
			return nil, err
		}
	case nameChanged:
		base := util.Slugify(product.Name)
		exists := func(candidate string) (bool, error) {
			return s.productRepo.SlugExists(candidate, id)
		}
		err := insertWithUniqueSlug(base, exists, func(slug string) error {
			product.Slug = slug
			return s.productRepo.Update(product)
		})
		if err != nil {
			return nil, err
		}
	default:
		if err := s.productRepo.Update(product); err != nil {
			if apperrors.IsDuplicateKeyOn(err, "slug") {
				return nil, ErrDuplicateSlug
			}
			return nil, err
		}
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	product.ComputeDerived()
	return product, nil
}

// DeleteProduct deactivates the product. Variants are untouched: they
// stay resolvable by ID for historical order reference while dropping
// out of active listings with their parent.
func (s *productService) DeleteProduct(id uint) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	product.IsActive = false
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to deactivate product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deactivated", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// validateRelations checks the categorization references: the category
// must exist, the subcategory (when present) must belong to it, and the
// brand (when present) must exist.
func (s *productService) validateRelations(categoryID uint, subcategoryID, brandID *uint) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product references unknown category", map[string]interface{}{
				"category_id": categoryID,
			})
			return ErrInvalidRelation
		}
		return err
	}

	if subcategoryID != nil {
		subcategory, err := s.subcategoryRepo.FindByID(*subcategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product references unknown subcategory", map[string]interface{}{
					"subcategory_id": *subcategoryID,
				})
				return ErrInvalidRelation
			}
			return err
		}
		if subcategory.CategoryID != categoryID {
			logger.Warn("Subcategory does not belong to the stated category", map[string]interface{}{
				"subcategory_id":       *subcategoryID,
				"subcategory_category": subcategory.CategoryID,
				"category_id":          categoryID,
			})
			return ErrInvalidRelation
		}
	}

	if brandID != nil {
		if _, err := s.brandRepo.FindByID(*brandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product references unknown brand", map[string]interface{}{
					"brand_id": *brandID,
				})
				return ErrInvalidRelation
			}
			return err
		}
	}

	return nil
}
