package repository

import (
	"fmt"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortPrice     ProductSort = "price"
	ProductSortName      ProductSort = "name"
)

// MaxPageSize is the hard cap on list page sizes
const MaxPageSize = 100

// DefaultPageSize applies when the caller does not specify a limit
const DefaultPageSize = 20

type ProductFilter struct {
	CategoryID      *uint
	SubcategoryID   *uint
	BrandID         *uint
	Featured        *bool
	MinPrice        *int64 // against base_price
	MaxPrice        *int64
	InStock         bool
	Tag             string
	Search          string
	IncludeInactive bool
	SortBy          ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	Update(product *model.Product) error
	SlugExists(slug string, excludeID uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

// baseQuery preloads the categorization summaries and the active variant
// set, which the derived pricing/stock fields are computed from.
func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Subcategory").
		Preload("Brand").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at ASC")
		})
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().Where("products.slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id":    filter.CategoryID,
		"subcategory_id": filter.SubcategoryID,
		"brand_id":       filter.BrandID,
		"featured":       filter.Featured,
		"in_stock":       filter.InStock,
		"tag":            filter.Tag,
		"search":         filter.Search,
		"limit":          filter.Limit,
		"offset":         filter.Offset,
	})

	query := r.baseQuery()

	if !filter.IncludeInactive {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("products.subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("products.brand_id = ?", *filter.BrandID)
	}
	if filter.Featured != nil {
		query = query.Where("products.is_featured = ?", *filter.Featured)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.base_price <= ?", *filter.MaxPrice)
	}
	if filter.InStock {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.is_active = ? AND pv.stock > 0 AND pv.deleted_at IS NULL)",
			true,
		)
	}
	if filter.Tag != "" {
		// tags are stored as a JSON array of strings
		query = query.Where("products.tags LIKE ?", fmt.Sprintf("%%%q%%", filter.Tag))
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err)
		return nil, 0, err
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.base_price " + direction)
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err)
		return nil, 0, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
			"slug":       product.Slug,
		})
		return err
	}
	return nil
}

// SlugExists is an advisory pre-check; the unique index on slug remains
// the source of truth.
func (r *productRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
