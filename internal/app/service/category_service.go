package service

import (
	"errors"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"github.com/vyanhpham/rosea-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrDuplicateSlug       = errors.New("slug already in use")
	ErrSubcategoryInUse    = errors.New("subcategory is referenced by products")
)

// slugRetryAttempts bounds the constraint-violation retry loop. The
// advisory pre-check almost always lands on a free suffix on the first
// try, the loop only matters under concurrent creates with colliding
// base names.
const slugRetryAttempts = 50

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	SortOrder   int
}

type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	SortOrder   *int
	IsActive    *bool
}

type CreateSubcategoryInput struct {
	CategoryID uint
	Name       string
	Slug       string
	SortOrder  int
}

type UpdateSubcategoryInput struct {
	CategoryID *uint
	Name       *string
	Slug       *string
	SortOrder  *int
	IsActive   *bool
}

type CategoryService interface {
	ListActiveCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(input CreateCategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error
	CreateSubcategory(input CreateSubcategoryInput) (*model.Subcategory, error)
	UpdateSubcategory(id uint, input UpdateSubcategoryInput) (*model.Subcategory, error)
	DeleteSubcategory(id uint) error
}

type categoryService struct {
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, subcategoryRepo repository.SubcategoryRepository) CategoryService {
	return &categoryService{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
	}
}

func (s *categoryService) ListActiveCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindActive()
	if err != nil {
		logger.Error("Failed to list active categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(input CreateCategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
		"slug": input.Slug,
	})

	base := input.Slug
	if base == "" {
		base = util.Slugify(input.Name)
	}

	exists := func(candidate string) (bool, error) {
		return s.categoryRepo.SlugExists(candidate, 0)
	}

	var created *model.Category
	err := insertWithUniqueSlug(base, exists, func(slug string) error {
		category := &model.Category{
			Name:        input.Name,
			Slug:        slug,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			SortOrder:   input.SortOrder,
			IsActive:    true,
		}
		if err := s.categoryRepo.Create(category); err != nil {
			return err
		}
		created = category
		return nil
	})
	if err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": created.ID,
		"slug":        created.Slug,
	})
	return created, nil
}

func (s *categoryService) UpdateCategory(id uint, input UpdateCategoryInput) (*model.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	nameChanged := input.Name != nil && *input.Name != category.Name
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil && *input.Slug != "":
		// explicit slug wins; it must not collide with another category
		taken, err := s.categoryRepo.SlugExists(*input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
		category.Slug = *input.Slug
		if err := s.updateCategoryChecked(category); err != nil {
			return nil, err
		}
	case nameChanged:
		// renaming without an explicit slug regenerates it
		base := util.Slugify(category.Name)
		exists := func(candidate string) (bool, error) {
			return s.categoryRepo.SlugExists(candidate, id)
		}
		err := insertWithUniqueSlug(base, exists, func(slug string) error {
			category.Slug = slug
			return s.categoryRepo.Update(category)
		})
		if err != nil {
			return nil, err
		}
	default:
		if err := s.updateCategoryChecked(category); err != nil {
			return nil, err
		}
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) updateCategoryChecked(category *model.Category) error {
	if err := s.categoryRepo.Update(category); err != nil {
		if apperrors.IsDuplicateKeyOn(err, "slug") {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// DeleteCategory deactivates the category. Subcategories and products
// keep their references so historical orders stay renderable.
func (s *categoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	category.IsActive = false
	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to deactivate category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Category deactivated", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) CreateSubcategory(input CreateSubcategoryInput) (*model.Subcategory, error) {
	if _, err := s.GetCategoryByID(input.CategoryID); err != nil {
		return nil, err
	}

	base := input.Slug
	if base == "" {
		base = util.Slugify(input.Name)
	}

	exists := func(candidate string) (bool, error) {
		return s.subcategoryRepo.SlugExists(input.CategoryID, candidate, 0)
	}

	var created *model.Subcategory
	err := insertWithUniqueSlug(base, exists, func(slug string) error {
		subcategory := &model.Subcategory{
			CategoryID: input.CategoryID,
			Name:       input.Name,
			Slug:       slug,
			SortOrder:  input.SortOrder,
			IsActive:   true,
		}
		if err := s.subcategoryRepo.Create(subcategory); err != nil {
			return err
		}
		created = subcategory
		return nil
	})
	if err != nil {
		logger.Error("Failed to create subcategory", err, map[string]interface{}{
			"category_id": input.CategoryID,
			"name":        input.Name,
		})
		return nil, err
	}

	logger.Info("Subcategory created successfully", map[string]interface{}{
		"subcategory_id": created.ID,
		"category_id":    created.CategoryID,
		"slug":           created.Slug,
	})
	return created, nil
}

func (s *categoryService) UpdateSubcategory(id uint, input UpdateSubcategoryInput) (*model.Subcategory, error) {
	subcategory, err := s.subcategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}

	if input.CategoryID != nil && *input.CategoryID != subcategory.CategoryID {
		// re-parenting a subcategory that products already reference would
		// silently orphan their category/subcategory pairing
		refs, err := s.subcategoryRepo.CountReferencingProducts(id)
		if err != nil {
			return nil, err
		}
		if refs > 0 {
			logger.Warn("Subcategory re-parenting rejected: products reference it", map[string]interface{}{
				"subcategory_id": id,
				"product_count":  refs,
			})
			return nil, ErrSubcategoryInUse
		}
		if _, err := s.GetCategoryByID(*input.CategoryID); err != nil {
			return nil, err
		}
		subcategory.CategoryID = *input.CategoryID
	}

	nameChanged := input.Name != nil && *input.Name != subcategory.Name
	if input.Name != nil {
		subcategory.Name = *input.Name
	}
	if input.SortOrder != nil {
		subcategory.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		subcategory.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil && *input.Slug != "":
		taken, err := s.subcategoryRepo.SlugExists(subcategory.CategoryID, *input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
		subcategory.Slug = *input.Slug
		if err := s.subcategoryRepo.Update(subcategory); err != nil {
			if apperrors.IsDuplicateKeyOn(err, "slug") {
				return nil, ErrDuplicateSlug
			}
			return nil, err
		}
	case nameChanged:
		base := util.Slugify(subcategory.Name)
		exists := func(candidate string) (bool, error) {
			return s.subcategoryRepo.SlugExists(subcategory.CategoryID, candidate, id)
		}
		err := insertWithUniqueSlug(base, exists, func(slug string) error {
			subcategory.Slug = slug
			return s.subcategoryRepo.Update(subcategory)
		})
		if err != nil {
			return nil, err
		}
	default:
		if err := s.subcategoryRepo.Update(subcategory); err != nil {
			if apperrors.IsDuplicateKeyOn(err, "slug") {
				return nil, ErrDuplicateSlug
			}
			return nil, err
		}
	}

	logger.Info("Subcategory updated successfully", map[string]interface{}{
		"subcategory_id": subcategory.ID,
	})
	return subcategory, nil
}

func (s *categoryService) DeleteSubcategory(id uint) error {
	subcategory, err := s.subcategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubcategoryNotFound
		}
		return err
	}

	subcategory.IsActive = false
	if err := s.subcategoryRepo.Update(subcategory); err != nil {
		logger.Error("Failed to deactivate subcategory", err, map[string]interface{}{
			"subcategory_id": id,
		})
		return err
	}

	logger.Info("Subcategory deactivated", map[string]interface{}{
		"subcategory_id": id,
	})
	return nil
}

// insertWithUniqueSlug resolves slug collisions with an incrementing
// numeric suffix. The existence scan is advisory; when a concurrent
// writer takes the candidate first, the unique index rejects the insert
// and the loop moves to the next suffix.
func insertWithUniqueSlug(base string, exists func(string) (bool, error), insert func(string) error) error {
	suffix := 0
	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		candidate := util.SlugWithSuffix(base, suffix)

		taken, err := exists(candidate)
		if err != nil {
			return err
		}
		if taken {
			suffix++
			continue
		}

		err = insert(candidate)
		if err == nil {
			return nil
		}
		if apperrors.IsDuplicateKeyOn(err, "slug") {
			suffix++
			continue
		}
		return err
	}
	return ErrDuplicateSlug
}
