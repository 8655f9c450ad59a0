package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type CreateSubcategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
	SortOrder  int    `json:"sort_order"`
}

type UpdateSubcategoryRequest struct {
	CategoryID *uint   `json:"category_id"`
	Name       *string `json:"name"`
	Slug       *string `json:"slug"`
	SortOrder  *int    `json:"sort_order"`
	IsActive   *bool   `json:"is_active"`
}

// parseIDParam reads a numeric :id path parameter
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// ListCategories returns active categories with their active subcategories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListActiveCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory returns a category by ID or slug
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	identifier := c.Param("id")
	var (
		category interface{}
		err      error
	)
	if id, parseErr := strconv.ParseUint(identifier, 10, 32); parseErr == nil {
		category, err = ctrl.categoryService.GetCategoryByID(uint(id))
	} else {
		category, err = ctrl.categoryService.GetCategoryBySlug(identifier)
	}
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"identifier": identifier,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a new category (admin)
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(service.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory updates an existing category (admin)
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, service.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory deactivates a category (admin)
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		ctrl.respondCategoryError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

// CreateSubcategory creates a subcategory under a category (admin)
// POST /api/v1/admin/subcategories
func (ctrl *CategoryController) CreateSubcategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid subcategory creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	subcategory, err := ctrl.categoryService.CreateSubcategory(service.CreateSubcategoryInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to create subcategory")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Subcategory created successfully",
		"subcategory": subcategory,
	})
}

// UpdateSubcategory updates a subcategory (admin)
// PUT /api/v1/admin/subcategories/:id
func (ctrl *CategoryController) UpdateSubcategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	subcategory, err := ctrl.categoryService.UpdateSubcategory(id, service.UpdateSubcategoryInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		SortOrder:  req.SortOrder,
		IsActive:   req.IsActive,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to update subcategory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Subcategory updated successfully",
		"subcategory": subcategory,
	})
}

// DeleteSubcategory deactivates a subcategory (admin)
// DELETE /api/v1/admin/subcategories/:id
func (ctrl *CategoryController) DeleteSubcategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteSubcategory(id); err != nil {
		ctrl.respondCategoryError(c, err, "Failed to delete subcategory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory deleted successfully",
	})
}

func (ctrl *CategoryController) respondCategoryError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrSubcategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogSubcategoryNotFound, "Subcategory not found")
	case errors.Is(err, service.ErrDuplicateSlug):
		apperrors.Conflict(c, apperrors.CatalogDuplicateSlug, "Slug is already in use")
	case errors.Is(err, service.ErrSubcategoryInUse):
		apperrors.Conflict(c, apperrors.CatalogSubcategoryInUse, "Subcategory is referenced by products")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
