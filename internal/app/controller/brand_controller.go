package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
)

type BrandController struct {
	brandService service.BrandService
}

func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{
		brandService: brandService,
	}
}

type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required"`
	NameEn      string `json:"name_en"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

type UpdateBrandRequest struct {
	Name        *string `json:"name"`
	NameEn      *string `json:"name_en"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ListBrands returns active brands
// GET /api/v1/brands
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// admins see inactive brands too
	_, isAdmin := middleware.GetUserRole(c)
	brands, err := ctrl.brandService.ListBrands(!isAdmin)
	if err != nil {
		log.Error("Failed to fetch brands", err, nil)
		apperrors.InternalError(c, "Failed to fetch brands")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand returns a brand by ID
// GET /api/v1/brands/:id
func (ctrl *BrandController) GetBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	brand, err := ctrl.brandService.GetBrandByID(id)
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to fetch brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
	})
}

// CreateBrand creates a new brand (admin)
// POST /api/v1/admin/brands
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid brand creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	brand, err := ctrl.brandService.CreateBrand(service.CreateBrandInput{
		Name:        req.Name,
		NameEn:      req.NameEn,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	})
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to create brand")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand created successfully",
		"brand":   brand,
	})
}

// UpdateBrand updates an existing brand (admin)
// PUT /api/v1/admin/brands/:id
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	brand, err := ctrl.brandService.UpdateBrand(id, service.UpdateBrandInput{
		Name:        req.Name,
		NameEn:      req.NameEn,
		LogoURL:     req.LogoURL,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to update brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand updated successfully",
		"brand":   brand,
	})
}

// DeleteBrand deactivates a brand (admin)
// DELETE /api/v1/admin/brands/:id
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.brandService.DeleteBrand(id); err != nil {
		ctrl.respondBrandError(c, err, "Failed to delete brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand deleted successfully",
	})
}

func (ctrl *BrandController) respondBrandError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrBrandNotFound):
		apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "Brand not found")
	case errors.Is(err, service.ErrDuplicateBrandName):
		apperrors.Conflict(c, apperrors.CatalogDuplicateBrandName, "Brand name is already in use")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
