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

type VariantController struct {
	variantService service.VariantService
}

func NewVariantController(variantService service.VariantService) *VariantController {
	return &VariantController{
		variantService: variantService,
	}
}

type CreateVariantRequest struct {
	Name         string `json:"name" binding:"required"`
	SKU          string `json:"sku" binding:"required"`
	Color        string `json:"color"`
	ColorCode    string `json:"color_code"`
	Size         string `json:"size"`
	Price        int64  `json:"price" binding:"gte=0"`
	ComparePrice *int64 `json:"compare_price"`
	Stock        int    `json:"stock" binding:"gte=0"`
	ImageURL     string `json:"image_url"`
	IsDefault    *bool  `json:"is_default"`
}

type UpdateVariantRequest struct {
	Name         *string `json:"name"`
	SKU          *string `json:"sku"`
	Color        *string `json:"color"`
	ColorCode    *string `json:"color_code"`
	Size         *string `json:"size"`
	Price        *int64  `json:"price"`
	ComparePrice *int64  `json:"compare_price"`
	Stock        *int    `json:"stock"`
	ImageURL     *string `json:"image_url"`
	IsDefault    *bool   `json:"is_default"`
	IsActive     *bool   `json:"is_active"`
}

// ListVariants returns the variants of a product
// GET /api/v1/products/:id/variants
func (ctrl *VariantController) ListVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	// admins see inactive variants too
	_, isAdmin := middleware.GetUserRole(c)
	variants, err := ctrl.variantService.ListVariants(uint(productID), !isAdmin)
	if err != nil {
		log.Error("Failed to fetch variants", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch variants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// CreateVariant adds a variant to a product (admin)
// POST /api/v1/admin/products/:id/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant, err := ctrl.variantService.CreateVariant(uint(productID), service.CreateVariantInput{
		Name:         req.Name,
		SKU:          req.SKU,
		Color:        req.Color,
		ColorCode:    req.ColorCode,
		Size:         req.Size,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		ctrl.respondVariantError(c, err, "Failed to create variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Variant created successfully",
		"variant": variant,
	})
}

// UpdateVariant updates a variant (admin)
// PUT /api/v1/admin/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant, err := ctrl.variantService.UpdateVariant(id, service.UpdateVariantInput{
		Name:         req.Name,
		SKU:          req.SKU,
		Color:        req.Color,
		ColorCode:    req.ColorCode,
		Size:         req.Size,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		IsDefault:    req.IsDefault,
		IsActive:     req.IsActive,
	})
	if err != nil {
		ctrl.respondVariantError(c, err, "Failed to update variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant updated successfully",
		"variant": variant,
	})
}

// DeleteVariant deactivates a variant (admin)
// DELETE /api/v1/admin/variants/:id
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.variantService.DeleteVariant(id); err != nil {
		ctrl.respondVariantError(c, err, "Failed to delete variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted successfully",
	})
}

func (ctrl *VariantController) respondVariantError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrDuplicateSKU):
		apperrors.Conflict(c, apperrors.VariantDuplicateSKU, "SKU is already in use")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
