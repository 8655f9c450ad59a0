package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	BasePrice      int64            `json:"base_price" binding:"gte=0"`
	CategoryID     uint             `json:"category_id" binding:"required"`
	SubcategoryID  *uint            `json:"subcategory_id"`
	BrandID        *uint            `json:"brand_id"`
	Images         model.StringList `json:"images"`
	Tags           model.StringList `json:"tags"`
	Specifications model.SpecMap    `json:"specifications"`
	IsFeatured     bool             `json:"is_featured"`
}

type UpdateProductRequest struct {
	Name             *string           `json:"name"`
	Slug             *string           `json:"slug"`
	Description      *string           `json:"description"`
	BasePrice        *int64            `json:"base_price"`
	CategoryID       *uint             `json:"category_id"`
	SubcategoryID    *uint             `json:"subcategory_id"`
	ClearSubcategory bool              `json:"clear_subcategory"`
	BrandID          *uint             `json:"brand_id"`
	ClearBrand       bool              `json:"clear_brand"`
	Images           *model.StringList `json:"images"`
	Tags             *model.StringList `json:"tags"`
	Specifications   *model.SpecMap    `json:"specifications"`
	IsFeatured       *bool             `json:"is_featured"`
	IsActive         *bool             `json:"is_active"`
}

// ListProducts returns products matching the query filters
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts, ok := parseProductListQuery(c)
	if !ok {
		return
	}

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// GetProduct returns a product by ID or slug with derived pricing
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.productService.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"identifier": c.Param("id"),
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a new product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.CreateProductInput{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		CategoryID:     req.CategoryID,
		SubcategoryID:  req.SubcategoryID,
		BrandID:        req.BrandID,
		Images:         req.Images,
		Tags:           req.Tags,
		Specifications: req.Specifications,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		ctrl.respondProductError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates an existing product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, service.UpdateProductInput{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		BasePrice:        req.BasePrice,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		ClearSubcategory: req.ClearSubcategory,
		BrandID:          req.BrandID,
		ClearBrand:       req.ClearBrand,
		Images:           req.Images,
		Tags:             req.Tags,
		Specifications:   req.Specifications,
		IsFeatured:       req.IsFeatured,
		IsActive:         req.IsActive,
	})
	if err != nil {
		ctrl.respondProductError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deactivates a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondProductError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrInvalidRelation):
		apperrors.BadRequest(c, apperrors.CatalogInvalidRelation, "Category, subcategory or brand reference is invalid")
	case errors.Is(err, service.ErrDuplicateSlug):
		apperrors.Conflict(c, apperrors.ProductDuplicateSlug, "Slug is already in use")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}

func parseProductListQuery(c *gin.Context) (service.ProductListOptions, bool) {
	var opts service.ProductListOptions

	parseUintQuery := func(key string) (*uint, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid "+key)
			return nil, false
		}
		u := uint(v)
		return &u, true
	}
	parseInt64Query := func(key string) (*int64, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid "+key)
			return nil, false
		}
		return &v, true
	}

	var ok bool
	if opts.CategoryID, ok = parseUintQuery("category_id"); !ok {
		return opts, false
	}
	if opts.SubcategoryID, ok = parseUintQuery("subcategory_id"); !ok {
		return opts, false
	}
	if opts.BrandID, ok = parseUintQuery("brand_id"); !ok {
		return opts, false
	}
	if opts.MinPrice, ok = parseInt64Query("min_price"); !ok {
		return opts, false
	}
	if opts.MaxPrice, ok = parseInt64Query("max_price"); !ok {
		return opts, false
	}
	if opts.MinPrice != nil && opts.MaxPrice != nil && *opts.MinPrice > *opts.MaxPrice {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "min_price cannot exceed max_price")
		return opts, false
	}

	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		opts.Featured = &featured
	}
	opts.InStock = c.Query("in_stock") == "true" || c.Query("in_stock") == "1"
	opts.Tag = c.Query("tag")
	opts.Search = c.Query("search")
	opts.SortBy = c.Query("sort_by")
	opts.SortAscending = c.Query("sort_dir") == "asc"

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid limit")
			return opts, false
		}
		opts.Limit = limit
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid page")
			return opts, false
		}
		limit := opts.Limit
		if limit <= 0 {
			limit = 20
		}
		opts.Offset = (page - 1) * limit
	}

	return opts, true
}
