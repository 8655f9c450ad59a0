package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVariantControllerTest(t *testing.T) (*gin.Engine, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	category := &model.Category{Name: "Trang điểm", Slug: "trang-diem", IsActive: true}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		Name:       "Son kem lì",
		Slug:       "son-kem-li",
		BasePrice:  250000,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, testDB.Create(product).Error)

	variantService := service.NewVariantService(repository.NewVariantRepository(testDB), testDB)
	variantController := NewVariantController(variantService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/products/:id/variants", variantController.CreateVariant)

	return router, product.ID
}

func TestVariantController_CreateVariant_ZeroPrice(t *testing.T) {
	router, productID := setupVariantControllerTest(t)

	// free samples and gifts-with-purchase carry a zero price
	w := postJSON(router, fmt.Sprintf("/admin/products/%d/variants", productID), map[string]interface{}{
		"name":  "Sample 5ml",
		"sku":   "SON-SAMPLE",
		"price": 0,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":0`)
}

func TestVariantController_CreateVariant_NegativePrice(t *testing.T) {
	router, productID := setupVariantControllerTest(t)

	w := postJSON(router, fmt.Sprintf("/admin/products/%d/variants", productID), map[string]interface{}{
		"name":  "Đỏ gạch",
		"sku":   "SON-01",
		"price": -1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
