package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderService := service.NewOrderService(repository.NewOrderRepository(testDB), testDB)
	orderController := NewOrderController(orderService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"product_id":   1,
				"product_name": "Serum Vitamin C",
				"sku":          "SRM-01",
				"price":        350000,
				"quantity":     2,
			},
		},
		"shipping_cost":    30000,
		"total":            730000,
		"customer_name":    "Nguyễn Thị Hoa",
		"customer_phone":   "0901234567",
		"shipping_address": "12 Lý Thường Kiệt, Quận 10, TP.HCM",
	}
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrderController_CreateOrder_Success(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	w := postJSON(router, "/orders", orderPayload())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	order := response["order"].(map[string]interface{})
	assert.Regexp(t, `^ORD-\d{6}-\d{4}$`, order["order_number"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(700000), order["subtotal"])
}

func TestOrderController_CreateOrder_Validation(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	t.Run("No items", func(t *testing.T) {
		payload := orderPayload()
		payload["items"] = []map[string]interface{}{}

		w := postJSON(router, "/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing customer name", func(t *testing.T) {
		payload := orderPayload()
		delete(payload, "customer_name")

		w := postJSON(router, "/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Subtotal mismatch", func(t *testing.T) {
		payload := orderPayload()
		payload["subtotal"] = 1

		w := postJSON(router, "/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Subtotal does not match line items")
	})
}

func TestOrderController_GetOrder(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.GET("/admin/orders/:id", controller.GetOrder)

	w := postJSON(router, "/orders", orderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	order := response["order"].(map[string]interface{})
	items := order["items"].([]interface{})
	assert.Len(t, items, 1)

	t.Run("Unknown order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderController_UpdateOrder_Status(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.PUT("/admin/orders/:id", controller.UpdateOrder)

	w := postJSON(router, "/orders", orderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	putJSON := func(path string, payload interface{}) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w = putJSON("/admin/orders/1", map[string]interface{}{"status": "processing"})
	assert.Equal(t, http.StatusOK, w.Code)

	// skipping shipped is not a legal move from processing
	w = putJSON("/admin/orders/1", map[string]interface{}{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_ListOrders_StatusFilter(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.GET("/admin/orders", controller.ListOrders)

	w := postJSON(router, "/orders", orderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Unknown status rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=cancelled", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Pending orders", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(1), response["total"])
	})
}

func TestOrderController_ExportOrders(t *testing.T) {
	controller, router, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.GET("/admin/orders/export", controller.ExportOrders)

	w := postJSON(router, "/orders", orderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
}
