package service

import (
	"fmt"
	"testing"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type productServiceFixture struct {
	products      ProductService
	categories    CategoryService
	brands        BrandService
	db            *gorm.DB
	categoryID    uint
	subcategoryID uint
	brandID       uint
}

func setupProductServiceTest(t *testing.T) *productServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	categoryRepo := repository.NewCategoryRepository(testDB)
	subcategoryRepo := repository.NewSubcategoryRepository(testDB)
	brandRepo := repository.NewBrandRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	f := &productServiceFixture{
		products:   NewProductService(productRepo, categoryRepo, subcategoryRepo, brandRepo),
		categories: NewCategoryService(categoryRepo, subcategoryRepo),
		brands:     NewBrandService(brandRepo),
		db:         testDB,
	}

	category, err := f.categories.CreateCategory(CreateCategoryInput{Name: "Skincare"})
	require.NoError(t, err)
	f.categoryID = category.ID

	subcategory, err := f.categories.CreateSubcategory(CreateSubcategoryInput{
		CategoryID: category.ID,
		Name:       "Serum",
	})
	require.NoError(t, err)
	f.subcategoryID = subcategory.ID

	brand, err := f.brands.CreateBrand(CreateBrandInput{Name: "Cocoon"})
	require.NoError(t, err)
	f.brandID = brand.ID

	return f
}

func TestProductService_CreateProduct(t *testing.T) {
	f := setupProductServiceTest(t)

	product, err := f.products.CreateProduct(CreateProductInput{
		Name:          "Tinh chất Vitamin C",
		BasePrice:     350000,
		CategoryID:    f.categoryID,
		SubcategoryID: &f.subcategoryID,
		BrandID:       &f.brandID,
		Tags:          model.StringList{"vitamin-c", "brightening"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tinh-chat-vitamin-c", product.Slug)
	assert.True(t, product.IsActive)
	assert.NotNil(t, product.Images, "images default to an empty list, not null")
	assert.Equal(t, int64(350000), product.EffectivePrice)
}

func TestProductService_CreateProductInvalidRelations(t *testing.T) {
	f := setupProductServiceTest(t)

	otherCategory, err := f.categories.CreateCategory(CreateCategoryInput{Name: "Makeup"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{
			name: "Unknown category",
			input: CreateProductInput{
				Name:       "Lost Product",
				BasePrice:  100000,
				CategoryID: 9999,
			},
		},
		{
			name: "Unknown subcategory",
			input: CreateProductInput{
				Name:          "Lost Product",
				BasePrice:     100000,
				CategoryID:    f.categoryID,
				SubcategoryID: ptr(uint(9999)),
			},
		},
		{
			name: "Subcategory from another category",
			input: CreateProductInput{
				Name:          "Mismatched Product",
				BasePrice:     100000,
				CategoryID:    otherCategory.ID,
				SubcategoryID: &f.subcategoryID,
			},
		},
		{
			name: "Unknown brand",
			input: CreateProductInput{
				Name:       "Brandless Product",
				BasePrice:  100000,
				CategoryID: f.categoryID,
				BrandID:    ptr(uint(9999)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.CreateProduct(tt.input)
			assert.ErrorIs(t, err, ErrInvalidRelation)
		})
	}
}

func TestProductService_GetProduct(t *testing.T) {
	f := setupProductServiceTest(t)

	created, err := f.products.CreateProduct(CreateProductInput{
		Name:       "Sữa rửa mặt nghệ",
		BasePrice:  195000,
		CategoryID: f.categoryID,
	})
	require.NoError(t, err)

	t.Run("By numeric ID", func(t *testing.T) {
		found, err := f.products.GetProduct(fmt.Sprintf("%d", created.ID))
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("By slug", func(t *testing.T) {
		found, err := f.products.GetProduct("sua-rua-mat-nghe")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("Unknown identifier", func(t *testing.T) {
		_, err := f.products.GetProduct("does-not-exist")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_DerivedFields(t *testing.T) {
	f := setupProductServiceTest(t)

	created, err := f.products.CreateProduct(CreateProductInput{
		Name:       "Son kem lì",
		BasePrice:  250000,
		CategoryID: f.categoryID,
	})
	require.NoError(t, err)

	variants := []model.ProductVariant{
		{ProductID: created.ID, Name: "Đỏ gạch", SKU: "SON-01", Price: 260000, Stock: 5, IsDefault: true, IsActive: true},
		{ProductID: created.ID, Name: "Hồng đất", SKU: "SON-02", Price: 240000, Stock: 3, IsActive: true},
		{ProductID: created.ID, Name: "Cam cháy", SKU: "SON-03", Price: 100000, Stock: 99, IsActive: false},
	}
	for i := range variants {
		require.NoError(t, f.db.Create(&variants[i]).Error)
	}

	product, err := f.products.GetProduct(created.Slug)
	require.NoError(t, err)

	assert.True(t, product.HasVariants)
	assert.Equal(t, int64(260000), product.EffectivePrice, "default variant price wins")
	assert.Equal(t, int64(240000), product.MinPrice, "inactive variants are ignored")
	assert.Equal(t, 8, product.TotalStock)
}

func TestProductService_DerivedFieldsWithoutVariants(t *testing.T) {
	f := setupProductServiceTest(t)

	created, err := f.products.CreateProduct(CreateProductInput{
		Name:       "Mặt nạ giấy",
		BasePrice:  35000,
		CategoryID: f.categoryID,
	})
	require.NoError(t, err)

	product, err := f.products.GetProduct(created.Slug)
	require.NoError(t, err)

	assert.False(t, product.HasVariants)
	assert.Equal(t, int64(35000), product.EffectivePrice)
	assert.Equal(t, int64(35000), product.MinPrice)
	assert.Equal(t, 0, product.TotalStock)
}

func TestProductService_UpdateProduct(t *testing.T) {
	f := setupProductServiceTest(t)

	created, err := f.products.CreateProduct(CreateProductInput{
		Name:          "Tinh chất B5",
		BasePrice:     320000,
		CategoryID:    f.categoryID,
		SubcategoryID: &f.subcategoryID,
		BrandID:       &f.brandID,
	})
	require.NoError(t, err)

	t.Run("Clear brand", func(t *testing.T) {
		updated, err := f.products.UpdateProduct(created.ID, UpdateProductInput{ClearBrand: true})
		require.NoError(t, err)
		assert.Nil(t, updated.BrandID)
	})

	t.Run("Category change must keep subcategory consistent", func(t *testing.T) {
		other, err := f.categories.CreateCategory(CreateCategoryInput{Name: "Makeup"})
		require.NoError(t, err)

		_, err = f.products.UpdateProduct(created.ID, UpdateProductInput{CategoryID: &other.ID})
		assert.ErrorIs(t, err, ErrInvalidRelation)

		// clearing the subcategory along with the move is fine
		updated, err := f.products.UpdateProduct(created.ID, UpdateProductInput{
			CategoryID:       &other.ID,
			ClearSubcategory: true,
		})
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.CategoryID)
		assert.Nil(t, updated.SubcategoryID)
	})

	t.Run("Rename regenerates slug", func(t *testing.T) {
		name := "Tinh chất HA"
		updated, err := f.products.UpdateProduct(created.ID, UpdateProductInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "tinh-chat-ha", updated.Slug)
	})

	t.Run("Unknown product", func(t *testing.T) {
		_, err := f.products.UpdateProduct(9999, UpdateProductInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	f := setupProductServiceTest(t)

	makeup, err := f.categories.CreateCategory(CreateCategoryInput{Name: "Makeup"})
	require.NoError(t, err)

	serum, err := f.products.CreateProduct(CreateProductInput{
		Name:          "Serum Vitamin C",
		BasePrice:     350000,
		CategoryID:    f.categoryID,
		SubcategoryID: &f.subcategoryID,
		BrandID:       &f.brandID,
		Tags:          model.StringList{"vitamin-c"},
	})
	require.NoError(t, err)

	lipstick, err := f.products.CreateProduct(CreateProductInput{
		Name:       "Son lì",
		BasePrice:  220000,
		CategoryID: makeup.ID,
		IsFeatured: true,
	})
	require.NoError(t, err)

	hidden, err := f.products.CreateProduct(CreateProductInput{
		Name:       "Kem cũ",
		BasePrice:  90000,
		CategoryID: makeup.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.products.DeleteProduct(hidden.ID))

	t.Run("Deactivated products excluded", func(t *testing.T) {
		products, total, err := f.products.ListProducts(ProductListOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, products, 2)
	})

	t.Run("Filter by category", func(t *testing.T) {
		products, total, err := f.products.ListProducts(ProductListOptions{CategoryID: &f.categoryID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, serum.ID, products[0].ID)
	})

	t.Run("Filter by price range", func(t *testing.T) {
		min := int64(300000)
		products, _, err := f.products.ListProducts(ProductListOptions{MinPrice: &min})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, serum.ID, products[0].ID)
	})

	t.Run("Filter by featured", func(t *testing.T) {
		featured := true
		products, _, err := f.products.ListProducts(ProductListOptions{Featured: &featured})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, lipstick.ID, products[0].ID)
	})

	t.Run("Filter by tag", func(t *testing.T) {
		products, _, err := f.products.ListProducts(ProductListOptions{Tag: "vitamin-c"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, serum.ID, products[0].ID)
	})

	t.Run("Search by name", func(t *testing.T) {
		products, _, err := f.products.ListProducts(ProductListOptions{Search: "Serum"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, serum.ID, products[0].ID)
	})

	t.Run("Sort by price ascending", func(t *testing.T) {
		products, _, err := f.products.ListProducts(ProductListOptions{
			SortBy:        "price",
			SortAscending: true,
		})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, lipstick.ID, products[0].ID)
	})

	t.Run("Pagination keeps total", func(t *testing.T) {
		products, total, err := f.products.ListProducts(ProductListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, products, 1)
	})
}

func ptr[T any](v T) *T {
	return &v
}
