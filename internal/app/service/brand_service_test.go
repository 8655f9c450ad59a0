package service

import (
	"testing"

	"github.com/vyanhpham/rosea-backend/internal/app/model"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBrandServiceTest(t *testing.T) (BrandService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewBrandService(repository.NewBrandRepository(testDB)), testDB
}

func TestBrandService_CreateBrand(t *testing.T) {
	brandService, _ := setupBrandServiceTest(t)

	brand, err := brandService.CreateBrand(CreateBrandInput{
		Name:   "Cocoon",
		NameEn: "Cocoon Vietnam",
	})
	require.NoError(t, err)
	assert.True(t, brand.IsActive)
	assert.Equal(t, "Cocoon", brand.Name)

	t.Run("Duplicate name rejected", func(t *testing.T) {
		_, err := brandService.CreateBrand(CreateBrandInput{Name: "Cocoon"})
		assert.ErrorIs(t, err, ErrDuplicateBrandName)
	})
}

func TestBrandService_DeactivatedBrandStillBlocksName(t *testing.T) {
	brandService, testDB := setupBrandServiceTest(t)

	brand, err := brandService.CreateBrand(CreateBrandInput{Name: "Thorakao"})
	require.NoError(t, err)
	require.NoError(t, brandService.DeleteBrand(brand.ID))

	var stored model.Brand
	require.NoError(t, testDB.First(&stored, brand.ID).Error)
	assert.False(t, stored.IsActive)

	// the name stays reserved while the row exists
	_, err = brandService.CreateBrand(CreateBrandInput{Name: "Thorakao"})
	assert.ErrorIs(t, err, ErrDuplicateBrandName)
}

func TestBrandService_ListBrands(t *testing.T) {
	brandService, _ := setupBrandServiceTest(t)

	active, err := brandService.CreateBrand(CreateBrandInput{Name: "Cocoon"})
	require.NoError(t, err)
	inactive, err := brandService.CreateBrand(CreateBrandInput{Name: "Thorakao"})
	require.NoError(t, err)
	require.NoError(t, brandService.DeleteBrand(inactive.ID))

	publicList, err := brandService.ListBrands(true)
	require.NoError(t, err)
	require.Len(t, publicList, 1)
	assert.Equal(t, active.ID, publicList[0].ID)

	adminList, err := brandService.ListBrands(false)
	require.NoError(t, err)
	assert.Len(t, adminList, 2)
}

func TestBrandService_UpdateBrand(t *testing.T) {
	brandService, _ := setupBrandServiceTest(t)

	brand, err := brandService.CreateBrand(CreateBrandInput{Name: "Cocoon"})
	require.NoError(t, err)
	_, err = brandService.CreateBrand(CreateBrandInput{Name: "Thorakao"})
	require.NoError(t, err)

	t.Run("Rename", func(t *testing.T) {
		name := "Cocoon Original"
		updated, err := brandService.UpdateBrand(brand.ID, UpdateBrandInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Cocoon Original", updated.Name)
	})

	t.Run("Rename onto existing name rejected", func(t *testing.T) {
		name := "Thorakao"
		_, err := brandService.UpdateBrand(brand.ID, UpdateBrandInput{Name: &name})
		assert.ErrorIs(t, err, ErrDuplicateBrandName)
	})

	t.Run("Unknown brand", func(t *testing.T) {
		name := "Ghost"
		_, err := brandService.UpdateBrand(9999, UpdateBrandInput{Name: &name})
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})
}
