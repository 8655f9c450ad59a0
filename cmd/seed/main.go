package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/vyanhpham/rosea-backend/config"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the initial admin account and optionally imports a product
// catalog from an xlsx workbook.
//
// Usage:
//
//	go run cmd/seed/main.go [-file catalog.xlsx] [-yes]
//
// Expected columns: Category | Subcategory | Brand | Product | Price |
// Variant | SKU | Variant Price | Stock
func main() {
	filePath := flag.String("file", "", "xlsx catalog file to import")
	skipConfirm := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminEmail := getenv("ADMIN_EMAIL", "admin@rosea.vn")
	adminPassword := getenv("ADMIN_PASSWORD", "changeme123")
	if err := db.SeedAdminUser(adminEmail, adminPassword); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	fmt.Printf("Admin account ready: %s\n", adminEmail)

	if *filePath == "" {
		return
	}

	fmt.Printf("Reading catalog file: %s\n", *filePath)
	rows, err := readCatalogRows(*filePath)
	if err != nil {
		log.Fatal("Failed to read xlsx:", err)
	}
	fmt.Printf("Rows to import: %d\n", len(rows))

	if !*skipConfirm {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	if err := importCatalog(rows); err != nil {
		log.Fatal("Import failed:", err)
	}
	fmt.Println("Import completed.")
}

type catalogRow struct {
	Category     string
	Subcategory  string
	Brand        string
	Product      string
	Price        int64
	Variant      string
	SKU          string
	VariantPrice int64
	Stock        int
}

func readCatalogRows(path string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	rows := make([]catalogRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		get := func(col int) string {
			if col < len(cells) {
				return strings.TrimSpace(cells[col])
			}
			return ""
		}

		row := catalogRow{
			Category:    get(0),
			Subcategory: get(1),
			Brand:       get(2),
			Product:     get(3),
			Variant:     get(5),
			SKU:         get(6),
		}
		if row.Category == "" || row.Product == "" {
			continue
		}

		if row.Price, err = parsePrice(get(4)); err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", i+2, get(4))
		}
		if v := get(7); v != "" {
			if row.VariantPrice, err = parsePrice(v); err != nil {
				return nil, fmt.Errorf("row %d: invalid variant price %q", i+2, v)
			}
		}
		if v := get(8); v != "" {
			if row.Stock, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: invalid stock %q", i+2, v)
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func parsePrice(s string) (int64, error) {
	s = strings.NewReplacer(",", "", ".", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// importCatalog runs rows through the service layer so slug generation,
// uniqueness and default-variant election behave exactly as in the API.
func importCatalog(rows []catalogRow) error {
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	subcategoryRepo := repository.NewSubcategoryRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())

	categoryService := service.NewCategoryService(categoryRepo, subcategoryRepo)
	brandService := service.NewBrandService(brandRepo)
	productService := service.NewProductService(productRepo, categoryRepo, subcategoryRepo, brandRepo)
	variantService := service.NewVariantService(variantRepo, db.GetDB())

	categories := map[string]uint{}
	subcategories := map[string]uint{}
	brands := map[string]uint{}
	products := map[string]uint{}

	for _, row := range rows {
		categoryID, ok := categories[row.Category]
		if !ok {
			category, err := categoryService.CreateCategory(service.CreateCategoryInput{Name: row.Category})
			if err != nil {
				return fmt.Errorf("category %q: %w", row.Category, err)
			}
			categoryID = category.ID
			categories[row.Category] = categoryID
		}

		var subcategoryID *uint
		if row.Subcategory != "" {
			key := row.Category + "/" + row.Subcategory
			id, ok := subcategories[key]
			if !ok {
				subcategory, err := categoryService.CreateSubcategory(service.CreateSubcategoryInput{
					CategoryID: categoryID,
					Name:       row.Subcategory,
				})
				if err != nil {
					return fmt.Errorf("subcategory %q: %w", row.Subcategory, err)
				}
				id = subcategory.ID
				subcategories[key] = id
			}
			subcategoryID = &id
		}

		var brandID *uint
		if row.Brand != "" {
			id, ok := brands[row.Brand]
			if !ok {
				brand, err := brandService.CreateBrand(service.CreateBrandInput{Name: row.Brand})
				if err != nil {
					return fmt.Errorf("brand %q: %w", row.Brand, err)
				}
				id = brand.ID
				brands[row.Brand] = id
			}
			brandID = &id
		}

		productID, ok := products[row.Product]
		if !ok {
			product, err := productService.CreateProduct(service.CreateProductInput{
				Name:          row.Product,
				BasePrice:     row.Price,
				CategoryID:    categoryID,
				SubcategoryID: subcategoryID,
				BrandID:       brandID,
			})
			if err != nil {
				return fmt.Errorf("product %q: %w", row.Product, err)
			}
			productID = product.ID
			products[row.Product] = productID
			fmt.Printf("  + %s\n", row.Product)
		}

		if row.Variant != "" && row.SKU != "" {
			price := row.VariantPrice
			if price == 0 {
				price = row.Price
			}
			_, err := variantService.CreateVariant(productID, service.CreateVariantInput{
				Name:  row.Variant,
				SKU:   row.SKU,
				Price: price,
				Stock: row.Stock,
			})
			if err != nil {
				return fmt.Errorf("variant %q (%s): %w", row.Variant, row.SKU, err)
			}
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
