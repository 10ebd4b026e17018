package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/spreadsheet"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{Level: "warn", Format: "console", EnableColor: true})

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productService := service.NewProductService(repository.NewProductRepository(db.GetDB()))

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	result, err := spreadsheet.ReadProducts(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Reading sheet: %s\n", result.Sheet)
	for _, skipped := range result.Skipped {
		fmt.Printf("  skipped %s\n", skipped.Error())
	}
	fmt.Printf("Total products to import: %d (skipped rows: %d)\n", len(result.Products), len(result.Skipped))

	if len(result.Products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	existing, err := productService.ListProducts(nil)
	if err != nil {
		log.Fatal("Failed to load existing products:", err)
	}
	bySlug := make(map[string]*model.Product, len(existing))
	for i := range existing {
		bySlug[existing[i].Slug] = &existing[i]
	}

	// 이미 있는 slug는 가격 정보만 갱신 (공개 상태, 설명, 이미지는 유지)
	created, updated, failed := 0, 0, 0
	for i := range result.Products {
		product := &result.Products[i]

		if current, ok := bySlug[product.Slug]; ok {
			product.ID = current.ID
			product.Status = current.Status
			product.Description = current.Description
			product.ImageURL = current.ImageURL
			err = productService.UpdateProduct(product)
			if err == nil {
				updated++
			}
		} else {
			err = productService.CreateProduct(product)
			if err == nil {
				created++
			}
		}
		if err != nil {
			failed++
			fmt.Printf("  failed %s: %v\n", product.Slug, err)
		}
	}

	fmt.Println("Import completed!")
	fmt.Printf("Created: %d, updated: %d, failed: %d\n", created, updated, failed)
}
