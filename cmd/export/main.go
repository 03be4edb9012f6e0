package main

import (
	"log"
	"os"

	"go-eternos-store/internal/repository"
	"go-eternos-store/internal/service"
	"go-eternos-store/pkg/database"

	"github.com/joho/godotenv"
)

// One-shot full export of every table to the workbook, for cron jobs or
// manual runs without going through the API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	path := os.Getenv("EXPORT_PATH")
	if path == "" {
		path = "eternos_data.xlsx"
	}

	exporter := service.NewExportService(
		repository.NewUserRepo(db),
		repository.NewProductRepo(db),
		repository.NewSaleRepo(db),
		repository.NewOrderRepo(db),
		path,
	)

	if err := exporter.ExportAll(); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("Export written to %s", path)
}
