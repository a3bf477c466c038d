// cmd/ingest/main.go
//
// Standalone service that pulls supplier price lists from Google Drive and
// applies them to inventory cost prices.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/hotelops/hms-backend/internal/config"
	"github.com/hotelops/hms-backend/internal/drive"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	credentials := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON")
	if credentials == "" {
		credentials = cfg.Drive.CredentialsJSON
	}

	// Initialize Google Drive service
	driveService, err := drive.NewService(credentials)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	inventoryRepo := postgres.NewInventoryRepository(db)
	ingestService := drive.NewIngestService(driveService, inventoryRepo)

	// Create router and register routes
	r := mux.NewRouter()
	driveHandler := drive.NewHandler(driveService, ingestService, cfg.Drive.PriceListFolder)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Price list ingestion service starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
