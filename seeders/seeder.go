package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"certificate-system/internal/catalog"
)

// SeedDemoCertificates inserts a few draft certificates owned by installerID so a fresh
// environment has data to click through.
func SeedDemoCertificates(db *pgxpool.Pool, installerID string) {
	ctx := context.Background()
	log.Println("▶️  seeding demo certificates...")

	catalogs, err := catalog.Load()
	if err != nil {
		log.Fatalf("❌ failed to load catalogs: %v", err)
	}
	if err := seedCertificates(ctx, db, catalogs, installerID); err != nil {
		log.Fatalf("❌ failed to seed certificates: %v", err)
	}
	log.Println("✅ demo certificates ready")
}
