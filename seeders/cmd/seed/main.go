package main

import (
	"flag"
	"log"

	"certificate-system/pkg/config"
	"certificate-system/pkg/database/migrations"
	"certificate-system/pkg/database/postgresql"
	"certificate-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 certificate-system seeders")
	log.Println("======================================================")

	runCertificates := flag.Bool("certificates", false, "Insert demo certificates")
	installerID := flag.String("installer", "demo-installer", "Installer id that owns the demo certificates")
	migrate := flag.Bool("migrate", true, "Apply migrations before seeding")
	flag.Parse()

	if !*runCertificates {
		log.Println("❌ No seeder selected.")
		log.Println("")
		log.Println("Flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Example:")
		log.Println("  go run ./seeders/cmd/seed -certificates -installer=installer-1")
		return
	}

	cfg := config.New()
	if *migrate {
		if err := migrations.Up(cfg.Postgres.DSN); err != nil {
			log.Fatalf("❌ migration failed: %v", err)
		}
	}
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	seeders.SeedDemoCertificates(dbPool, *installerID)

	log.Println("✅ seeding finished")
	log.Println("======================================================")
}
