package main

import (
	"context"
	"flag"
	"log"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
)

// Imports a workbook straight into a collection, same replace semantics as
// the HTTP import endpoints. Useful for bulk loads during onboarding.
func main() {
	var (
		path       = flag.String("file", "", "path to the .xlsx file")
		collection = flag.String("collection", "party-summary", "party-summary | audit-records | party-details")
	)
	flag.Parse()

	if *path == "" {
		log.Fatal("-file is required")
	}

	godotenv.Load()
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	f, err := excelize.OpenFile(*path)
	if err != nil {
		log.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	ctx := utils.SetActorInContext(context.Background(), "cli")

	var count int
	switch *collection {
	case "party-summary":
		count, err = models.ImportPartySummaries(ctx, f)
	case "audit-records":
		count, err = models.ImportAuditRecords(ctx, f)
	case "party-details":
		count, err = models.ImportPartyDetails(ctx, f)
	default:
		log.Fatalf("unknown collection %q", *collection)
	}
	if err != nil {
		log.Fatalf("import failed, existing data untouched: %v", err)
	}
	log.Printf("imported %d rows into %s", count, *collection)
}
