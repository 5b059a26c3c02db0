package main

import (
	"context"
	"log"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/joho/godotenv"
)

// Resets every collection to its built-in sample data. Destructive:
// existing rows are replaced.
func main() {
	godotenv.Load()

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	ctx := utils.SetActorInContext(context.Background(), "cli")
	models.SeedStores(ctx)

	log.Printf("seeded collections: %d party summaries, %d audit records, %d party masters",
		len(models.ListPartySummaries(ctx)),
		len(models.ListAuditRecords(ctx)),
		len(models.ListPartyDetails(ctx)))
}
