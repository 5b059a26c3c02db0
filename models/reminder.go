package models

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
)

// QueuePartyReminders writes one outbox row per selected party in a single
// transaction. The dispatcher picks the rows up and publishes them; the
// request itself never talks to Pub/Sub. Parties without a resolvable
// summary row are skipped and reported in the skipped count.
func QueuePartyReminders(ctx context.Context, body string, partyIds []string) (queued int, skipped int, err error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, 0, utils.ErrorEmptyMessageBody
	}

	db := config.GetDB()
	if db == nil {
		return 0, 0, utils.ErrorDatabaseNotReady
	}

	summaries := partySummaryStore.List(ctx)
	byId := make(map[string]*PartySummary, len(summaries))
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		byId[s.ID] = s
		names = append(names, s.PartyName)
	}
	emails := FetchPartyEmails(ctx, names)

	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	actor, _ := utils.GetActorFromContext(ctx)

	var records []*PartyReminderRecord
	for _, id := range partyIds {
		summary, ok := byId[id]
		if !ok {
			skipped++
			continue
		}
		records = append(records, &PartyReminderRecord{
			PartyId:       summary.ID,
			PartyName:     summary.PartyName,
			Email:         utils.DereferencePtr(emails[summary.ID]),
			Body:          body,
			PublishStatus: ReminderPublishStatusPending,
			QueuedBy:      actor,
			CorrelationId: correlationId,
		})
	}
	if len(records) == 0 {
		return 0, skipped, nil
	}

	if err := db.WithContext(ctx).Create(&records).Error; err != nil {
		config.LogError(config.GetLogger(), "reminder", "QueuePartyReminders", "insert outbox rows", partyIds, err)
		return 0, skipped, err
	}
	return len(records), skipped, nil
}

// SeedStores force-resets every collection to its built-in seed data.
func SeedStores(ctx context.Context) {
	partySummaryStore.Replace(ctx, seedPartySummaries())
	auditRecordStore.Replace(ctx, seedAuditRecords())
	partyDetailsStore.Replace(ctx, seedPartyDetails())
}
