package workflow

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/models"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dispatchInterval = 15 * time.Second
	dispatchBatch    = 50
	maxAttempts      = 5
)

// ReminderDispatcher drains the reminder outbox: Pending rows are published
// to Pub/Sub and marked Published or Failed. Rows that keep failing stop
// being retried after maxAttempts.
type ReminderDispatcher struct {
	logger *logrus.Logger
}

func NewReminderDispatcher() *ReminderDispatcher {
	return &ReminderDispatcher{logger: config.GetLogger()}
}

// Run blocks until ctx is cancelled. Safe to start before the database is
// connected; ticks with no database are skipped.
func (d *ReminderDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !config.ReminderPublishEnabled() {
				continue
			}
			d.dispatchBatch(ctx)
		}
	}
}

func (d *ReminderDispatcher) dispatchBatch(ctx context.Context) {
	db := config.GetDB()
	if db == nil {
		return
	}

	ctx, span := otel.Tracer("workflow").Start(ctx, "reminderDispatcher.dispatchBatch")
	defer span.End()

	var pending []*models.PartyReminderRecord
	err := db.WithContext(ctx).
		Where("publish_status = ? AND attempt_count < ?", models.ReminderPublishStatusPending, maxAttempts).
		Order("id asc").
		Limit(dispatchBatch).
		Find(&pending).Error
	if err != nil {
		config.LogError(d.logger, "workflow", "dispatchBatch", "load pending reminders", nil, err)
		return
	}
	if len(pending) == 0 {
		return
	}
	span.SetAttributes(attribute.Int("reminders.pending", len(pending)))

	var published int
	for _, rec := range pending {
		messageId, err := config.PublishPartyReminder(ctx, config.PartyReminderMessage{
			ID:            rec.ID,
			PartyId:       rec.PartyId,
			PartyName:     rec.PartyName,
			Email:         rec.Email,
			Body:          rec.Body,
			QueuedAt:      rec.CreatedAt,
			CorrelationId: rec.CorrelationId,
		})

		updates := map[string]interface{}{
			"attempt_count": rec.AttemptCount + 1,
		}
		if err != nil {
			config.LogError(d.logger, "workflow", "dispatchBatch", "publish reminder", rec.ID, err)
			errText := err.Error()
			if len(errText) > 255 {
				errText = errText[:255]
			}
			updates["publish_status"] = models.ReminderPublishStatusFailed
			updates["last_publish_error"] = errText
		} else {
			published++
			updates["publish_status"] = models.ReminderPublishStatusPublished
			updates["published_message_id"] = messageId
			updates["last_publish_error"] = nil
		}

		if uerr := db.WithContext(ctx).Model(&models.PartyReminderRecord{}).
			Where("id = ?", rec.ID).
			Updates(updates).Error; uerr != nil {
			config.LogError(d.logger, "workflow", "dispatchBatch", "update reminder row", rec.ID, uerr)
		}
	}

	d.logger.WithFields(logrus.Fields{
		"module":    "workflow",
		"pending":   len(pending),
		"published": published,
	}).Info("reminder batch dispatched")
}

// RetryFailedReminders flips Failed rows under the attempt cap back to
// Pending so the next tick retries them.
func RetryFailedReminders(ctx context.Context) (int64, error) {
	db := config.GetDB()
	if db == nil {
		return 0, nil
	}
	result := db.WithContext(ctx).Model(&models.PartyReminderRecord{}).
		Where("publish_status = ? AND attempt_count < ?", models.ReminderPublishStatusFailed, maxAttempts).
		Update("publish_status", models.ReminderPublishStatusPending)
	return result.RowsAffected, result.Error
}
