package models

import (
	"encoding/json"
	"time"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
)

// Collection document keys. These double as Redis cache keys.
const (
	StoreKeyPartySummaries = "transactionPartySummaries"
	StoreKeyAuditRecords   = "auditRecords"
	StoreKeyPartyDetails   = "partyDetails"
)

// StoredCollection holds one whole collection as a JSON document.
// Collections are small (hundreds of rows) and always replaced atomically,
// so a kv document beats per-row tables here.
type StoredCollection struct {
	Key       string          `gorm:"primaryKey;size:64" json:"key"`
	Value     json.RawMessage `gorm:"type:json" json:"value"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PartyReminderRecord is the outbox row for reminder messages queued from
// the dashboard. The dispatcher publishes Pending rows to Pub/Sub.
type PartyReminderRecord struct {
	ID                 int                   `gorm:"primary_key" json:"id"`
	PartyId            string                `gorm:"size:64;not null" json:"party_id"`
	PartyName          string                `gorm:"size:100;not null" json:"party_name"`
	Email              string                `gorm:"size:100" json:"email"`
	Body               string                `gorm:"type:text" json:"body"`
	PublishStatus      ReminderPublishStatus `gorm:"type:enum('Pending','Published','Failed');default:'Pending'" json:"publish_status"`
	PublishedMessageId string                `gorm:"size:64" json:"published_message_id"`
	LastPublishError   *string               `gorm:"size:255" json:"last_publish_error"`
	AttemptCount       int                   `gorm:"default:0" json:"attempt_count"`
	QueuedBy           string                `gorm:"size:32" json:"queued_by"`
	CorrelationId      string                `gorm:"size:64" json:"correlation_id"`
	CreatedAt          time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func MigrateTable() {
	db := config.GetDB()
	db.AutoMigrate(&StoredCollection{})
	db.AutoMigrate(&PartyReminderRecord{})
}
