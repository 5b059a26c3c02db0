package models

import (
	"errors"
	"strings"
)

// Tab selects which reconciliation view a classification runs against.
// TALLY is the ledger-A system, ERP the ledger-B system.
type Tab string

const (
	TabTally Tab = "TALLY"
	TabErp   Tab = "ERP"
	TabAudit Tab = "AUDIT"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToUpper(strings.TrimSpace(s))) {
	case TabTally:
		return TabTally, nil
	case TabErp:
		return TabErp, nil
	case TabAudit:
		return TabAudit, nil
	}
	return "", errors.New("invalid tab")
}

type AuditStatus string

const (
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusInProgress AuditStatus = "in-progress"
	AuditStatusPending    AuditStatus = "pending"
)

// CoerceAuditStatus maps anything unrecognized to pending, matching the
// lenient import behavior of the source spreadsheets.
func CoerceAuditStatus(s string) AuditStatus {
	switch AuditStatus(strings.ToLower(strings.TrimSpace(s))) {
	case AuditStatusCompleted:
		return AuditStatusCompleted
	case AuditStatusInProgress:
		return AuditStatusInProgress
	default:
		return AuditStatusPending
	}
}

type ReminderPublishStatus string

const (
	ReminderPublishStatusPending   ReminderPublishStatus = "Pending"
	ReminderPublishStatusPublished ReminderPublishStatus = "Published"
	ReminderPublishStatusFailed    ReminderPublishStatus = "Failed"
)
