package config

import (
	"os"
	"strings"
)

// ReminderPublishEnabled gates the Pub/Sub reminder dispatcher.
// Queued reminders stay pending until it is turned on.
//
// Set via env:
// - REMINDER_PUBLISH_ENABLED=true
func ReminderPublishEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("REMINDER_PUBLISH_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ImportLockEnabled serializes spreadsheet imports per collection with a
// best-effort Redis lock. Imports still work without it; the lock only
// prevents two concurrent imports from racing the replace.
//
// Set via env:
// - IMPORT_LOCK_ENABLED=true
func ImportLockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("IMPORT_LOCK_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
