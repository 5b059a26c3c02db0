package models

import (
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
)

// ChartCount is one slice of the status graph.
type ChartCount struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// IsDone classifies a party against a reference date at day granularity.
//
// TALLY counts a party done when ANY of its three activity dates is on or
// after the reference: reconciliation work on either side covers the party.
// ERP looks at the ERP last-transaction date alone. AUDIT ignores dates
// entirely and checks the audit-year marker.
func (p *PartySummary) IsDone(tab Tab, reference time.Time) bool {
	switch tab {
	case TabAudit:
		return strings.TrimSpace(p.AuditYear) != ""
	case TabTally:
		for _, value := range []string{p.ErpLastTransactionDate, p.TallyLastTransactionDate, p.ErpLastDayEndDate} {
			if dateOnOrAfter(value, reference) {
				return true
			}
		}
		return false
	default:
		return dateOnOrAfter(p.ErpLastTransactionDate, reference)
	}
}

// Missing or unparseable dates never satisfy the check; the boundary is
// inclusive.
func dateOnOrAfter(value string, reference time.Time) bool {
	d, ok := ParseDateValue(value)
	if !ok {
		return false
	}
	return !utils.TruncateToDay(d).Before(utils.TruncateToDay(reference))
}

// SummarizeParties produces the graph counts. Done and pending always sum
// to the total because each party lands in exactly one bucket.
func SummarizeParties(parties []*PartySummary, tab Tab, reference time.Time) []ChartCount {
	var done int
	for _, p := range parties {
		if p.IsDone(tab, reference) {
			done++
		}
	}
	return []ChartCount{
		{Label: "Total Parties", Value: len(parties)},
		{Label: "Done Parties", Value: done},
		{Label: "Pending Parties", Value: len(parties) - done},
	}
}

// FilterParties returns the parties whose classification matches done.
func FilterParties(parties []*PartySummary, tab Tab, reference time.Time, done bool) []*PartySummary {
	out := make([]*PartySummary, 0, len(parties))
	for _, p := range parties {
		if p.IsDone(tab, reference) == done {
			out = append(out, p)
		}
	}
	return out
}
