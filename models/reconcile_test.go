package models

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := ParseDateValue(s)
	if !ok {
		t.Fatalf("could not parse date %q", s)
	}
	return d
}

func TestIsDoneErp(t *testing.T) {
	reference := "2025-01-15"
	tests := []struct {
		name    string
		erpDate string
		want    bool
	}{
		{"on reference day", "2025-01-15", true},
		{"after reference", "2025-02-01", true},
		{"day before", "2025-01-14", false},
		{"missing", "", false},
		{"unparseable", "pending confirmation", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PartySummary{PartyName: "Test", ErpLastTransactionDate: tt.erpDate}
			if got := p.IsDone(TabErp, mustDate(t, reference)); got != tt.want {
				t.Errorf("IsDone(ERP) with erp date %q = %v, want %v", tt.erpDate, got, tt.want)
			}
		})
	}
}

func TestIsDoneTallyAnyField(t *testing.T) {
	reference := mustDate(t, "2025-01-15")
	tests := []struct {
		name  string
		party PartySummary
		want  bool
	}{
		{"erp transaction date current", PartySummary{ErpLastTransactionDate: "2025-01-15"}, true},
		{"tally transaction date current", PartySummary{TallyLastTransactionDate: "2025-01-20"}, true},
		{"day end date current", PartySummary{ErpLastDayEndDate: "2025-01-16"}, true},
		{"all stale", PartySummary{
			ErpLastTransactionDate:   "2024-12-31",
			TallyLastTransactionDate: "2024-11-01",
			ErpLastDayEndDate:        "2025-01-14",
		}, false},
		{"all empty", PartySummary{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.party.IsDone(TabTally, reference); got != tt.want {
				t.Errorf("IsDone(TALLY) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDoneAudit(t *testing.T) {
	reference := mustDate(t, "2025-01-15")
	tests := []struct {
		name      string
		auditYear string
		want      bool
	}{
		{"year set", "2024-25", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PartySummary{AuditYear: tt.auditYear, ErpLastTransactionDate: "2020-01-01"}
			if got := p.IsDone(TabAudit, reference); got != tt.want {
				t.Errorf("IsDone(AUDIT) with year %q = %v, want %v", tt.auditYear, got, tt.want)
			}
		})
	}
}

func TestSummarizeParties(t *testing.T) {
	reference := mustDate(t, "2025-01-01")
	parties := seedPartySummaries()

	counts := SummarizeParties(parties, TabTally, reference)
	if len(counts) != 3 {
		t.Fatalf("expected 3 chart counts, got %d", len(counts))
	}
	if counts[0].Label != "Total Parties" || counts[1].Label != "Done Parties" || counts[2].Label != "Pending Parties" {
		t.Fatalf("unexpected labels: %v", counts)
	}
	if counts[0].Value != 3 {
		t.Errorf("total = %d, want 3", counts[0].Value)
	}
	// Only ABC Enterprises has activity on or after 2025-01-01.
	if counts[1].Value != 1 {
		t.Errorf("done = %d, want 1", counts[1].Value)
	}
	if counts[2].Value != 2 {
		t.Errorf("pending = %d, want 2", counts[2].Value)
	}
}

func TestSummarizePartiesInvariant(t *testing.T) {
	reference := mustDate(t, "2024-07-01")
	parties := seedPartySummaries()
	for _, tab := range []Tab{TabTally, TabErp, TabAudit} {
		counts := SummarizeParties(parties, tab, reference)
		if counts[1].Value+counts[2].Value != counts[0].Value {
			t.Errorf("tab %s: done %d + pending %d != total %d", tab, counts[1].Value, counts[2].Value, counts[0].Value)
		}
	}
}

func TestFilterPartiesPartition(t *testing.T) {
	reference := mustDate(t, "2024-07-01")
	parties := seedPartySummaries()
	for _, tab := range []Tab{TabTally, TabErp, TabAudit} {
		done := FilterParties(parties, tab, reference, true)
		pending := FilterParties(parties, tab, reference, false)
		if len(done)+len(pending) != len(parties) {
			t.Errorf("tab %s: partition sizes %d + %d != %d", tab, len(done), len(pending), len(parties))
		}
		for _, p := range done {
			if !p.IsDone(tab, reference) {
				t.Errorf("tab %s: %s in done set but classified pending", tab, p.PartyName)
			}
		}
		for _, p := range pending {
			if p.IsDone(tab, reference) {
				t.Errorf("tab %s: %s in pending set but classified done", tab, p.PartyName)
			}
		}
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		raw     string
		want    Tab
		wantErr bool
	}{
		{"TALLY", TabTally, false},
		{"erp", TabErp, false},
		{" audit ", TabAudit, false},
		{"ledger", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTab(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTab(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTab(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
