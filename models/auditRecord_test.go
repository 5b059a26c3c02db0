package models

import "testing"

func TestCoerceAuditStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want AuditStatus
	}{
		{"completed", AuditStatusCompleted},
		{"Completed", AuditStatusCompleted},
		{"in-progress", AuditStatusInProgress},
		{"pending", AuditStatusPending},
		{"", AuditStatusPending},
		{"done", AuditStatusPending},
	}
	for _, tt := range tests {
		if got := CoerceAuditStatus(tt.raw); got != tt.want {
			t.Errorf("CoerceAuditStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCalculateYearwiseSummary(t *testing.T) {
	records := []*AuditRecord{
		{Year: "2024-25", Status: AuditStatusCompleted},
		{Year: "2024-25", Status: AuditStatusCompleted},
		{Year: "2024-25", Status: AuditStatusInProgress},
		{Year: "2023-24", Status: AuditStatusPending},
		{Year: "2022-23", Status: AuditStatusCompleted},
	}

	summaries := CalculateYearwiseSummary(records)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 year groups, got %d", len(summaries))
	}

	wantYears := []string{"2024-25", "2023-24", "2022-23"}
	for i, want := range wantYears {
		if summaries[i].Year != want {
			t.Errorf("year at %d = %q, want %q", i, summaries[i].Year, want)
		}
	}

	first := summaries[0]
	if first.Total != 3 || first.Completed != 2 || first.Pending != 1 {
		t.Errorf("2024-25 counts = %+v", first)
	}
	// 2/3 rounds to 67.
	if first.Percentage != 67 {
		t.Errorf("2024-25 percentage = %d, want 67", first.Percentage)
	}

	if summaries[1].Percentage != 0 {
		t.Errorf("2023-24 percentage = %d, want 0", summaries[1].Percentage)
	}
	if summaries[2].Percentage != 100 {
		t.Errorf("2022-23 percentage = %d, want 100", summaries[2].Percentage)
	}
}

func TestCalculateYearwiseSummaryEmpty(t *testing.T) {
	if got := CalculateYearwiseSummary(nil); len(got) != 0 {
		t.Errorf("expected empty summary, got %v", got)
	}
}

func TestCalculateYearwiseSummaryInvariant(t *testing.T) {
	for _, summary := range CalculateYearwiseSummary(seedAuditRecords()) {
		if summary.Completed+summary.Pending != summary.Total {
			t.Errorf("year %s: completed %d + pending %d != total %d",
				summary.Year, summary.Completed, summary.Pending, summary.Total)
		}
	}
}

func TestAuditRecordFromRow(t *testing.T) {
	rec, ok := auditRecordFromRow([]string{"2024-25", "ABC Enterprises", "45658", "2025-01-18", "Completed", "R. Sharma", "2025-01-20", "Yes"}, "id-1")
	if !ok {
		t.Fatal("row rejected")
	}
	if rec.StartDate != "2025-01-01" {
		t.Errorf("start date = %q, want serial converted to 2025-01-01", rec.StartDate)
	}
	if rec.Status != AuditStatusCompleted {
		t.Errorf("status = %q", rec.Status)
	}
	if rec.CompletionDate == nil || *rec.CompletionDate != "2025-01-20" {
		t.Errorf("completion date = %v", rec.CompletionDate)
	}
	if !rec.PdfGenerated {
		t.Error("pdf flag not parsed")
	}

	if _, ok := auditRecordFromRow([]string{"2024-25", "   "}, "id-2"); ok {
		t.Error("blank party row should be rejected")
	}

	rec, ok = auditRecordFromRow([]string{"2023-24", "XYZ Suppliers", "", "", "", "", "", "No"}, "id-3")
	if !ok {
		t.Fatal("minimal row rejected")
	}
	if rec.Status != AuditStatusPending {
		t.Errorf("blank status should coerce to pending, got %q", rec.Status)
	}
	if rec.CompletionDate != nil {
		t.Errorf("blank completion date should be nil, got %q", *rec.CompletionDate)
	}
	if rec.PdfGenerated {
		t.Error("pdf flag should be false for No")
	}
}
