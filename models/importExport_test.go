package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func buildPartySummaryWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := "Sheet1"
	for i, header := range partySummarySheet.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return f
}

func TestImportWorkbookPartySummary(t *testing.T) {
	f := buildPartySummaryWorkbook(t, [][]interface{}{
		{"ABC Enterprises", 45658, "₹1,25,000", "2025-01-15", 125000, "2025-01-14", 120000, "2024-25"},
		{"", "2024-06-15", 85000, "2024-06-15", 85000, "", 0, ""},
		{"   ", "", "", "", "", "", "", ""},
		{"Global Industries", "pending confirmation", "", "2024-07-01", 250000, "", "", ""},
	})

	records, err := ImportWorkbook(f, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (blank names skipped), got %d", len(records))
	}

	abc := records[0]
	if abc.PartyName != "ABC Enterprises" {
		t.Errorf("party name = %q", abc.PartyName)
	}
	if abc.TallyLastTransactionDate != "2025-01-01" {
		t.Errorf("serial date cell = %q, want 2025-01-01", abc.TallyLastTransactionDate)
	}
	if !abc.TallyCashBalance.Equal(decimal.NewFromInt(125000)) {
		t.Errorf("tally balance = %s", abc.TallyCashBalance)
	}
	if abc.AuditYear != "2024-25" {
		t.Errorf("audit year = %q", abc.AuditYear)
	}
	if abc.ID == "" || abc.ID == records[1].ID {
		t.Error("imported rows must get distinct ids")
	}

	global := records[1]
	if global.TallyLastTransactionDate != "pending confirmation" {
		t.Errorf("unparseable date should pass through, got %q", global.TallyLastTransactionDate)
	}
	if !global.TallyCashBalance.Equal(decimal.Zero) {
		t.Errorf("blank balance should be zero, got %s", global.TallyCashBalance)
	}
}

func TestImportWorkbookEmptySheet(t *testing.T) {
	f := buildPartySummaryWorkbook(t, nil)
	records, err := ImportWorkbook(f, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestPartySummaryExportImportRoundTrip(t *testing.T) {
	original := seedPartySummaries()

	exported, err := ExportWorkbook(original, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := exported.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatal(err)
	}

	records, err := ImportWorkbook(reopened, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(original) {
		t.Fatalf("round trip lost rows: %d -> %d", len(original), len(records))
	}
	for i, want := range original {
		got := records[i]
		if got.PartyName != want.PartyName {
			t.Errorf("row %d name = %q, want %q", i, got.PartyName, want.PartyName)
		}
		if got.TallyLastTransactionDate != want.TallyLastTransactionDate {
			t.Errorf("row %d tally date = %q, want %q", i, got.TallyLastTransactionDate, want.TallyLastTransactionDate)
		}
		if !got.TallyCashBalance.Equal(want.TallyCashBalance) {
			t.Errorf("row %d tally balance = %s, want %s", i, got.TallyCashBalance, want.TallyCashBalance)
		}
		if !got.ErpLastDayCashBalance.Equal(want.ErpLastDayCashBalance) {
			t.Errorf("row %d day-end balance = %s, want %s", i, got.ErpLastDayCashBalance, want.ErpLastDayCashBalance)
		}
		if got.AuditYear != want.AuditYear {
			t.Errorf("row %d audit year = %q, want %q", i, got.AuditYear, want.AuditYear)
		}
	}
}

func TestPartyDetailsExportImportRoundTrip(t *testing.T) {
	original := seedPartyDetails()

	exported, err := ExportWorkbook(original, partyDetailsSheet)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := exported.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatal(err)
	}

	records, err := ImportWorkbook(reopened, partyDetailsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(original) {
		t.Fatalf("round trip lost rows: %d -> %d", len(original), len(records))
	}

	abc := records[0]
	if abc.PanNumber != "ABCDE1234F" {
		t.Errorf("pan = %q", abc.PanNumber)
	}
	if abc.ErpId != "abc_erp" || abc.ErpPassword != "changeme" {
		t.Errorf("credentials lost: %q/%q", abc.ErpId, abc.ErpPassword)
	}
	if len(abc.BankAccounts) != 1 {
		t.Fatalf("expected 1 bank account, got %d", len(abc.BankAccounts))
	}
	if abc.BankAccounts[0].IfscCode != "SBIN0001234" {
		t.Errorf("ifsc = %q", abc.BankAccounts[0].IfscCode)
	}

	xyz := records[1]
	if len(xyz.BankAccounts) != 0 {
		t.Errorf("party without bank data should import with no accounts, got %d", len(xyz.BankAccounts))
	}
}

func TestExportPreservesDecimalPrecision(t *testing.T) {
	// Past float64's 53-bit mantissa; a float round trip would corrupt it.
	exact := decimal.RequireFromString("9007199254740993")
	records := []*PartySummary{{
		ID:               "p1",
		PartyName:        "Precision Traders",
		TallyCashBalance: exact,
	}}

	exported, err := ExportWorkbook(records, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := exported.GetCellValue("Party Summary", "C2", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	if raw != "9007199254740993" {
		t.Errorf("exported cell = %q, want exact digits", raw)
	}

	buf, err := exported.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ImportWorkbook(reopened, partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || !back[0].TallyCashBalance.Equal(exact) {
		t.Errorf("round trip balance = %s, want %s", back[0].TallyCashBalance, exact)
	}
}

func TestExportAppliesCurrencyFormat(t *testing.T) {
	exported, err := ExportWorkbook(seedPartySummaries(), partySummarySheet)
	if err != nil {
		t.Fatal(err)
	}

	styleID, err := exported.GetCellStyle("Party Summary", "C2")
	if err != nil {
		t.Fatal(err)
	}
	if styleID == 0 {
		t.Error("monetary cell C2 has no style applied")
	}

	// Formatting is display-only; the underlying value stays numeric.
	raw, err := exported.GetCellValue("Party Summary", "C2", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	if raw != "125000" {
		t.Errorf("raw value of C2 = %q, want 125000", raw)
	}
}
