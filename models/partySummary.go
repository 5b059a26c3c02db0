package models

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// PartySummary is one reconciliation row: the party's last activity and
// cash position in both ledger systems plus its audit-year marker.
// Date fields hold canonical YYYY-MM-DD strings, or the operator's raw
// entry when it never parsed; empty means unknown.
type PartySummary struct {
	ID                       string          `json:"id"`
	PartyName                string          `json:"party_name"`
	TallyLastTransactionDate string          `json:"tally_last_transaction_date"`
	TallyCashBalance         decimal.Decimal `json:"tally_cash_balance"`
	ErpLastTransactionDate   string          `json:"erp_last_transaction_date"`
	ErpCashBalance           decimal.Decimal `json:"erp_cash_balance"`
	ErpLastDayEndDate        string          `json:"erp_last_day_end_date"`
	ErpLastDayCashBalance    decimal.Decimal `json:"erp_last_day_cash_balance"`
	AuditYear                string          `json:"audit_year"`

	// Populated from the party master on lookup, never persisted here.
	Email *string `json:"email,omitempty"`
}

func (p PartySummary) GetKey() string { return p.ID }

type NewPartySummary struct {
	PartyName                string          `json:"party_name"`
	TallyLastTransactionDate string          `json:"tally_last_transaction_date"`
	TallyCashBalance         decimal.Decimal `json:"tally_cash_balance"`
	ErpLastTransactionDate   string          `json:"erp_last_transaction_date"`
	ErpCashBalance           decimal.Decimal `json:"erp_cash_balance"`
	ErpLastDayEndDate        string          `json:"erp_last_day_end_date"`
	ErpLastDayCashBalance    decimal.Decimal `json:"erp_last_day_cash_balance"`
	AuditYear                string          `json:"audit_year"`
}

func (input *NewPartySummary) apply(rec *PartySummary) {
	rec.PartyName = strings.TrimSpace(input.PartyName)
	rec.TallyLastTransactionDate = NormalizeDateCell(input.TallyLastTransactionDate)
	rec.TallyCashBalance = input.TallyCashBalance
	rec.ErpLastTransactionDate = NormalizeDateCell(input.ErpLastTransactionDate)
	rec.ErpCashBalance = input.ErpCashBalance
	rec.ErpLastDayEndDate = NormalizeDateCell(input.ErpLastDayEndDate)
	rec.ErpLastDayCashBalance = input.ErpLastDayCashBalance
	rec.AuditYear = strings.TrimSpace(input.AuditYear)
}

func seedPartySummaries() []*PartySummary {
	return []*PartySummary{
		{
			ID:                       "1",
			PartyName:                "ABC Enterprises",
			TallyLastTransactionDate: "2025-01-15",
			TallyCashBalance:         decimal.NewFromInt(125000),
			ErpLastTransactionDate:   "2025-01-15",
			ErpCashBalance:           decimal.NewFromInt(125000),
			ErpLastDayEndDate:        "2025-01-14",
			ErpLastDayCashBalance:    decimal.NewFromInt(120000),
			AuditYear:                "2024-25",
		},
		{
			ID:                       "2",
			PartyName:                "XYZ Suppliers",
			TallyLastTransactionDate: "2024-06-15",
			TallyCashBalance:         decimal.NewFromInt(85000),
			ErpLastTransactionDate:   "2024-06-15",
			ErpCashBalance:           decimal.NewFromInt(85000),
			ErpLastDayEndDate:        "2024-06-14",
			ErpLastDayCashBalance:    decimal.NewFromInt(82000),
			AuditYear:                "",
		},
		{
			ID:                       "3",
			PartyName:                "Global Industries",
			TallyLastTransactionDate: "2024-07-01",
			TallyCashBalance:         decimal.NewFromInt(250000),
			ErpLastTransactionDate:   "2024-07-01",
			ErpCashBalance:           decimal.NewFromInt(250000),
			ErpLastDayEndDate:        "2024-06-30",
			ErpLastDayCashBalance:    decimal.NewFromInt(245000),
			AuditYear:                "",
		},
	}
}

var partySummaryStore = NewCollectionStore[PartySummary](StoreKeyPartySummaries, seedPartySummaries)

func ListPartySummaries(ctx context.Context) []*PartySummary {
	return partySummaryStore.List(ctx)
}

func GetPartySummary(ctx context.Context, id string) (*PartySummary, error) {
	return partySummaryStore.Get(ctx, id)
}

// CreatePartySummary accepts blank input: the grid adds an empty row first
// and the operator fills it in afterwards.
func CreatePartySummary(ctx context.Context, input *NewPartySummary) *PartySummary {
	rec := &PartySummary{ID: uuid.NewString()}
	input.apply(rec)
	partySummaryStore.Add(ctx, rec)
	return rec
}

func UpdatePartySummary(ctx context.Context, id string, input *NewPartySummary) (*PartySummary, error) {
	existing, err := partySummaryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	input.apply(&updated)
	if err := partySummaryStore.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePartySummary only removes still-blank rows, the cancel-edit path
// for a row that was added but never filled in. Named rows stay.
func DeletePartySummary(ctx context.Context, id string) (*PartySummary, error) {
	existing, err := partySummaryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(existing.PartyName) != "" {
		return nil, utils.ErrorRowNotDeletable
	}
	return partySummaryStore.Remove(ctx, id)
}

var partySummarySheet = SheetSpec[PartySummary]{
	SheetName: "Party Summary",
	Filename:  "party_summary.xlsx",
	Headers: []string{
		"Party Name",
		"Tally Last Transaction Date",
		"Tally Cash Balance",
		"ERP Last Transaction Date",
		"ERP Cash Balance",
		"ERP Last Day End Date",
		"ERP Last Day Cash Balance",
		"Audit Year",
	},
	CurrencyColumns: []int{2, 4, 6},
	FromRow:         partySummaryFromRow,
	ToRow: func(rec *PartySummary) []interface{} {
		return []interface{}{
			rec.PartyName,
			rec.TallyLastTransactionDate,
			rec.TallyCashBalance,
			rec.ErpLastTransactionDate,
			rec.ErpCashBalance,
			rec.ErpLastDayEndDate,
			rec.ErpLastDayCashBalance,
			rec.AuditYear,
		}
	},
}

// Rows with a blank party name are skipped, not errors: exported sheets
// routinely carry trailing empty rows.
func partySummaryFromRow(row []string, id string) (*PartySummary, bool) {
	name := strings.TrimSpace(cellAt(row, 0))
	if name == "" {
		return nil, false
	}
	return &PartySummary{
		ID:                       id,
		PartyName:                name,
		TallyLastTransactionDate: NormalizeDateCell(cellAt(row, 1)),
		TallyCashBalance:         ParseCurrencyCell(cellAt(row, 2)),
		ErpLastTransactionDate:   NormalizeDateCell(cellAt(row, 3)),
		ErpCashBalance:           ParseCurrencyCell(cellAt(row, 4)),
		ErpLastDayEndDate:        NormalizeDateCell(cellAt(row, 5)),
		ErpLastDayCashBalance:    ParseCurrencyCell(cellAt(row, 6)),
		AuditYear:                strings.TrimSpace(cellAt(row, 7)),
	}, true
}

// ImportPartySummaries parses the workbook and, only if parsing succeeds,
// replaces the whole collection. A failed parse leaves existing data
// untouched. Returns how many rows were imported.
func ImportPartySummaries(ctx context.Context, f *excelize.File) (int, error) {
	records, err := ImportWorkbook(f, partySummarySheet)
	if err != nil {
		return 0, err
	}
	partySummaryStore.Replace(ctx, records)
	return len(records), nil
}

func ExportPartySummaries(ctx context.Context) (*excelize.File, string, error) {
	f, err := ExportWorkbook(partySummaryStore.List(ctx), partySummarySheet)
	if err != nil {
		return nil, "", err
	}
	return f, partySummarySheet.Filename, nil
}
