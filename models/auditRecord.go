package models

import (
	"context"
	"math"
	"sort"
	"strings"

	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// AuditRecord tracks one audit engagement for a party.
type AuditRecord struct {
	ID             string      `json:"id"`
	Year           string      `json:"year"`
	Party          string      `json:"party"`
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	Status         AuditStatus `json:"status"`
	Auditor        string      `json:"auditor"`
	CompletionDate *string     `json:"completion_date"`
	PdfGenerated   bool        `json:"pdf_generated"`
}

func (r AuditRecord) GetKey() string { return r.ID }

type NewAuditRecord struct {
	Year           string  `json:"year"`
	Party          string  `json:"party"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Status         string  `json:"status"`
	Auditor        string  `json:"auditor"`
	CompletionDate *string `json:"completion_date"`
	PdfGenerated   bool    `json:"pdf_generated"`
}

func (input *NewAuditRecord) apply(rec *AuditRecord) {
	rec.Year = strings.TrimSpace(input.Year)
	rec.Party = strings.TrimSpace(input.Party)
	rec.StartDate = NormalizeDateCell(input.StartDate)
	rec.EndDate = NormalizeDateCell(input.EndDate)
	rec.Status = CoerceAuditStatus(input.Status)
	rec.Auditor = strings.TrimSpace(input.Auditor)
	rec.PdfGenerated = input.PdfGenerated
	if input.CompletionDate != nil {
		normalized := NormalizeDateCell(*input.CompletionDate)
		rec.CompletionDate = utils.NilIfEmpty(normalized)
	} else {
		rec.CompletionDate = nil
	}
}

func seedAuditRecords() []*AuditRecord {
	jan := "2025-01-20"
	return []*AuditRecord{
		{
			ID:             "1",
			Year:           "2024-25",
			Party:          "ABC Enterprises",
			StartDate:      "2025-01-05",
			EndDate:        "2025-01-18",
			Status:         AuditStatusCompleted,
			Auditor:        "R. Sharma",
			CompletionDate: &jan,
			PdfGenerated:   true,
		},
		{
			ID:           "2",
			Year:         "2024-25",
			Party:        "XYZ Suppliers",
			StartDate:    "2025-02-01",
			EndDate:      "2025-02-15",
			Status:       AuditStatusInProgress,
			Auditor:      "K. Mehta",
			PdfGenerated: false,
		},
		{
			ID:           "3",
			Year:         "2023-24",
			Party:        "Global Industries",
			StartDate:    "2024-04-10",
			EndDate:      "2024-04-25",
			Status:       AuditStatusPending,
			Auditor:      "",
			PdfGenerated: false,
		},
	}
}

var auditRecordStore = NewCollectionStore[AuditRecord](StoreKeyAuditRecords, seedAuditRecords)

func ListAuditRecords(ctx context.Context) []*AuditRecord {
	return auditRecordStore.List(ctx)
}

func GetAuditRecord(ctx context.Context, id string) (*AuditRecord, error) {
	return auditRecordStore.Get(ctx, id)
}

func CreateAuditRecord(ctx context.Context, input *NewAuditRecord) *AuditRecord {
	rec := &AuditRecord{ID: uuid.NewString()}
	input.apply(rec)
	auditRecordStore.Add(ctx, rec)
	return rec
}

func UpdateAuditRecord(ctx context.Context, id string, input *NewAuditRecord) (*AuditRecord, error) {
	existing, err := auditRecordStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	input.apply(&updated)
	if err := auditRecordStore.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteAuditRecord(ctx context.Context, id string) (*AuditRecord, error) {
	return auditRecordStore.Remove(ctx, id)
}

// YearSummary is one row of the yearwise completion table.
type YearSummary struct {
	Year       string `json:"year"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Pending    int    `json:"pending"`
	Percentage int    `json:"percentage"`
}

// CalculateYearwiseSummary groups records by year, newest year first.
// Pending counts everything not completed, in-progress included.
func CalculateYearwiseSummary(records []*AuditRecord) []*YearSummary {
	byYear := make(map[string]*YearSummary)
	var years []string
	for _, rec := range records {
		summary, ok := byYear[rec.Year]
		if !ok {
			summary = &YearSummary{Year: rec.Year}
			byYear[rec.Year] = summary
			years = append(years, rec.Year)
		}
		summary.Total++
		if rec.Status == AuditStatusCompleted {
			summary.Completed++
		} else {
			summary.Pending++
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	out := make([]*YearSummary, 0, len(years))
	for _, year := range years {
		summary := byYear[year]
		if summary.Total > 0 {
			summary.Percentage = int(math.Round(float64(summary.Completed) / float64(summary.Total) * 100))
		}
		out = append(out, summary)
	}
	return out
}

var auditRecordSheet = SheetSpec[AuditRecord]{
	SheetName: "Audit Records",
	Filename:  "audit_records.xlsx",
	Headers: []string{
		"Year",
		"Party",
		"Start Date",
		"End Date",
		"Status",
		"Auditor",
		"Completion Date",
		"PDF Generated",
	},
	FromRow: auditRecordFromRow,
	ToRow: func(rec *AuditRecord) []interface{} {
		pdf := "No"
		if rec.PdfGenerated {
			pdf = "Yes"
		}
		return []interface{}{
			rec.Year,
			rec.Party,
			rec.StartDate,
			rec.EndDate,
			string(rec.Status),
			rec.Auditor,
			utils.DereferencePtr(rec.CompletionDate),
			pdf,
		}
	},
}

func auditRecordFromRow(row []string, id string) (*AuditRecord, bool) {
	party := strings.TrimSpace(cellAt(row, 1))
	if party == "" {
		return nil, false
	}
	completion := NormalizeDateCell(cellAt(row, 6))
	pdf := strings.EqualFold(strings.TrimSpace(cellAt(row, 7)), "Yes") ||
		strings.EqualFold(strings.TrimSpace(cellAt(row, 7)), "true")
	return &AuditRecord{
		ID:             id,
		Year:           strings.TrimSpace(cellAt(row, 0)),
		Party:          party,
		StartDate:      NormalizeDateCell(cellAt(row, 2)),
		EndDate:        NormalizeDateCell(cellAt(row, 3)),
		Status:         CoerceAuditStatus(cellAt(row, 4)),
		Auditor:        strings.TrimSpace(cellAt(row, 5)),
		CompletionDate: utils.NilIfEmpty(completion),
		PdfGenerated:   pdf,
	}, true
}

func ImportAuditRecords(ctx context.Context, f *excelize.File) (int, error) {
	records, err := ImportWorkbook(f, auditRecordSheet)
	if err != nil {
		return 0, err
	}
	auditRecordStore.Replace(ctx, records)
	return len(records), nil
}

func ExportAuditRecords(ctx context.Context) (*excelize.File, string, error) {
	f, err := ExportWorkbook(auditRecordStore.List(ctx), auditRecordSheet)
	if err != nil {
		return nil, "", err
	}
	return f, auditRecordSheet.Filename, nil
}
