package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Rupee display format applied to monetary export columns. The underlying
// cell keeps the numeric value so re-imports read clean numbers.
var inrCellFormat = `"₹"#,##0`

// SheetSpec describes one collection's spreadsheet layout.
type SheetSpec[T Keyed] struct {
	SheetName       string
	Filename        string
	Headers         []string
	CurrencyColumns []int // zero-based
	FromRow         func(row []string, id string) (*T, bool)
	ToRow           func(rec *T) []interface{}
}

// cellAt tolerates the ragged rows excelize returns when trailing cells
// are empty.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ImportWorkbook reads the first sheet of an uploaded workbook into
// records. The header row is skipped; rows the spec rejects (typically a
// blank key column) are silently dropped. Raw cell values are requested so
// date cells arrive as their underlying serial numbers.
func ImportWorkbook[T Keyed](f *excelize.File, spec SheetSpec[T]) ([]*T, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}

	records := make([]*T, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		rec, ok := spec.FromRow(row, uuid.NewString())
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExportWorkbook renders records to a fresh single-sheet workbook.
func ExportWorkbook[T Keyed](records []*T, spec SheetSpec[T]) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", spec.SheetName); err != nil {
		return nil, err
	}

	for i, header := range spec.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(spec.SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &inrCellFormat})
	if err != nil {
		return nil, err
	}

	for r, rec := range records {
		values := spec.ToRow(rec)
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			switch val := v.(type) {
			case decimal.Decimal:
				// Write the exact digits as a numeric cell; going through
				// float64 would round anything past 53 bits of mantissa.
				err = f.SetCellDefault(spec.SheetName, cell, val.String())
			default:
				err = f.SetCellValue(spec.SheetName, cell, v)
			}
			if err != nil {
				return nil, err
			}
		}
		for _, c := range spec.CurrencyColumns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(spec.SheetName, cell, cell, currencyStyle); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
