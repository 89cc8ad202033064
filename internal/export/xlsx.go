package export

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 50
)

// WriteXLSX writes each table to its own sheet.
func WriteXLSX(w io.Writer, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	dateFmt := "yyyy-mm-dd hh:mm"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	for i, t := range tables {
		sheet := t.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := writeTable(f, sheet, t, headerStyle, dateStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t Table, headerStyle, dateStyle int) error {
	widths := make([]int, len(t.Header))

	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
		widths[col] = utf8.RuneCountInString(h)
	}

	for r, row := range t.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("convert coordinates: %w", err)
			}
			if err := setCell(f, sheet, cell, v, dateStyle); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
			if col < len(widths) {
				if n := utf8.RuneCountInString(text(v)); n > widths[col] {
					widths[col] = n
				}
			}
		}
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("convert column: %w", err)
		}
		width := float64(max(minColumnWidth, min(w+2, maxColumnWidth)))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if len(t.Header) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet, cell string, v any, dateStyle int) error {
	switch x := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return f.SetCellFloat(sheet, cell, x.InexactFloat64(), -1, 64)
	case time.Time:
		if x.IsZero() {
			return nil
		}
		if err := f.SetCellValue(sheet, cell, x); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, dateStyle)
	default:
		return f.SetCellValue(sheet, cell, x)
	}
}
