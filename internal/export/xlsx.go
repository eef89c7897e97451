package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dongbanlab/newswatch/internal/domain"
)

const xlsxSheetName = "Articles"

// xlsxExporter writes a single-sheet spreadsheet with a header row.
type xlsxExporter struct{}

// NewXLSXExporter builds the spreadsheet exporter.
func NewXLSXExporter() Exporter { return xlsxExporter{} }

func (xlsxExporter) Format() string { return FormatXLSX }

// Write renders the workbook using the shared column schema.
func (xlsxExporter) Write(w io.Writer, articles []domain.Article) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("name xlsx sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, col.Header); err != nil {
			return fmt.Errorf("write xlsx header: %w", err)
		}
	}

	for rowIdx, a := range articles {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("row cell name: %w", err)
			}
			if err := f.SetCellValue(xlsxSheetName, cell, col.Value(a)); err != nil {
				return fmt.Errorf("write xlsx row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx export: %w", err)
	}
	return nil
}
