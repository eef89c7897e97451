package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// utf8BOM keeps spreadsheet applications from misreading the Korean
// headers as a legacy encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvExporter writes one row per article under a localized header row.
type csvExporter struct{}

// NewCSVExporter builds the CSV exporter.
func NewCSVExporter() Exporter { return csvExporter{} }

func (csvExporter) Format() string { return FormatCSV }

// Write renders a BOM-prefixed UTF-8 CSV with the shared column schema.
func (csvExporter) Write(w io.Writer, articles []domain.Article) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv bom: %w", err)
	}

	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, a := range articles {
		for i, col := range columns {
			row[i] = col.Value(a)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return nil
}
