package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// jsonExporter writes the full article records as an indented UTF-8
// JSON array.
type jsonExporter struct{}

// NewJSONExporter builds the JSON exporter.
func NewJSONExporter() Exporter { return jsonExporter{} }

func (jsonExporter) Format() string { return FormatJSON }

// Write renders the articles as a JSON array. A nil slice still
// produces a valid empty array.
func (jsonExporter) Write(w io.Writer, articles []domain.Article) error {
	if articles == nil {
		articles = []domain.Article{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
