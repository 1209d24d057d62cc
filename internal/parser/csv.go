package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docqa/internal/document"
)

// CSVParser handles CSV files. The header row becomes the single heading
// and each data row a "header: value" paragraph.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	paras := appendText(nil, strings.Join(headers, ", "), document.HeadingStyle(1), false)
	for _, row := range records[1:] {
		var text strings.Builder
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
		paras = appendText(paras, text.String(), document.StyleNormal, false)
	}
	return paras, nil
}
