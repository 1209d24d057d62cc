package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/docqa/internal/document"
)

// XLSXParser handles Excel workbooks. Each sheet name becomes a heading
// followed by one paragraph per row of tab-joined cells.
type XLSXParser struct{}

func (p *XLSXParser) Parse(r io.Reader, filename string) ([]document.Paragraph, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var paras []document.Paragraph
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		paras = appendText(paras, sheet, document.HeadingStyle(1), false)
		for _, row := range rows {
			paras = appendText(paras, strings.Join(row, "\t"), document.StyleNormal, false)
		}
	}
	return paras, nil
}
