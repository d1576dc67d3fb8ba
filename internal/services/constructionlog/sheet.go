package constructionlog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Expected column layout of an uploaded quantity sheet.
const (
	colPosition = iota
	colDescription
	colUnit
	colQuantity
	colUnitPrice
)

var headerWords = map[string]bool{
	"position":    true,
	"pos":         true,
	"nr":          true,
	"no":          true,
	"item":        true,
	"description": true,
	"unit":        true,
	"quantity":    true,
}

// ParseSheetFile reads the first worksheet of an xlsx stream into parsed
// rows. Malformed cells are zero-filled and blank rows skipped; a row never
// aborts the batch.
func ParseSheetFile(r io.Reader) ([]ParsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read worksheet %q: %w", sheets[0], err)
	}

	return ParseRows(rows), nil
}

// ParseRows converts raw cell rows into ParsedRows, skipping a header row
// and blank rows.
func ParseRows(rows [][]string) []ParsedRow {
	var parsed []ParsedRow
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		parsed = append(parsed, ParsedRow{
			DetectedPosition:   strings.TrimSpace(cell(row, colPosition)),
			Description:        strings.TrimSpace(cell(row, colDescription)),
			UnitUploaded:       strings.TrimSpace(cell(row, colUnit)),
			QuantityThisPeriod: parseNumeric(cell(row, colQuantity)),
			UnitPriceUploaded:  parseNumeric(cell(row, colUnitPrice)),
		})
	}
	return parsed
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(row []string) bool {
	for _, c := range row {
		if headerWords[strings.ToLower(strings.TrimSpace(c))] {
			return true
		}
	}
	return false
}

// parseNumeric reads a cell as float64, tolerating comma decimal separators
// and thousands spaces. Unparseable values become 0.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
