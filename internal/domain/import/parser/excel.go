package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnKind identifies what a statement column holds.
type columnKind int

const (
	colUnknown columnKind = iota
	colDate
	colDescription
	colAmount
	colDirection
)

// excelHeaderKinds maps normalized XLSX header names onto column kinds,
// mirroring the CSV alias tags on Row.
var excelHeaderKinds = map[string]columnKind{
	"date":                colDate,
	"datum":               colDate,
	"transactiedatum":     colDate,
	"boekingsdatum":       colDate,
	"rentedatum":          colDate,
	"description":         colDescription,
	"name":                colDescription,
	"naam":                colDescription,
	"omschrijving":        colDescription,
	"naam / omschrijving": colDescription,
	"mededelingen":        colDescription,
	"amount":              colAmount,
	"amount (eur)":        colAmount,
	"bedrag":              colAmount,
	"bedrag (eur)":        colAmount,
	"af bij":              colDirection,
	"debit/credit":        colDirection,
}

// ReadExcelRows reads the first sheet of an XLSX statement into raw rows,
// using the same header aliases as the CSV path.
func ReadExcelRows(reader io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(cells) < 1 {
		return nil, nil
	}

	kinds := make([]columnKind, len(cells[0]))
	for i, header := range cells[0] {
		kinds[i] = excelHeaderKinds[strings.ToLower(strings.TrimSpace(header))]
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, record := range cells[1:] {
		var row Row
		for i, value := range record {
			if i >= len(kinds) {
				break
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			switch kinds[i] {
			case colDate:
				if row.Date == "" {
					row.Date = value
				}
			case colDescription:
				if row.Description == "" {
					row.Description = value
				}
			case colAmount:
				if row.Amount == "" {
					row.Amount = value
				}
			case colDirection:
				if row.AfBij == "" {
					row.AfBij = value
				}
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
