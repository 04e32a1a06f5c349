// Package parser turns raw statement rows into candidate transactions.
// It uses gocsv for struct-based decoding; the struct tags carry the column
// aliases of the bank export dialects we accept.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/overdruiven/finance-api/internal/domain/transaction"
	"github.com/overdruiven/finance-api/pkg/money"
)

// Row is one raw record of an uploaded statement, one field per known column
// alias. gocsv fills whichever aliases the file actually has; Normalize
// coalesces them.
type Row struct {
	// Date columns
	Date            string `csv:"date"`
	Datum           string `csv:"datum"`
	TransactieDatum string `csv:"transactiedatum"`
	Boekingsdatum   string `csv:"boekingsdatum"`
	Rentedatum      string `csv:"rentedatum"`

	// Description columns
	Description      string `csv:"description"`
	Name             string `csv:"name"`
	Naam             string `csv:"naam"`
	Omschrijving     string `csv:"omschrijving"`
	NaamOmschrijving string `csv:"naam / omschrijving"`
	Mededelingen     string `csv:"mededelingen"`

	// Amount columns
	Amount    string `csv:"amount"`
	AmountEUR string `csv:"amount (eur)"`
	Bedrag    string `csv:"bedrag"`
	BedragEUR string `csv:"bedrag (eur)"`

	// Explicit direction columns (ING "Af Bij" and friends)
	AfBij       string `csv:"af bij"`
	DebitCredit string `csv:"debit/credit"`
}

// Candidate is the normalized output of parsing one row. Amount is always
// positive; direction alone carries the sign.
type Candidate struct {
	Description string
	AmountCents int64
	Direction   transaction.Direction
	OccurredOn  time.Time
}

// Reject reasons. Rejected rows are dropped and counted, never surfaced
// per-row to the end user.
var (
	ErrNoAmount   = errors.New("row has no parseable amount")
	ErrZeroAmount = errors.New("row amount is zero")
	ErrBadDate    = errors.New("row has no parseable date")
)

// placeholderDescription is used when no description column has a value.
const placeholderDescription = "Import"

// dateFormats covers the date shapes seen in Dutch and international bank
// exports. Order matters: day-first formats before month-first.
var dateFormats = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"20060102",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04",
}

func init() {
	gocsv.SetHeaderNormalizer(func(header string) string {
		return strings.ToLower(strings.TrimSpace(header))
	})
}

// ReadRows decodes delimited statement bytes into raw rows using the given
// delimiter. The first line must be the header row. The reader is local to
// the call so concurrent uploads with different delimiters do not interfere.
func ReadRows(data []byte, delimiter rune) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var rows []Row
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Normalize converts a raw row into a candidate transaction, or rejects it.
// Policy: rows with an unparseable or missing date are dropped, not defaulted
// to "now" — a wrong date is worse for the user than a missing row.
func Normalize(row Row) (*Candidate, error) {
	amountStr := coalesce(row.BedragEUR, row.Bedrag, row.AmountEUR, row.Amount)
	if amountStr == "" {
		return nil, ErrNoAmount
	}

	amount, err := money.ParseStatementAmount(amountStr)
	if err != nil {
		return nil, ErrNoAmount
	}
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}

	dateStr := coalesce(row.Datum, row.TransactieDatum, row.Boekingsdatum, row.Rentedatum, row.Date)
	occurredOn, err := parseDate(dateStr)
	if err != nil {
		return nil, ErrBadDate
	}

	description := coalesce(
		row.Omschrijving, row.NaamOmschrijving, row.Naam,
		row.Description, row.Name, row.Mededelingen,
	)
	if description == "" {
		description = placeholderDescription
	}

	direction := transaction.Income
	if amount.IsNegative() {
		direction = transaction.Expense
	}
	// An explicit debit marker overrides sign-based inference: some exports
	// list all amounts unsigned and carry the direction in its own column.
	if marker := coalesce(row.AfBij, row.DebitCredit); isDebitMarker(marker) {
		direction = transaction.Expense
	}

	return &Candidate{
		Description: collapseWhitespace(description),
		AmountCents: amount.Abs().Cents(),
		Direction:   direction,
		OccurredOn:  occurredOn,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBadDate
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadDate
}

// isDebitMarker reports whether an explicit direction cell says "money out"
// in the local sense ("Af" on ING exports).
func isDebitMarker(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "af", "debit", "debet", "d":
		return true
	}
	return false
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
