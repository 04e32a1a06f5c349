// Package sniffer detects the shape of an uploaded statement file: its field
// delimiter and its header row.
package sniffer

import (
	"encoding/csv"
	"errors"
	"strings"
)

var (
	// ErrEmptyFile is returned when the upload has no content at all.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoHeader is returned when the first line cannot be read as a header.
	ErrNoHeader = errors.New("no header row found")
)

// FileConfig holds the detected configuration for a delimited statement file.
type FileConfig struct {
	Delimiter rune
	Headers   []string
}

// DetectDelimiter picks the field delimiter by inspecting only the first
// line: semicolon when present, comma otherwise. Dutch bank exports are
// semicolon-delimited almost without exception; the single decision applies
// to the whole file.
func DetectDelimiter(firstLine string) rune {
	if strings.ContainsRune(firstLine, ';') {
		return ';'
	}
	return ','
}

// Detect reads the header row of data and returns the file configuration.
func Detect(data []byte) (*FileConfig, error) {
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, ErrEmptyFile
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	if firstLine == "" {
		return nil, ErrNoHeader
	}

	delimiter := DetectDelimiter(firstLine)

	reader := csv.NewReader(strings.NewReader(firstLine))
	reader.Comma = delimiter
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, ErrNoHeader
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	return &FileConfig{
		Delimiter: delimiter,
		Headers:   headers,
	}, nil
}
