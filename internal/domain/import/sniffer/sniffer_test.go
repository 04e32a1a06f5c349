package sniffer

import (
	"errors"
	"testing"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want rune
	}{
		{"semicolon", `"Datum";"Omschrijving";"Bedrag"`, ';'},
		{"comma", "Date,Description,Amount", ','},
		{"semicolon wins over comma", "Datum;Omschrijving, extra;Bedrag", ';'},
		{"no delimiter at all", "justoneword", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.line); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	config, err := Detect([]byte("Datum;Omschrijving;Bedrag\n21-01-2024;Albert Heijn;-12,40\n"))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if config.Delimiter != ';' {
		t.Errorf("Delimiter = %q, want ';'", config.Delimiter)
	}
	if len(config.Headers) != 3 || config.Headers[1] != "Omschrijving" {
		t.Errorf("Headers = %v", config.Headers)
	}
}

func TestDetect_EmptyFile(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("   \n  ")} {
		if _, err := Detect(data); !errors.Is(err, ErrEmptyFile) {
			t.Errorf("Detect(%q) error = %v, want ErrEmptyFile", data, err)
		}
	}
}
