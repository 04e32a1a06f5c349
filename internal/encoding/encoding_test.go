package encoding

import (
	"bytes"
	"testing"
)

func TestNormalizeUTF8_StripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Datum;Bedrag\n")...)

	out, err := NormalizeUTF8(input)
	if err != nil {
		t.Fatalf("NormalizeUTF8 returned error: %v", err)
	}
	if !bytes.Equal(out, []byte("Datum;Bedrag\n")) {
		t.Errorf("BOM not stripped: %q", out)
	}
}

func TestNormalizeUTF8_PassesThroughUTF8(t *testing.T) {
	input := []byte("Omschrijving;Bedrag\nCafé Noord;-12,40\n")

	out, err := NormalizeUTF8(input)
	if err != nil {
		t.Fatalf("NormalizeUTF8 returned error: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Error("valid UTF-8 should pass through unchanged")
	}
}

func TestNormalizeUTF8_DecodesLatin1(t *testing.T) {
	// "Café" in Windows-1252: é = 0xE9.
	input := []byte{'C', 'a', 'f', 0xE9, ';', '1', ',', '5', '0'}

	out, err := NormalizeUTF8(input)
	if err != nil {
		t.Fatalf("NormalizeUTF8 returned error: %v", err)
	}
	if !bytes.Contains(out, []byte("Café")) {
		t.Errorf("expected decoded Café, got %q", out)
	}
}

func TestNormalizeUTF8_DecodesUTF16LE(t *testing.T) {
	// "ab" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}

	out, err := NormalizeUTF8(input)
	if err != nil {
		t.Fatalf("NormalizeUTF8 returned error: %v", err)
	}
	if !bytes.Equal(out, []byte("ab")) {
		t.Errorf("UTF-16 LE decode = %q, want %q", out, "ab")
	}
}
