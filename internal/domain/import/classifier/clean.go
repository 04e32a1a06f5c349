package classifier

import (
	"strings"
	"unicode"
)

// Prefixes banks prepend to card transactions. Stripped before the
// description is shown or sent to the model.
var descriptionPrefixes = []string{
	"BEA, BETAALPAS ",
	"BEA ",
	"GEA, BETAALPAS ",
	"SEPA OVERBOEKING ",
	"SEPA INCASSO ",
	"IDEAL ",
	"POS ",
	"PURCHASE ",
	"DEBIT CARD ",
	"PAS ",
}

var currencyTokens = map[string]struct{}{
	"EUR": {}, "USD": {}, "GBP": {}, "NLD": {}, "BV": {}, "NV": {},
}

// CleanDescription reduces a raw bank statement description to a readable
// merchant name: known prefixes, long reference numbers, date fragments and
// currency codes are dropped, whitespace is collapsed and the remainder is
// title-cased.
func CleanDescription(desc string) string {
	cleaned := strings.TrimSpace(desc)
	upper := strings.ToUpper(cleaned)

	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
			break
		}
	}

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, word := range words {
		if isReferenceToken(word) {
			continue
		}
		if _, ok := currencyTokens[strings.ToUpper(strings.Trim(word, ".,"))]; ok {
			continue
		}
		kept = append(kept, word)
	}

	if len(kept) == 0 {
		return toTitleCase(strings.Join(words, " "))
	}
	return toTitleCase(strings.Join(kept, " "))
}

// isReferenceToken reports whether a word looks like a card terminal id, a
// transaction reference or a date fragment rather than part of a name.
func isReferenceToken(word string) bool {
	trimmed := strings.Trim(word, "*#.,:")
	if trimmed == "" {
		return true
	}
	digits := 0
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits++
		} else if r != '-' && r != '/' && r != ':' && r != '.' && r != ',' {
			return false
		}
	}
	// Keep short numbers ("7" in "Cafe 7"), drop references and dates.
	return digits >= 4
}

func toTitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
