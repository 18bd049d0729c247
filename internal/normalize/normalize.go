// Package normalize folds guesses and secret words to a canonical form so
// that "Łódź" and "lodz" compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so "ó"
// becomes "o" and "ź" becomes "z".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldables maps letters that are not mark-decorated base letters in
// unicode and therefore survive NFD untouched.
var foldables = strings.NewReplacer(
	"ł", "l",
	"ø", "o",
	"đ", "d",
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
)

// Fold lowercases, trims and strips diacritics from s.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	return foldables.Replace(s)
}
