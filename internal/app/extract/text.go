// Package extract turns free chat text into profile updates, intents and a
// language guess using ordered bilingual keyword tables.
//
// Matching is substring based over a normalized copy of the input: lower
// case, sentence punctuation replaced by spaces, padded with one space on
// each side. A phrase written with surrounding spaces therefore only matches
// whole words.
package extract

import (
	"strings"
	"unicode"
)

var punctuation = strings.NewReplacer(
	".", " ", ",", " ", "!", " ", "?", " ", ";", " ", ":", " ",
	"(", " ", ")", " ", "\"", " ", "\n", " ", "\t", " ",
)

// Normalize prepares input for phrase matching.
func Normalize(input string) string {
	return " " + punctuation.Replace(strings.ToLower(input)) + " "
}

// ContainsAny reports whether the normalized text contains any phrase.
func ContainsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// tokens splits into lower-case words, keeping apostrophes inside words.
func tokens(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
