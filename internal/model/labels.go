package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DeriveTitle turns a field name into a sentence-case title:
// "first_name" and "firstName" both become "First name".
func DeriveTitle(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	lower := cases.Lower(language.English)
	var words []string
	for _, chunk := range splitWordsPattern.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range strings.Fields(splitCamel(chunk)) {
			words = append(words, lower.String(word))
		}
	}
	if len(words) == 0 {
		return ""
	}
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return isLower(prev) && isUpper(r)
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
