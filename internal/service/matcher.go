package service

import (
	"strings"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
)

// MatchedTerms reports which filter terms occur in the document, scanning a
// fixed ordered list of text-bearing fields with case-insensitive substring
// containment. Array fields match if any element matches. The result keeps
// the original term order and is deduplicated. Attribution only enriches the
// response; it never affects which documents are included.
func MatchedTerms(m *domain.Mention, terms []string) []string {
	matched := []string{}
	if len(terms) == 0 {
		return matched
	}

	scalarFields := []string{
		m.MessageText,
		m.Content,
		m.Title,
		m.SourceURL,
		m.PermalinkURL,
		m.DisplayName,
	}
	arrayFields := [][]string{
		m.Keywords,
		m.Hashtags,
		m.URLs,
	}

	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		lowered := strings.ToLower(term)
		if _, dup := seen[lowered]; dup {
			continue
		}
		if termInFields(lowered, scalarFields, arrayFields) {
			seen[lowered] = struct{}{}
			matched = append(matched, term)
		}
	}

	return matched
}

func termInFields(lowered string, scalars []string, arrays [][]string) bool {
	for _, field := range scalars {
		if field != "" && strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	for _, arr := range arrays {
		for _, elem := range arr {
			if elem != "" && strings.Contains(strings.ToLower(elem), lowered) {
				return true
			}
		}
	}
	return false
}
