package query

import (
	"strings"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/resolve"
)

// Params carries the resolved inputs of one compilation.
type Params struct {
	Resolution   resolve.CategoryResolution
	Categories   domain.CategorySet
	Window       resolve.TimeWindow
	Sources      []string
	Sentiments   []string
	MentionTypes []string
	Extras       []resolve.ExtraFilter
}

// freeTextFields are the fields a raw category string is phrase-matched
// against when no stored category resolves.
var freeTextFields = []string{FieldMessageText, FieldHashtags, FieldURLs}

// Compile assembles the boolean query for one request. All clauses are ANDed
// at the top level, so their order never affects correctness; topic-specific
// mandatory clauses go last. The tree is never mutated after compilation.
func Compile(p Params) M {
	must := []M{categoryClause(p.Resolution, p.Categories)}

	if p.Window.Active {
		must = append(must, DateRange(FieldCreatedAt, p.Window.FromString(), p.Window.ToString()))
	}

	if len(p.Sources) > 0 {
		sourceClauses := make([]M, 0, len(p.Sources))
		for _, src := range p.Sources {
			sourceClauses = append(sourceClauses, MatchPhrase(FieldSource, src))
		}
		must = append(must, AnyOf(sourceClauses...))
	}

	if clause := valueFilterClause(FieldSentiment, p.Sentiments, true); clause != nil {
		must = append(must, clause)
	}
	if clause := valueFilterClause(FieldMentionType, p.MentionTypes, false); clause != nil {
		must = append(must, clause)
	}

	for _, extra := range p.Extras {
		must = append(must, Term(extra.Field, extra.Value))
	}

	return Bool(must)
}

// CompileForCategory compiles the query for one specific category, reusing
// every non-category clause of p. Bulk views iterate categories with this;
// the unfilterable-category invariant holds on this path too.
func CompileForCategory(p Params, c domain.Category) M {
	p.Resolution = resolve.CategoryResolution{Kind: resolve.CategorySingle, Category: c}
	return Compile(p)
}

// categoryClause builds the category-match clause for the resolution outcome.
func categoryClause(res resolve.CategoryResolution, set domain.CategorySet) M {
	switch res.Kind {
	case resolve.CategorySingle:
		clauses := termClauses(res.Category)
		if len(clauses) == 0 {
			// An empty category must report zero results, not all results.
			return MatchNone()
		}
		return AnyOf(clauses...)

	case resolve.CategoryFreeText:
		clauses := allCategoryClauses(set)
		clauses = append(clauses, MultiMatchPhrase(res.FreeText, freeTextFields...))
		return AnyOf(clauses...)

	default: // CategoryAll
		clauses := allCategoryClauses(set)
		if len(clauses) == 0 {
			return MatchNone()
		}
		return AnyOf(clauses...)
	}
}

// allCategoryClauses unions the term clauses of every category in the set.
func allCategoryClauses(set domain.CategorySet) []M {
	var clauses []M
	for _, c := range set.All() {
		clauses = append(clauses, termClauses(c)...)
	}
	return clauses
}

// termClauses builds phrase-match clauses for one category's terms.
func termClauses(c domain.Category) []M {
	clauses := make([]M, 0, len(c.Keywords)+len(c.Hashtags)+len(c.URLs))
	for _, kw := range c.Keywords {
		clauses = append(clauses, MatchPhrase(FieldMessageText, kw))
	}
	for _, h := range c.Hashtags {
		clauses = append(clauses, MatchPhrase(FieldHashtags, h))
	}
	for _, u := range c.URLs {
		clauses = append(clauses, MatchPhrase(FieldURLs, u))
	}
	return clauses
}

// valueFilterClause builds the sentiment/mention-type clause: a single match
// for one value, an OR of matches for several. When caseVariants is set each
// value expands to Title/lower/upper casings, since upstream indexing is not
// consistent about sentiment casing.
func valueFilterClause(field string, values []string, caseVariants bool) M {
	if len(values) == 0 {
		return nil
	}

	if len(values) == 1 && !caseVariants {
		return Match(field, values[0])
	}
	if len(values) == 1 {
		return Match(field, titleCase(values[0]))
	}

	var clauses []M
	for _, v := range values {
		if caseVariants {
			for _, variant := range variants(v) {
				clauses = append(clauses, Match(field, variant))
			}
		} else {
			clauses = append(clauses, Match(field, v))
		}
	}
	return AnyOf(clauses...)
}

// variants returns the Title Case, lower and upper forms of a value, deduplicated.
func variants(v string) []string {
	forms := []string{titleCase(v), strings.ToLower(v), strings.ToUpper(v)}
	seen := make(map[string]struct{}, len(forms))
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// titleCase uppercases the first rune and lowercases the rest.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
