// Package resolve turns loosely-specified request fields (category names,
// time specifications, topic IDs) into the concrete values the query compiler
// consumes. All resolvers are pure functions.
package resolve

import (
	"strings"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
)

// CategoryKind discriminates the outcome of category resolution.
type CategoryKind int

const (
	// CategoryAll means every category in the set is matched as an OR-union.
	CategoryAll CategoryKind = iota
	// CategorySingle means one stored category was resolved.
	CategorySingle
	// CategoryFreeText means no stored category matched; the raw requested
	// string is matched as a free-text phrase while still scoping by the
	// defined categories.
	CategoryFreeText
)

// CategoryResolution is the outcome of resolving a requested category name.
type CategoryResolution struct {
	Kind     CategoryKind
	Category domain.Category // set when Kind == CategorySingle
	FreeText string          // set when Kind == CategoryFreeText
}

// Category resolves a requested category name against the set. Match priority:
// "all" sentinel, exact key, whitespace/case-normalized key, substring in
// either direction. Typed names rarely match stored keys exactly, so an
// unmatched name falls back to free-text rather than an error.
func Category(requested string, set domain.CategorySet) CategoryResolution {
	requested = strings.TrimSpace(requested)
	if requested == "" || strings.EqualFold(requested, "all") {
		return CategoryResolution{Kind: CategoryAll}
	}

	if c, ok := set.Get(requested); ok {
		return CategoryResolution{Kind: CategorySingle, Category: c}
	}

	norm := normalizeName(requested)
	for _, name := range set.Names() {
		if normalizeName(name) == norm {
			c, _ := set.Get(name)
			return CategoryResolution{Kind: CategorySingle, Category: c}
		}
	}

	for _, name := range set.Names() {
		nameNorm := normalizeName(name)
		if strings.Contains(nameNorm, norm) || strings.Contains(norm, nameNorm) {
			c, _ := set.Get(name)
			return CategoryResolution{Kind: CategorySingle, Category: c}
		}
	}

	return CategoryResolution{Kind: CategoryFreeText, FreeText: requested}
}

// normalizeName lowercases and strips all whitespace from a category name.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
