package domain

import (
	"encoding/json"
	"sort"
)

// Category is a named set of keyword/hashtag/URL terms defining a topical
// filter. A category with all three slices empty is unfilterable and must
// match zero documents, never all documents.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Hashtags []string `json:"hashtags"`
	URLs     []string `json:"urls"`
}

// HasCriteria reports whether the category has at least one matchable term.
func (c Category) HasCriteria() bool {
	return len(c.Keywords) > 0 || len(c.Hashtags) > 0 || len(c.URLs) > 0
}

// Terms returns all filter terms of the category, keywords first.
func (c Category) Terms() []string {
	out := make([]string, 0, len(c.Keywords)+len(c.Hashtags)+len(c.URLs))
	out = append(out, c.Keywords...)
	out = append(out, c.Hashtags...)
	out = append(out, c.URLs...)
	return out
}

// CategorySet is a mapping from category name to Category. Iteration order is
// deterministic (sorted by name) so zero-match categories appear in a stable
// order in responses.
type CategorySet struct {
	names  []string
	byName map[string]Category
}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(categories ...Category) CategorySet {
	set := CategorySet{byName: make(map[string]Category, len(categories))}
	for _, c := range categories {
		if _, exists := set.byName[c.Name]; !exists {
			set.names = append(set.names, c.Name)
		}
		set.byName[c.Name] = c
	}
	sort.Strings(set.names)
	return set
}

// UnmarshalJSON decodes the injected processedCategories map, which arrives as
// {"name": {"keywords": [...], "hashtags": [...], "urls": [...]}}.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var raw map[string]struct {
		Keywords []string `json:"keywords"`
		Hashtags []string `json:"hashtags"`
		URLs     []string `json:"urls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.byName = make(map[string]Category, len(raw))
	s.names = make([]string, 0, len(raw))
	for name, def := range raw {
		s.byName[name] = Category{
			Name:     name,
			Keywords: def.Keywords,
			Hashtags: def.Hashtags,
			URLs:     def.URLs,
		}
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return nil
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	return len(s.names)
}

// Names returns category names in deterministic order.
func (s CategorySet) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns the category with the given name.
func (s CategorySet) Get(name string) (Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// All returns every category in deterministic order.
func (s CategorySet) All() []Category {
	out := make([]Category, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// AllTerms returns the filter terms of every category in the set, flattened
// in deterministic category order with duplicates removed.
func (s CategorySet) AllTerms() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range s.All() {
		for _, term := range c.Terms() {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}
