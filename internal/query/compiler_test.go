package query_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
	"github.com/jonesrussell/north-cloud/listening/internal/resolve"
)

func testCategorySet() domain.CategorySet {
	return domain.NewCategorySet(
		domain.Category{
			Name:     "Banking",
			Keywords: []string{"loan", "deposit"},
			Hashtags: []string{"#banking"},
		},
		domain.Category{
			Name: "Retail",
			URLs: []string{"shop.example.com"},
		},
	)
}

func baseParams(set domain.CategorySet) query.Params {
	return query.Params{
		Resolution: resolve.CategoryResolution{Kind: resolve.CategoryAll},
		Categories: set,
	}
}

// mustClauses extracts the top-level bool/must slice of a compiled query.
func mustClauses(t *testing.T, q query.M) []query.M {
	t.Helper()

	boolQuery, ok := q["bool"].(query.M)
	if !ok {
		t.Fatalf("compiled query missing bool wrapper: %v", q)
	}
	must, ok := boolQuery["must"].([]query.M)
	if !ok {
		t.Fatalf("compiled query missing must clauses: %v", boolQuery)
	}
	return must
}

// isMatchNone reports whether a clause is the impossible-match clause.
func isMatchNone(clause query.M) bool {
	boolPart, ok := clause["bool"].(query.M)
	if !ok {
		return false
	}
	_, hasMustNot := boolPart["must_not"]
	return hasMustNot
}

// shouldClauses extracts the should slice of a bool/should wrapper clause.
func shouldClauses(t *testing.T, clause query.M) []query.M {
	t.Helper()

	boolPart, ok := clause["bool"].(query.M)
	if !ok {
		t.Fatalf("clause is not a bool wrapper: %v", clause)
	}
	should, ok := boolPart["should"].([]query.M)
	if !ok {
		t.Fatalf("clause has no should list: %v", boolPart)
	}
	return should
}

func TestCompile_EmptyCategoryMatchesNothing(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Resolution = resolve.CategoryResolution{
		Kind:     resolve.CategorySingle,
		Category: domain.Category{Name: "Empty"},
	}

	q := query.Compile(params)

	must := mustClauses(t, q)
	if len(must) == 0 {
		t.Fatal("expected at least the category clause")
	}
	if !isMatchNone(must[0]) {
		t.Errorf("empty category should compile to an impossible clause, got %v", must[0])
	}
}

func TestCompile_AllWithEmptySetMatchesNothing(t *testing.T) {
	params := baseParams(domain.NewCategorySet())

	q := query.Compile(params)

	must := mustClauses(t, q)
	if !isMatchNone(must[0]) {
		t.Errorf("all-categories over an empty set should match nothing, got %v", must[0])
	}
}

func TestCompile_AllCategoriesUnionsEveryTerm(t *testing.T) {
	set := testCategorySet()
	q := query.Compile(baseParams(set))

	must := mustClauses(t, q)
	should := shouldClauses(t, must[0])

	// Banking has 3 terms, Retail has 1.
	if len(should) != 4 {
		t.Errorf("expected 4 term clauses across both categories, got %d", len(should))
	}
}

func TestCompile_SingleCategoryUsesItsTermsOnly(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	banking, _ := set.Get("Banking")
	params.Resolution = resolve.CategoryResolution{Kind: resolve.CategorySingle, Category: banking}

	q := query.Compile(params)

	should := shouldClauses(t, mustClauses(t, q)[0])
	if len(should) != 3 {
		t.Errorf("expected 3 term clauses for Banking, got %d", len(should))
	}
}

func TestCompile_FreeTextAddsMultiMatch(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Resolution = resolve.CategoryResolution{Kind: resolve.CategoryFreeText, FreeText: "fuel prices"}

	q := query.Compile(params)

	should := shouldClauses(t, mustClauses(t, q)[0])
	// 4 category term clauses plus one multi_match.
	if len(should) != 5 {
		t.Fatalf("expected 5 clauses, got %d", len(should))
	}

	last := should[len(should)-1]
	mm, ok := last["multi_match"].(query.M)
	if !ok {
		t.Fatalf("expected trailing multi_match clause, got %v", last)
	}
	if mm["query"] != "fuel prices" {
		t.Errorf("multi_match query = %v, want fuel prices", mm["query"])
	}
	if mm["type"] != "phrase" {
		t.Errorf("multi_match type = %v, want phrase", mm["type"])
	}
}

func TestCompile_TimeWindowClause(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Window = resolve.TimeWindow{
		From:   mustParseDate(t, "2025-01-01"),
		To:     mustParseDate(t, "2025-03-31"),
		Active: true,
	}

	q := query.Compile(params)

	found := false
	for _, clause := range mustClauses(t, q) {
		rangePart, ok := clause["range"].(query.M)
		if !ok {
			continue
		}
		found = true
		created, ok := rangePart[query.FieldCreatedAt].(query.M)
		if !ok {
			t.Fatalf("range clause missing created_at: %v", rangePart)
		}
		if created["gte"] != "2025-01-01" || created["lte"] != "2025-03-31" {
			t.Errorf("range bounds = %v/%v", created["gte"], created["lte"])
		}
		if created["format"] != "yyyy-MM-dd" {
			t.Errorf("range format = %v, want yyyy-MM-dd", created["format"])
		}
	}
	if !found {
		t.Error("expected a range clause for the active time window")
	}
}

func TestCompile_InactiveWindowOmitsRange(t *testing.T) {
	set := testCategorySet()
	q := query.Compile(baseParams(set))

	for _, clause := range mustClauses(t, q) {
		if _, ok := clause["range"]; ok {
			t.Errorf("inactive window must not produce a range clause: %v", clause)
		}
	}
}

func TestCompile_SourceClause(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Sources = []string{"Facebook", "Twitter"}

	q := query.Compile(params)

	must := mustClauses(t, q)
	should := shouldClauses(t, must[1])
	if len(should) != 2 {
		t.Fatalf("expected 2 source clauses, got %d", len(should))
	}
	mp, ok := should[0]["match_phrase"].(query.M)
	if !ok {
		t.Fatalf("expected match_phrase source clause, got %v", should[0])
	}
	if mp[query.FieldSource] != "Facebook" {
		t.Errorf("first source = %v, want Facebook", mp[query.FieldSource])
	}
}

func TestCompile_SingleSentimentTitleCased(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Sentiments = []string{"positive"}

	q := query.Compile(params)

	found := false
	for _, clause := range mustClauses(t, q) {
		match, ok := clause["match"].(query.M)
		if !ok {
			continue
		}
		if v, has := match[query.FieldSentiment]; has {
			found = true
			if v != "Positive" {
				t.Errorf("sentiment value = %v, want Positive", v)
			}
		}
	}
	if !found {
		t.Error("expected a sentiment match clause")
	}
}

func TestCompile_MultipleSentimentsExpandCaseVariants(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Sentiments = []string{"positive", "negative"}

	q := query.Compile(params)

	var sentimentClause query.M
	for _, clause := range mustClauses(t, q) {
		boolPart, ok := clause["bool"].(query.M)
		if !ok {
			continue
		}
		should, ok := boolPart["should"].([]query.M)
		if !ok || len(should) == 0 {
			continue
		}
		if match, isMatch := should[0]["match"].(query.M); isMatch {
			if _, has := match[query.FieldSentiment]; has {
				sentimentClause = clause
			}
		}
	}
	if sentimentClause == nil {
		t.Fatal("expected an OR sentiment clause")
	}

	should := shouldClauses(t, sentimentClause)
	// Each sentiment expands to Title/lower/upper.
	if len(should) != 6 {
		t.Errorf("expected 6 sentiment variants, got %d", len(should))
	}
}

func TestCompile_SingleMentionTypeExactValue(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.MentionTypes = []string{"Complaint"}

	q := query.Compile(params)

	found := false
	for _, clause := range mustClauses(t, q) {
		match, ok := clause["match"].(query.M)
		if !ok {
			continue
		}
		if v, has := match[query.FieldMentionType]; has {
			found = true
			if v != "Complaint" {
				t.Errorf("mention type value = %v, want Complaint unchanged", v)
			}
		}
	}
	if !found {
		t.Error("expected a mention type match clause")
	}
}

func TestCompile_ExtraFiltersAppendedAsTerms(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)
	params.Extras = []resolve.ExtraFilter{{Field: "is_public_opinion", Value: true}}

	q := query.Compile(params)

	must := mustClauses(t, q)
	last := must[len(must)-1]
	term, ok := last["term"].(query.M)
	if !ok {
		t.Fatalf("expected trailing term clause, got %v", last)
	}
	if term["is_public_opinion"] != true {
		t.Errorf("term value = %v, want true", term["is_public_opinion"])
	}
}

func TestCompileForCategory_OverridesResolution(t *testing.T) {
	set := testCategorySet()
	params := baseParams(set)

	q := query.CompileForCategory(params, domain.Category{Name: "Empty"})

	if !isMatchNone(mustClauses(t, q)[0]) {
		t.Error("per-category compilation must honor the empty-category rule")
	}

	retail, _ := set.Get("Retail")
	q = query.CompileForCategory(params, retail)
	should := shouldClauses(t, mustClauses(t, q)[0])
	if len(should) != 1 {
		t.Errorf("expected Retail's single URL clause, got %d clauses", len(should))
	}
}
