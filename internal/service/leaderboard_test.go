//nolint:testpackage // Testing unexported helpers requires same package access
package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
)

func TestMergeTrends_SumsAndSorts(t *testing.T) {
	a := []domain.TrendPoint{
		{Date: "2025-02-01", Count: 3},
		{Date: "2025-01-01", Count: 5},
	}
	b := []domain.TrendPoint{
		{Date: "2025-01-01", Count: 2},
		{Date: "2025-03-01", Count: 1},
	}

	got := MergeTrends(a, b)
	want := []domain.TrendPoint{
		{Date: "2025-01-01", Count: 7},
		{Date: "2025-02-01", Count: 3},
		{Date: "2025-03-01", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTrends() = %v, want %v", got, want)
	}
}

func TestMergeTrends_EmptyInputs(t *testing.T) {
	if got := MergeTrends(nil, nil); len(got) != 0 {
		t.Errorf("MergeTrends(nil, nil) = %v, want empty", got)
	}

	points := []domain.TrendPoint{{Date: "2025-01-01", Count: 1}}
	if got := MergeTrends(points, nil); !reflect.DeepEqual(got, points) {
		t.Errorf("MergeTrends(points, nil) = %v", got)
	}
}

func TestTopThemes_CapAndTiebreak(t *testing.T) {
	counts := map[string]int64{
		"fees":    10,
		"service": 10,
		"app":     4,
		"queue":   2,
	}

	got := topThemes(counts, 3)
	want := []domain.ThemeCount{
		{Theme: "fees", Count: 10},
		{Theme: "service", Count: 10},
		{Theme: "app", Count: 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topThemes() = %v, want %v", got, want)
	}
}

const leaderboardBody = `{
	"hits": {
		"total": {"value": 20},
		"hits": [
			{"_id": "d1", "_source": {"message_text": "loan approved fast"}}
		]
	},
	"aggregations": {
		"by_sentiment": {
			"buckets": [
				{
					"key": "Positive",
					"doc_count": 12,
					"over_time": {"buckets": [{"key_as_string": "2025-01-01", "doc_count": 12}]},
					"themes": {"buckets": [{"key": "fees", "doc_count": 8}]}
				},
				{
					"key": "Negative",
					"doc_count": 4,
					"over_time": {"buckets": [{"key_as_string": "2025-01-01", "doc_count": 4}]},
					"themes": {"buckets": [{"key": "fees", "doc_count": 2}, {"key": "queue", "doc_count": 1}]}
				},
				{
					"key": "Neutral",
					"doc_count": 4,
					"over_time": {"buckets": []},
					"themes": {"buckets": []}
				}
			]
		}
	}
}`

func TestLeaderboard_ScoresAndMerges(t *testing.T) {
	mock := &mockSearchClient{queue: []mockResult{{body: leaderboardBody}}}
	svc := newTestService(mock)

	req := testRequest()
	resp, err := svc.Leaderboard(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Leaderboard) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Leaderboard))
	}

	entry := resp.Leaderboard[0]
	if entry.Category != "Banking" {
		t.Errorf("category = %q", entry.Category)
	}
	if entry.TotalMentions != 20 {
		t.Errorf("total mentions = %d, want 20", entry.TotalMentions)
	}
	if entry.PositiveCount != 12 || entry.NegativeCount != 4 || entry.NeutralCount != 4 {
		t.Errorf("counts = %d/%d/%d", entry.PositiveCount, entry.NeutralCount, entry.NegativeCount)
	}

	// (12*1 + 4*0 + 4*-1) / 20
	if math.Abs(entry.SentimentScore-0.4) > 1e-9 {
		t.Errorf("score = %f, want 0.4", entry.SentimentScore)
	}

	wantTrends := []domain.TrendPoint{{Date: "2025-01-01", Count: 16}}
	if !reflect.DeepEqual(entry.Trends, wantTrends) {
		t.Errorf("trends = %v, want %v", entry.Trends, wantTrends)
	}

	wantThemes := []domain.ThemeCount{
		{Theme: "fees", Count: 10},
		{Theme: "queue", Count: 1},
	}
	if !reflect.DeepEqual(entry.Themes, wantThemes) {
		t.Errorf("themes = %v, want %v", entry.Themes, wantThemes)
	}

	if len(entry.SampleReviews) != 1 {
		t.Errorf("sample reviews = %d, want 1", len(entry.SampleReviews))
	}
}

func TestLeaderboard_UnfilterableCategoriesZeroFilled(t *testing.T) {
	mock := &mockSearchClient{queue: []mockResult{{body: leaderboardBody}}}
	svc := newTestService(mock)

	req := testRequest()
	req.ProcessedCategories = domain.NewCategorySet(
		domain.Category{Name: "Banking", Keywords: []string{"loan"}},
		domain.Category{Name: "EmptyA"},
		domain.Category{Name: "EmptyB"},
	)

	resp, err := svc.Leaderboard(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Leaderboard) != 3 {
		t.Fatalf("entries = %d, want 3 including zero-filled", len(resp.Leaderboard))
	}

	// Only one search call: empty categories never hit the search engine.
	if mock.callCount() != 1 {
		t.Errorf("search calls = %d, want 1", mock.callCount())
	}

	for _, entry := range resp.Leaderboard[1:] {
		if entry.TotalMentions != 0 || entry.SentimentScore != 0 {
			t.Errorf("zero entry %q has nonzero metrics", entry.Category)
		}
		if entry.Themes == nil || entry.Trends == nil || entry.SampleReviews == nil {
			t.Errorf("zero entry %q has nil slices", entry.Category)
		}
	}
}

func TestLeaderboard_FailedCategoryDegradesToZeroEntry(t *testing.T) {
	mock := &mockSearchClient{queue: []mockResult{{err: errors.New("shard failure")}}}
	svc := newTestService(mock)

	resp, err := svc.Leaderboard(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("a per-category failure must not fail the view: %v", err)
	}
	if len(resp.Leaderboard) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Leaderboard))
	}
	if resp.Leaderboard[0].TotalMentions != 0 {
		t.Errorf("failed category should emit a zero entry")
	}
}

func TestLeaderboard_SortedByTotalMentions(t *testing.T) {
	smallBody := `{
		"hits": {"total": {"value": 2}, "hits": []},
		"aggregations": {"by_sentiment": {"buckets": []}}
	}`

	// Categories are processed in sorted name order with concurrency 2; both
	// responses carry distinct totals so order of consumption still yields
	// one large and one small entry.
	mock := &mockSearchClient{queue: []mockResult{
		{body: leaderboardBody},
		{body: smallBody},
	}}
	svc := newTestService(mock)

	req := testRequest()
	req.ProcessedCategories = domain.NewCategorySet(
		domain.Category{Name: "Alpha", Keywords: []string{"a"}},
		domain.Category{Name: "Beta", Keywords: []string{"b"}},
	)

	resp, err := svc.Leaderboard(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Leaderboard) != 2 {
		t.Fatalf("entries = %d, want 2", len(resp.Leaderboard))
	}
	if resp.Leaderboard[0].TotalMentions < resp.Leaderboard[1].TotalMentions {
		t.Error("leaderboard must be sorted descending by total mentions")
	}
}
