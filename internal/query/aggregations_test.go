package query_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
)

func TestDateHistogramAgg_IntervalMapping(t *testing.T) {
	tests := []struct {
		interval string
		want     string
	}{
		{domain.IntervalDaily, "day"},
		{domain.IntervalWeekly, "week"},
		{domain.IntervalMonthly, "month"},
		{"bogus", "month"},
	}

	for _, tt := range tests {
		agg := query.DateHistogramAgg(query.FieldCreatedAt, tt.interval)
		hist, ok := agg["date_histogram"].(query.M)
		if !ok {
			t.Fatalf("missing date_histogram: %v", agg)
		}
		if hist["calendar_interval"] != tt.want {
			t.Errorf("interval %q -> %v, want %v", tt.interval, hist["calendar_interval"], tt.want)
		}
		if hist["format"] != "yyyy-MM-dd" {
			t.Errorf("interval %q format = %v, want yyyy-MM-dd", tt.interval, hist["format"])
		}
	}
}

func TestBody_Structure(t *testing.T) {
	boolQuery := query.Bool([]query.M{query.Match("a", 1)})
	aggs := query.M{"by_emotion": query.TermsAgg(query.AggFieldEmotion, 20)}

	body := query.Body(boolQuery, aggs, 0)

	if body["size"] != 0 {
		t.Errorf("size = %v, want 0", body["size"])
	}
	if body["track_total_hits"] != true {
		t.Error("track_total_hits must be set")
	}
	if _, ok := body["query"]; !ok {
		t.Error("body missing query")
	}
	if _, ok := body["aggs"]; !ok {
		t.Error("body missing aggs")
	}
}

func TestBody_OmitsEmptyAggs(t *testing.T) {
	body := query.Body(query.Bool(nil), nil, 30)

	if _, ok := body["aggs"]; ok {
		t.Error("body should omit aggs when none given")
	}
	if body["size"] != 30 {
		t.Errorf("size = %v, want 30", body["size"])
	}
}

func TestWithSub_AttachesSubAggregations(t *testing.T) {
	agg := query.WithSub(
		query.TermsAgg(query.AggFieldSector, 20),
		query.M{"docs": query.TopHitsAgg(5)},
	)

	subs, ok := agg["aggs"].(query.M)
	if !ok {
		t.Fatalf("missing sub-aggregations: %v", agg)
	}
	if _, ok := subs["docs"]; !ok {
		t.Error("sub-aggregation docs not attached")
	}
}
