package query

import "github.com/jonesrussell/north-cloud/listening/internal/domain"

// Aggregation field names. Terms aggregations run on keyword sub-fields.
const (
	AggFieldEmotion   = "emotion.keyword"
	AggFieldSentiment = "sentiment.keyword"
	AggFieldSector    = "sector.keyword"
	AggFieldThemes    = "keywords.keyword"
)

// calendarInterval maps request intervals to date_histogram intervals.
var calendarInterval = map[string]string{
	domain.IntervalDaily:   "day",
	domain.IntervalWeekly:  "week",
	domain.IntervalMonthly: "month",
}

// TermsAgg builds a terms aggregation.
func TermsAgg(field string, size int) M {
	return M{
		"terms": M{
			"field": field,
			"size":  size,
		},
	}
}

// DateHistogramAgg builds a calendar date_histogram for a request interval.
func DateHistogramAgg(field, interval string) M {
	ci, ok := calendarInterval[interval]
	if !ok {
		ci = "month"
	}
	return M{
		"date_histogram": M{
			"field":             field,
			"calendar_interval": ci,
			"format":            "yyyy-MM-dd",
		},
	}
}

// TopHitsAgg builds a top_hits aggregation sorted by relevance.
func TopHitsAgg(size int) M {
	return M{
		"top_hits": M{
			"size": size,
			"sort": []M{{"_score": M{"order": "desc"}}},
		},
	}
}

// WithSub attaches named sub-aggregations to an aggregation.
func WithSub(agg M, subs M) M {
	agg["aggs"] = subs
	return agg
}

// Body assembles a complete search body: query, aggregations, hit window.
func Body(boolQuery M, aggs M, size int) M {
	body := M{
		"size":             size,
		"track_total_hits": true,
		"query":            boolQuery,
	}
	if len(aggs) > 0 {
		body["aggs"] = aggs
	}
	return body
}
