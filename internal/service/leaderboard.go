package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
)

// sentimentWeights maps sentiment buckets to leaderboard score weights.
var sentimentWeights = map[string]float64{
	"positive": 1,
	"neutral":  0,
	"negative": -1,
}

// Leaderboard compares every defined category: average sentiment score,
// merged trend series, top themes and sample documents. Categories without
// matchable criteria are still emitted with all-zero metrics so the caller
// sees every category it defined.
func (s *AnalyticsService) Leaderboard(ctx context.Context, req *domain.InsightsRequest) (*domain.LeaderboardResponse, error) {
	params, err := s.compileParams(req)
	if err != nil {
		return nil, err
	}

	var filterable, unfilterable []domain.Category
	for _, c := range req.ProcessedCategories.All() {
		if c.HasCriteria() {
			filterable = append(filterable, c)
		} else {
			unfilterable = append(unfilterable, c)
		}
	}

	entries := make([]domain.LeaderboardEntry, len(filterable))
	var mu sync.Mutex

	s.forEachBounded(ctx, len(filterable), func(ctx context.Context, i int) {
		entry := s.categoryEntry(ctx, params, filterable[i], req.Interval)
		mu.Lock()
		entries[i] = entry
		mu.Unlock()
	})

	// Unfilterable categories were excluded from querying entirely; they get
	// zero-filled entries appended after the computed ones.
	for _, c := range unfilterable {
		entries = append(entries, zeroEntry(c.Name))
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].TotalMentions > entries[b].TotalMentions
	})

	return &domain.LeaderboardResponse{Success: true, Leaderboard: entries}, nil
}

// categoryEntry runs the per-category query and post-processes its buckets.
// Any failure degrades to a zero entry for this category only.
func (s *AnalyticsService) categoryEntry(
	ctx context.Context,
	params query.Params,
	c domain.Category,
	interval string,
) domain.LeaderboardEntry {
	boolQuery := query.CompileForCategory(params, c)

	aggs := query.M{
		"by_sentiment": query.WithSub(
			query.TermsAgg(query.AggFieldSentiment, sentimentSize),
			query.M{
				"over_time": query.DateHistogramAgg(query.FieldCreatedAt, interval),
				"themes":    query.TermsAgg(query.AggFieldThemes, themeAggSize),
			},
		),
	}

	resp, err := s.runSearch(ctx, query.Body(boolQuery, aggs, s.config.Analytics.SampleDocLimit))
	if err != nil {
		s.logger.Warn("leaderboard category query failed, emitting zero entry",
			logger.String("category", c.Name),
			logger.Error(err),
		)
		return zeroEntry(c.Name)
	}

	bySentiment, err := decodeTermsAgg(resp.Aggregations["by_sentiment"])
	if err != nil {
		s.logger.Warn("leaderboard sentiment buckets undecodable, emitting zero entry",
			logger.String("category", c.Name),
			logger.Error(err),
		)
		return zeroEntry(c.Name)
	}

	entry := domain.LeaderboardEntry{
		Category:      c.Name,
		TotalMentions: resp.Hits.Total.Value,
		Themes:        []domain.ThemeCount{},
		Trends:        []domain.TrendPoint{},
		SampleReviews: documentsFromHits(resp.Hits.Hits, c.Terms()),
	}

	var weighted, total float64
	themeCounts := make(map[string]int64)

	for _, sb := range bySentiment.Buckets {
		key := strings.ToLower(sb.Key)
		if weight, ok := sentimentWeights[key]; ok {
			weighted += weight * float64(sb.DocCount)
			total += float64(sb.DocCount)
		}
		switch key {
		case "positive":
			entry.PositiveCount += sb.DocCount
		case "neutral":
			entry.NeutralCount += sb.DocCount
		case "negative":
			entry.NegativeCount += sb.DocCount
		}

		if overTime, histErr := decodeHistogramAgg(sb.Subs["over_time"]); histErr == nil {
			points := make([]domain.TrendPoint, 0, len(overTime.Buckets))
			for _, hb := range overTime.Buckets {
				points = append(points, domain.TrendPoint{Date: hb.KeyAsString, Count: hb.DocCount})
			}
			entry.Trends = MergeTrends(entry.Trends, points)
		}

		if themes, themeErr := decodeTermsAgg(sb.Subs["themes"]); themeErr == nil {
			for _, tb := range themes.Buckets {
				themeCounts[tb.Key] += tb.DocCount
			}
		}
	}

	if total > 0 {
		entry.SentimentScore = weighted / total
	}

	entry.Themes = topThemes(themeCounts, s.config.Analytics.TopThemeLimit)
	return entry
}

// MergeTrends merges two trend series by date, summing counts for identical
// dates, sorted ascending by date.
func MergeTrends(a, b []domain.TrendPoint) []domain.TrendPoint {
	byDate := make(map[string]int64, len(a)+len(b))
	for _, p := range a {
		byDate[p.Date] += p.Count
	}
	for _, p := range b {
		byDate[p.Date] += p.Count
	}

	merged := make([]domain.TrendPoint, 0, len(byDate))
	for date, count := range byDate {
		merged = append(merged, domain.TrendPoint{Date: date, Count: count})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}

// topThemes returns the highest-count themes, descending, capped at limit.
// Ties break alphabetically so output is deterministic.
func topThemes(counts map[string]int64, limit int) []domain.ThemeCount {
	themes := make([]domain.ThemeCount, 0, len(counts))
	for theme, count := range counts {
		themes = append(themes, domain.ThemeCount{Theme: theme, Count: count})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Theme < themes[j].Theme
	})
	if len(themes) > limit {
		themes = themes[:limit]
	}
	return themes
}

// zeroEntry builds an all-zero leaderboard entry for a category.
func zeroEntry(name string) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		Category:      name,
		Themes:        []domain.ThemeCount{},
		Trends:        []domain.TrendPoint{},
		SampleReviews: []domain.MentionDocument{},
	}
}
