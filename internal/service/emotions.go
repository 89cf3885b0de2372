package service

import (
	"context"
	"sort"
	"time"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
)

// Emotions returns the emotion mix as a time series. Each time bucket carries
// up to the configured document cap; when a bucket's document fetch succeeds
// the returned count replaces the aggregation count so UI counts always equal
// the number of attached documents.
func (s *AnalyticsService) Emotions(ctx context.Context, req *domain.InsightsRequest) (*domain.EmotionsResponse, error) {
	params, err := s.compileParams(req)
	if err != nil {
		return nil, err
	}
	boolQuery := query.Compile(params)

	aggs := query.M{
		"by_emotion": query.WithSub(
			query.TermsAgg(query.AggFieldEmotion, emotionAggSize),
			query.M{"over_time": query.DateHistogramAgg(query.FieldCreatedAt, req.Interval)},
		),
	}

	resp, err := s.runSearch(ctx, query.Body(boolQuery, aggs, 0))
	if err != nil {
		return nil, err
	}

	byEmotion, err := decodeTermsAgg(resp.Aggregations["by_emotion"])
	if err != nil {
		return nil, err
	}

	terms := activeTerms(params)
	series := make([]domain.EmotionSeries, 0, len(byEmotion.Buckets))
	var jobs []emotionBucketJob

	for _, eb := range byEmotion.Buckets {
		overTime, histErr := decodeHistogramAgg(eb.Subs["over_time"])
		if histErr != nil {
			s.logger.Warn("skipping emotion with undecodable histogram",
				logger.String("emotion", eb.Key),
				logger.Error(histErr),
			)
			continue
		}

		buckets := make([]domain.TimeBucket, 0, len(overTime.Buckets))
		for _, hb := range overTime.Buckets {
			start, end, ok := bucketBounds(hb.KeyAsString, req.Interval)
			if !ok {
				continue
			}
			buckets = append(buckets, domain.TimeBucket{
				Date:      hb.KeyAsString,
				StartDate: start,
				EndDate:   end,
				Count:     hb.DocCount,
				Documents: []domain.MentionDocument{},
			})
			jobs = append(jobs, emotionBucketJob{
				seriesIdx: len(series),
				bucketIdx: len(buckets) - 1,
				emotion:   eb.Key,
				start:     start,
				end:       end,
			})
		}

		series = append(series, domain.EmotionSeries{
			Emotion:    eb.Key,
			TotalCount: eb.DocCount,
			Buckets:    buckets,
		})
	}

	s.fetchEmotionBuckets(ctx, boolQuery, series, jobs, terms)

	// Fetches complete in arbitrary order; buckets go back out chronological.
	for i := range series {
		sort.Slice(series[i].Buckets, func(a, b int) bool {
			return series[i].Buckets[a].Date < series[i].Buckets[b].Date
		})
	}

	return &domain.EmotionsResponse{Success: true, Emotions: series}, nil
}

type emotionBucketJob struct {
	seriesIdx int
	bucketIdx int
	emotion   string
	start     string
	end       string
}

// fetchEmotionBuckets fans out one capped document fetch per (emotion,
// bucket) pair through the bounded pool. A failed fetch keeps the
// aggregation-level count so partial failures never zero out the series.
func (s *AnalyticsService) fetchEmotionBuckets(
	ctx context.Context,
	boolQuery query.M,
	series []domain.EmotionSeries,
	jobs []emotionBucketJob,
	terms []string,
) {
	s.forEachBounded(ctx, len(jobs), func(ctx context.Context, i int) {
		job := jobs[i]
		bucketQuery := query.Extend(boolQuery,
			query.Term(query.AggFieldEmotion, job.emotion),
			query.DateRange(query.FieldCreatedAt, job.start, job.end),
		)

		resp, err := s.runSearch(ctx, query.Body(bucketQuery, nil, s.config.Analytics.BucketDocLimit))
		if err != nil {
			s.logger.Warn("emotion bucket fetch failed, keeping aggregation count",
				logger.String("emotion", job.emotion),
				logger.String("bucket", job.start),
				logger.Error(err),
			)
			return
		}

		bucket := &series[job.seriesIdx].Buckets[job.bucketIdx]
		bucket.Documents = documentsFromHits(resp.Hits.Hits, terms)
		bucket.Count = int64(len(bucket.Documents))
	})
}

// bucketBounds derives the literal day boundaries of a histogram bucket from
// its key and the request interval.
func bucketBounds(keyAsString, interval string) (start, end string, ok bool) {
	t, err := time.Parse("2006-01-02", keyAsString)
	if err != nil {
		return "", "", false
	}

	switch interval {
	case domain.IntervalDaily:
		return keyAsString, keyAsString, true
	case domain.IntervalWeekly:
		return keyAsString, t.AddDate(0, 0, 6).Format("2006-01-02"), true
	default: // monthly
		return keyAsString, t.AddDate(0, 1, -1).Format("2006-01-02"), true
	}
}
