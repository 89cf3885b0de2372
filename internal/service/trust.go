package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
)

// Trust aggregates the tone each document assigns to institutional
// categories. The tone map lives in a JSON-encoded analytic field, so this
// view fetches documents and parses per document; a malformed field skips
// that one document, never the response.
func (s *AnalyticsService) Trust(ctx context.Context, req *domain.InsightsRequest) (*domain.TrustResponse, error) {
	params, err := s.compileParams(req)
	if err != nil {
		return nil, err
	}
	boolQuery := query.Compile(params)

	resp, err := s.runSearch(ctx, query.Body(boolQuery, nil, analysisDocLimit))
	if err != nil {
		return nil, err
	}

	terms := activeTerms(params)

	type accum struct {
		toneCounts map[string]int64
		total      int64
		documents  []domain.MentionDocument
	}
	byInstitution := make(map[string]*accum)

	for i := range resp.Hits.Hits {
		mention := &resp.Hits.Hits[i].Source
		if mention.TrustDimensions == "" {
			continue
		}

		var tones map[string]string
		if parseErr := json.Unmarshal([]byte(mention.TrustDimensions), &tones); parseErr != nil {
			s.logger.Warn("skipping document with malformed trust dimensions",
				logger.String("doc_id", mention.ID),
				logger.Error(parseErr),
			)
			continue
		}

		doc := documentsFromHits(resp.Hits.Hits[i:i+1], terms)[0]
		for institution, tone := range tones {
			acc, ok := byInstitution[institution]
			if !ok {
				acc = &accum{toneCounts: make(map[string]int64)}
				byInstitution[institution] = acc
			}
			acc.toneCounts[tone]++
			acc.total++
			if len(acc.documents) < s.config.Analytics.BucketDocLimit {
				acc.documents = append(acc.documents, doc)
			}
		}
	}

	dimensions := make([]domain.TrustDimension, 0, len(byInstitution))
	for institution, acc := range byInstitution {
		dimensions = append(dimensions, domain.TrustDimension{
			Institution: institution,
			TotalCount:  acc.total,
			Tones:       toneShares(acc.toneCounts, acc.total),
			Documents:   acc.documents,
		})
	}

	sort.Slice(dimensions, func(i, j int) bool {
		if dimensions[i].TotalCount != dimensions[j].TotalCount {
			return dimensions[i].TotalCount > dimensions[j].TotalCount
		}
		return dimensions[i].Institution < dimensions[j].Institution
	})

	return &domain.TrustResponse{Success: true, Dimensions: dimensions}, nil
}

// toneShares computes per-tone counts and integer percentages within one
// institution, descending by count. Known tones with zero occurrences are
// omitted; unknown tone labels pass through as-is.
func toneShares(counts map[string]int64, total int64) []domain.ToneShare {
	shares := make([]domain.ToneShare, 0, len(counts))
	for tone, count := range counts {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		shares = append(shares, domain.ToneShare{Tone: tone, Count: count, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Tone < shares[j].Tone
	})
	return shares
}
