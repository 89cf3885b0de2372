package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
)

// Sectors returns the sector distribution of matching mentions, each sector
// with its count and a handful of highest-relevance sample documents pulled
// through a top_hits sub-aggregation.
func (s *AnalyticsService) Sectors(ctx context.Context, req *domain.InsightsRequest) (*domain.SectorsResponse, error) {
	params, err := s.compileParams(req)
	if err != nil {
		return nil, err
	}
	boolQuery := query.Compile(params)

	aggs := query.M{
		"by_sector": query.WithSub(
			query.TermsAgg(query.AggFieldSector, sectorAggSize),
			query.M{"docs": query.TopHitsAgg(s.config.Analytics.SampleDocLimit)},
		),
	}

	resp, err := s.runSearch(ctx, query.Body(boolQuery, aggs, 0))
	if err != nil {
		return nil, err
	}

	bySector, err := decodeTermsAgg(resp.Aggregations["by_sector"])
	if err != nil {
		return nil, err
	}

	terms := activeTerms(params)
	sectors := make([]domain.SectorBucket, 0, len(bySector.Buckets))
	for _, sb := range bySector.Buckets {
		docs, hitsErr := decodeTopHits(sb.Subs["docs"], terms)
		if hitsErr != nil {
			s.logger.Warn("sector top hits undecodable, emitting count only",
				logger.String("sector", sb.Key),
				logger.Error(hitsErr),
			)
			docs = []domain.MentionDocument{}
		}
		sectors = append(sectors, domain.SectorBucket{
			Sector:    sb.Key,
			Count:     sb.DocCount,
			Documents: docs,
		})
	}

	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].Count > sectors[j].Count
	})

	return &domain.SectorsResponse{Success: true, Sectors: sectors}, nil
}

// decodeTopHits extracts documents from a top_hits sub-aggregation.
func decodeTopHits(raw json.RawMessage, terms []string) ([]domain.MentionDocument, error) {
	if len(raw) == 0 {
		return []domain.MentionDocument{}, nil
	}

	var agg struct {
		Hits struct {
			Hits []searchHit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, err
	}
	return documentsFromHits(agg.Hits.Hits, terms), nil
}
