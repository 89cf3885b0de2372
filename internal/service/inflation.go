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

// Inflation tracks inflation narratives: trigger phrase counts, per-sector
// mention counts with sample documents, and the distribution across inflation
// types. The analysis lives in a JSON-encoded field parsed per document;
// malformed fields skip that document only.
func (s *AnalyticsService) Inflation(ctx context.Context, req *domain.InsightsRequest) (*domain.InflationResponse, error) {
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

	phraseCounts := make(map[string]int64)
	typeCounts := make(map[string]int64)
	sectors := make(map[string]*sectorAccum)
	var totalTyped int64

	for i := range resp.Hits.Hits {
		mention := &resp.Hits.Hits[i].Source
		if mention.InflationAnalysis == "" {
			continue
		}

		var analysis domain.InflationAnalysis
		if parseErr := json.Unmarshal([]byte(mention.InflationAnalysis), &analysis); parseErr != nil {
			s.logger.Warn("skipping document with malformed inflation analysis",
				logger.String("doc_id", mention.ID),
				logger.Error(parseErr),
			)
			continue
		}
		if !analysis.IsInflationRelated {
			continue
		}

		for _, phrase := range analysis.TriggerPhrases {
			if phrase != "" {
				phraseCounts[phrase]++
			}
		}

		if analysis.Sector != "" {
			acc, ok := sectors[analysis.Sector]
			if !ok {
				acc = &sectorAccum{}
				sectors[analysis.Sector] = acc
			}
			acc.count++
			if len(acc.documents) < s.config.Analytics.BucketDocLimit {
				acc.documents = append(acc.documents, documentsFromHits(resp.Hits.Hits[i:i+1], terms)[0])
			}
		}

		if analysis.Type != "" {
			typeCounts[analysis.Type]++
			totalTyped++
		}
	}

	return &domain.InflationResponse{
		Success: true,
		Phrases: phraseList(phraseCounts),
		Sectors: sectorList(sectors),
		Types:   typeShares(typeCounts, totalTyped),
	}, nil
}

// phraseList sorts trigger phrases descending by count.
func phraseList(counts map[string]int64) []domain.PhraseCount {
	phrases := make([]domain.PhraseCount, 0, len(counts))
	for phrase, count := range counts {
		phrases = append(phrases, domain.PhraseCount{Phrase: phrase, Count: count})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].Count != phrases[j].Count {
			return phrases[i].Count > phrases[j].Count
		}
		return phrases[i].Phrase < phrases[j].Phrase
	})
	return phrases
}

type sectorAccum struct {
	count     int64
	documents []domain.MentionDocument
}

// sectorList sorts sectors descending by count.
func sectorList(sectors map[string]*sectorAccum) []domain.InflationSector {
	out := make([]domain.InflationSector, 0, len(sectors))
	for name, acc := range sectors {
		out = append(out, domain.InflationSector{
			Sector:    name,
			Count:     acc.count,
			Documents: acc.documents,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

// typeShares computes the percentage of each inflation type across all typed
// mentions, two decimals, sorted descending by percentage.
func typeShares(counts map[string]int64, total int64) []domain.TypeShare {
	shares := make([]domain.TypeShare, 0, len(counts))
	for typ, count := range counts {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(count)/float64(total)*100*100) / 100
		}
		shares = append(shares, domain.TypeShare{Type: typ, Count: count, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].Type < shares[j].Type
	})
	return shares
}
