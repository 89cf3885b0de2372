// Package service implements the analytic views over the social mention
// indexes: emotion mix, sentiment leaderboard, inflation narratives,
// institutional trust tones and sector distribution.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/jonesrussell/north-cloud/listening/internal/config"
	"github.com/jonesrussell/north-cloud/listening/internal/domain"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/query"
	"github.com/jonesrussell/north-cloud/listening/internal/resolve"
)

const (
	emotionAggSize = 20
	sectorAggSize  = 20
	themeAggSize   = 10
	sentimentSize  = 10

	// analysisDocLimit caps the documents fetched for views that parse
	// per-document analytic JSON (trust, inflation).
	analysisDocLimit = 500
)

// SearchClient is the search engine surface this service depends on.
type SearchClient interface {
	Search(ctx context.Context, body map[string]any) (*esapi.Response, error)
	HealthCheck(ctx context.Context) error
}

// AnalyticsService answers the analytic views by compiling boolean queries,
// executing them and post-processing the returned aggregation buckets.
type AnalyticsService struct {
	esClient SearchClient
	config   *config.Config
	logger   logger.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(esClient SearchClient, cfg *config.Config, log logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		esClient: esClient,
		config:   cfg,
		logger:   log,
		now:      time.Now,
	}
}

// compileParams runs the three resolvers and assembles compiler parameters.
// The resolvers are independent pure functions; the compiler waits on all.
func (s *AnalyticsService) compileParams(req *domain.InsightsRequest) (query.Params, error) {
	if err := req.Validate(); err != nil {
		return query.Params{}, err
	}

	window, err := resolve.Window(
		req.FromDate, req.ToDate, req.TimeSlot,
		req.TopicID, bool(req.EnableArchiveData),
		s.now(), s.config.Analytics.DefaultLookbackDays,
	)
	if err != nil {
		return query.Params{}, err
	}

	return query.Params{
		Resolution:   resolve.Category(req.Category, req.ProcessedCategories),
		Categories:   req.ProcessedCategories,
		Window:       window,
		Sources:      resolve.Sources(req.ExplicitSources(), req.TopicID),
		Sentiments:   req.Sentiments(),
		MentionTypes: req.MentionTypes(),
		Extras:       resolve.Extras(req.TopicID),
	}, nil
}

// activeTerms returns the filter terms of the categories in play, for
// matched-term attribution.
func activeTerms(p query.Params) []string {
	if p.Resolution.Kind == resolve.CategorySingle {
		return p.Resolution.Category.Terms()
	}
	return p.Categories.AllTerms()
}

// searchResponse is the decoded shape of an Elasticsearch search response.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

type searchHit struct {
	ID     string         `json:"_id"`
	Source domain.Mention `json:"_source"`
}

// runSearch executes a search body and decodes the response.
func (s *AnalyticsService) runSearch(ctx context.Context, body map[string]any) (*searchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Service.SearchTimeout)
	defer cancel()

	res, err := s.esClient.Search(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	var decoded searchResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&decoded); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", decodeErr)
	}

	return &decoded, nil
}

// documentsFromHits converts raw hits into UI-ready documents with matched
// terms attributed.
func documentsFromHits(hits []searchHit, terms []string) []domain.MentionDocument {
	docs := make([]domain.MentionDocument, 0, len(hits))
	for i := range hits {
		mention := &hits[i].Source
		if mention.ID == "" {
			mention.ID = hits[i].ID
		}
		doc := mention.ToDocument()
		doc.MatchedTerms = MatchedTerms(mention, terms)
		docs = append(docs, doc)
	}
	return docs
}

// termsBuckets is the decoded shape of a terms aggregation with arbitrary
// sub-aggregations kept raw.
type termsBuckets struct {
	Buckets []termsBucket `json:"buckets"`
}

type termsBucket struct {
	Key      string                     `json:"key"`
	DocCount int64                      `json:"doc_count"`
	Subs     map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps unknown members as raw sub-aggregations.
func (b *termsBucket) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if keyRaw, ok := raw["key"]; ok {
		// Terms keys can be strings or numbers depending on field mapping.
		if err := json.Unmarshal(keyRaw, &b.Key); err != nil {
			var n json.Number
			if numErr := json.Unmarshal(keyRaw, &n); numErr != nil {
				return err
			}
			b.Key = n.String()
		}
	}
	if countRaw, ok := raw["doc_count"]; ok {
		if err := json.Unmarshal(countRaw, &b.DocCount); err != nil {
			return err
		}
	}
	delete(raw, "key")
	delete(raw, "key_as_string")
	delete(raw, "doc_count")
	b.Subs = raw
	return nil
}

// decodeTermsAgg extracts a terms aggregation from raw aggregation JSON.
func decodeTermsAgg(raw json.RawMessage) (termsBuckets, error) {
	var agg termsBuckets
	if len(raw) == 0 {
		return agg, nil
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return agg, fmt.Errorf("decode terms aggregation: %w", err)
	}
	return agg, nil
}

// histogramBuckets is the decoded shape of a date_histogram aggregation.
type histogramBuckets struct {
	Buckets []struct {
		KeyAsString string `json:"key_as_string"`
		DocCount    int64  `json:"doc_count"`
	} `json:"buckets"`
}

// decodeHistogramAgg extracts a date_histogram aggregation from raw JSON.
func decodeHistogramAgg(raw json.RawMessage) (histogramBuckets, error) {
	var agg histogramBuckets
	if len(raw) == 0 {
		return agg, nil
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return agg, fmt.Errorf("decode date_histogram aggregation: %w", err)
	}
	return agg, nil
}

// HealthCheck checks the health of the service and its dependencies.
func (s *AnalyticsService) HealthCheck(ctx context.Context) *domain.HealthStatus {
	status := &domain.HealthStatus{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Version:      s.config.Service.Version,
		Dependencies: make(map[string]string),
	}

	if err := s.esClient.HealthCheck(ctx); err != nil {
		status.Status = "unhealthy"
		status.Dependencies["elasticsearch"] = "unhealthy: " + err.Error()
	} else {
		status.Dependencies["elasticsearch"] = "healthy"
	}

	return status
}
