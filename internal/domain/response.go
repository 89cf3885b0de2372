package domain

import "time"

// TrendPoint is one date/count pair in a per-category trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ThemeCount is one theme/keyword sub-bucket with its mention count.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int64  `json:"count"`
}

// TimeBucket is one time-series bucket with its attached documents. Count
// equals len(Documents) when the per-bucket fetch succeeded, otherwise the
// aggregation-level document count.
type TimeBucket struct {
	Date      string            `json:"date"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Count     int64             `json:"count"`
	Documents []MentionDocument `json:"documents"`
}

// EmotionSeries is the emotion-mix time series for one emotion.
type EmotionSeries struct {
	Emotion    string       `json:"emotion"`
	TotalCount int64        `json:"total_count"`
	Buckets    []TimeBucket `json:"buckets"`
}

// EmotionsResponse is the payload of the emotions view.
type EmotionsResponse struct {
	Success  bool            `json:"success"`
	Emotions []EmotionSeries `json:"emotions"`
}

// LeaderboardEntry is one category row of the sentiment leaderboard.
type LeaderboardEntry struct {
	Category       string            `json:"category"`
	TotalMentions  int64             `json:"totalMentions"`
	SentimentScore float64           `json:"sentimentScore"`
	PositiveCount  int64             `json:"positiveCount"`
	NeutralCount   int64             `json:"neutralCount"`
	NegativeCount  int64             `json:"negativeCount"`
	Themes         []ThemeCount      `json:"themes"`
	Trends         []TrendPoint      `json:"trends"`
	SampleReviews  []MentionDocument `json:"sampleReviews"`
}

// LeaderboardResponse is the payload of the leaderboard view.
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// PhraseCount is one inflation trigger phrase with its occurrence count.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int64  `json:"count"`
}

// InflationSector is one sector's inflation-related mention counts.
type InflationSector struct {
	Sector    string            `json:"sector"`
	Count     int64             `json:"count"`
	Documents []MentionDocument `json:"documents"`
}

// TypeShare is one inflation type with its share of all typed mentions,
// percentage to two decimals.
type TypeShare struct {
	Type       string  `json:"type"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// InflationResponse is the payload of the inflation narrative view.
type InflationResponse struct {
	Success bool              `json:"success"`
	Phrases []PhraseCount     `json:"phrases"`
	Sectors []InflationSector `json:"sectors"`
	Types   []TypeShare       `json:"types"`
}

// ToneShare is one tone's count and integer percentage within an institution.
type ToneShare struct {
	Tone       string `json:"tone"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

// TrustDimension is the tone breakdown for one institutional category.
type TrustDimension struct {
	Institution string            `json:"institution"`
	TotalCount  int64             `json:"total_count"`
	Tones       []ToneShare       `json:"tones"`
	Documents   []MentionDocument `json:"documents"`
}

// TrustResponse is the payload of the institutional-trust view.
type TrustResponse struct {
	Success    bool             `json:"success"`
	Dimensions []TrustDimension `json:"dimensions"`
}

// SectorBucket is one sector's mention count with attached documents.
type SectorBucket struct {
	Sector    string            `json:"sector"`
	Count     int64             `json:"count"`
	Documents []MentionDocument `json:"documents"`
}

// SectorsResponse is the payload of the sector distribution view.
type SectorsResponse struct {
	Success bool           `json:"success"`
	Sectors []SectorBucket `json:"sectors"`
}

// ErrorResponse is the common failure payload.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthStatus represents the health status of the service.
type HealthStatus struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}
