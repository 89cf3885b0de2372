package domain

import "time"

// Mention represents a document from the social mention indexes as stored by
// the ingestion pipeline.
type Mention struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	MessageText    string     `json:"message_text"`
	Content        string     `json:"content,omitempty"`
	Title          string     `json:"title,omitempty"`
	Keywords       []string   `json:"keywords,omitempty"`
	Hashtags       []string   `json:"hashtags,omitempty"`
	URLs           []string   `json:"urls,omitempty"`
	SourceURL      string     `json:"source_url,omitempty"`
	PermalinkURL   string     `json:"permalink_url,omitempty"`
	DisplayName    string     `json:"display_name,omitempty"`
	UserHandle     string     `json:"user_handle,omitempty"`
	ProfileImage   string     `json:"profile_image,omitempty"`
	FollowersCount int64      `json:"followers_count,omitempty"`
	LikeCount      int64      `json:"like_count,omitempty"`
	CommentCount   int64      `json:"comment_count,omitempty"`
	ShareCount     int64      `json:"share_count,omitempty"`
	Sentiment      string     `json:"sentiment,omitempty"`
	Emotion        string     `json:"emotion,omitempty"`
	MentionType    string     `json:"llm_mention_type,omitempty"`
	Sector         string     `json:"sector,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`

	// JSON-encoded analytic fields produced by the classification pipeline.
	// Parsed lazily per view; malformed values are skipped, never fatal.
	TrustDimensions   string `json:"trust_dimensions,omitempty"`
	InflationAnalysis string `json:"inflation_analysis,omitempty"`
}

// InflationAnalysis is the decoded shape of Mention.InflationAnalysis.
type InflationAnalysis struct {
	IsInflationRelated bool     `json:"is_inflation_related"`
	TriggerPhrases     []string `json:"inflation_trigger_phrases"`
	Sector             string   `json:"inflation_sector"`
	Type               string   `json:"inflation_type"`
}

// MentionDocument is the normalized, UI-ready shape of one search hit.
// Created fresh per response; never persisted.
type MentionDocument struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	MessageText    string     `json:"message_text"`
	Title          string     `json:"title,omitempty"`
	URL            string     `json:"url,omitempty"`
	DisplayName    string     `json:"display_name,omitempty"`
	UserHandle     string     `json:"user_handle,omitempty"`
	ProfileImage   string     `json:"profile_image,omitempty"`
	FollowersCount int64      `json:"followers_count"`
	LikeCount      int64      `json:"like_count"`
	CommentCount   int64      `json:"comment_count"`
	ShareCount     int64      `json:"share_count"`
	Sentiment      string     `json:"sentiment,omitempty"`
	Emotion        string     `json:"emotion,omitempty"`
	MentionType    string     `json:"llm_mention_type,omitempty"`
	MatchedTerms   []string   `json:"matched_terms"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// ToDocument converts a raw mention into the UI-ready document shape.
// Matched terms are attributed separately.
func (m *Mention) ToDocument() MentionDocument {
	url := m.PermalinkURL
	if url == "" {
		url = m.SourceURL
	}

	return MentionDocument{
		ID:             m.ID,
		Source:         m.Source,
		MessageText:    m.MessageText,
		Title:          m.Title,
		URL:            url,
		DisplayName:    m.DisplayName,
		UserHandle:     m.UserHandle,
		ProfileImage:   m.ProfileImage,
		FollowersCount: m.FollowersCount,
		LikeCount:      m.LikeCount,
		CommentCount:   m.CommentCount,
		ShareCount:     m.ShareCount,
		Sentiment:      m.Sentiment,
		Emotion:        m.Emotion,
		MentionType:    m.MentionType,
		MatchedTerms:   []string{},
		CreatedAt:      m.CreatedAt,
	}
}
