package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Interval values accepted for time-series views.
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

// Named time slots accepted by the time window resolver.
var ValidTimeSlots = map[string]int{
	"last24hours": 1,
	"last7days":   7,
	"last30days":  30,
	"last60days":  60,
	"last90days":  90,
	"last120days": 120,
}

// StringList is a request field that upstream clients send interchangeably as
// a JSON string (possibly comma-separated), an array of strings, or null.
// It normalizes to a flat slice before any business logic runs.
type StringList []string

// UnmarshalJSON implements the tagged-union decoding for StringList.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*s = nil
	case string:
		*s = splitAndTrim(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("string list contains non-string element: %v", item)
			}
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		*s = out
	default:
		return fmt.Errorf("expected string or array of strings, got %T", raw)
	}

	return nil
}

// splitAndTrim splits a comma-separated string into trimmed non-empty parts.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Flag is a request boolean that upstream clients send interchangeably as a
// JSON bool or a string ("true"/"false"/"1"/"0"). Sentinel strings normalize
// to false; anything else fails normalization.
type Flag bool

// UnmarshalJSON implements the tagged-union decoding for Flag.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			*f = true
		case "", "false", "0", "no", "undefined", "null":
			*f = false
		default:
			return fmt.Errorf("invalid flag value: %q", v)
		}
	default:
		return fmt.Errorf("expected boolean or string flag, got %T", raw)
	}

	return nil
}

// IsNoFilter reports whether a filter value is one of the sentinels that mean
// "no filter at all": empty, "All", "undefined", "null". All four are treated
// identically.
func IsNoFilter(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "All", "undefined", "null":
		return true
	}
	return false
}

// InsightsRequest is the common request body across all analytic views.
type InsightsRequest struct {
	TopicID             int         `json:"topicId"`
	Source              StringList  `json:"source"`
	Category            string      `json:"category"`
	Sentiment           string      `json:"sentiment"`
	MentionType         StringList  `json:"llm_mention_type"`
	FromDate            string      `json:"fromDate"`
	ToDate              string      `json:"toDate"`
	TimeSlot            string      `json:"timeSlot"`
	Interval            string      `json:"interval"`
	EnableArchiveData   Flag        `json:"enableArchiveData"`
	ProcessedCategories CategorySet `json:"processedCategories"`
}

// ValidationError marks a request error that should surface as HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a request validation error.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate normalizes defaults and rejects malformed requests.
func (r *InsightsRequest) Validate() error {
	if r.TopicID <= 0 {
		return NewValidationError("topicId is required")
	}

	if r.Category == "" {
		r.Category = "all"
	}

	if r.Interval == "" {
		r.Interval = IntervalMonthly
	}
	switch r.Interval {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
	default:
		return NewValidationError("invalid interval: %s", r.Interval)
	}

	if r.TimeSlot != "" {
		if _, ok := ValidTimeSlots[r.TimeSlot]; !ok {
			return NewValidationError("invalid timeSlot: %s", r.TimeSlot)
		}
	}

	return nil
}

// Sentiments returns the normalized requested sentiment values, nil when the
// sentiment filter is absent or a no-filter sentinel.
func (r *InsightsRequest) Sentiments() []string {
	if IsNoFilter(r.Sentiment) {
		return nil
	}
	return splitAndTrim(r.Sentiment)
}

// MentionTypes returns the normalized mention type filter values, nil when
// absent.
func (r *InsightsRequest) MentionTypes() []string {
	out := make([]string, 0, len(r.MentionType))
	for _, mt := range r.MentionType {
		if !IsNoFilter(mt) {
			out = append(out, mt)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ExplicitSources returns caller-supplied sources with no-filter sentinels
// stripped. An empty result means topic-based routing applies.
func (r *InsightsRequest) ExplicitSources() []string {
	out := make([]string, 0, len(r.Source))
	for _, src := range r.Source {
		if !IsNoFilter(src) {
			out = append(out, src)
		}
	}
	return out
}
