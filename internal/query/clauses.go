// Package query compiles resolved request filters into Elasticsearch boolean
// query bodies. Clauses are plain map literals, composed by small builder
// functions so compiler logic stays testable independent of the wire format.
package query

// M is shorthand for one JSON object in a query body.
type M = map[string]any

// Document fields used by filter clauses.
const (
	FieldMessageText = "message_text"
	FieldHashtags    = "hashtags"
	FieldURLs        = "urls"
	FieldSource      = "source"
	FieldSentiment   = "sentiment"
	FieldMentionType = "llm_mention_type"
	FieldCreatedAt   = "created_at"
)

// Match builds a match query on a single field.
func Match(field string, value any) M {
	return M{"match": M{field: value}}
}

// MatchPhrase builds a match_phrase query on a single field.
func MatchPhrase(field, phrase string) M {
	return M{"match_phrase": M{field: phrase}}
}

// MultiMatchPhrase builds a phrase-type multi_match across several fields.
func MultiMatchPhrase(text string, fields ...string) M {
	return M{
		"multi_match": M{
			"query":  text,
			"fields": fields,
			"type":   "phrase",
		},
	}
}

// Term builds an exact term query.
func Term(field string, value any) M {
	return M{"term": M{field: value}}
}

// DateRange builds a day-granularity range query.
func DateRange(field, gte, lte string) M {
	return M{
		"range": M{
			field: M{
				"gte":    gte,
				"lte":    lte,
				"format": "yyyy-MM-dd",
			},
		},
	}
}

// AnyOf builds a bool/should wrapper requiring at least one clause to match.
func AnyOf(clauses ...M) M {
	return M{
		"bool": M{
			"should":               clauses,
			"minimum_should_match": 1,
		},
	}
}

// MatchNone builds a clause guaranteed to match zero documents. It is the
// compiled form of an unfilterable category: the filter must be present and
// impossible, not omitted.
func MatchNone() M {
	return M{
		"bool": M{
			"must_not": []M{{"match_all": M{}}},
		},
	}
}

// Bool assembles a top-level bool query from must clauses.
func Bool(must []M) M {
	return M{"bool": M{"must": must}}
}

// Extend returns a new bool query with additional must clauses appended.
// The input tree is not mutated; compiled queries are extended, never edited.
func Extend(boolQuery M, clauses ...M) M {
	inner, _ := boolQuery["bool"].(M)
	existing, _ := inner["must"].([]M)

	must := make([]M, 0, len(existing)+len(clauses))
	must = append(must, existing...)
	must = append(must, clauses...)
	return Bool(must)
}
