package resolve

// Topic IDs with routing special cases. Upstream assigns these when a
// customer topic is onboarded; they are stable identifiers, not enum values.
const (
	TopicGulfBank     = 2325
	TopicGulfBankEN   = 2388
	TopicMinistryComm = 2391
	TopicUrbanTrans   = 2473
	TopicHealthAuth   = 2541
	TopicRetailCoop   = 2603
	TopicCivicPulse   = 2619
	TopicNationalRail = 2640
)

// AllPlatforms is the full supported platform list used when no routing rule
// applies. LinkedIn appears in both casings because upstream indexing is
// inconsistent about it.
var AllPlatforms = []string{
	"Facebook", "Twitter", "Instagram", "YouTube",
	"LinkedIn", "Linkedin", "Pinterest", "Web", "Reddit", "TikTok",
}

// sourceRule maps a set of topic IDs to a fixed platform list.
type sourceRule struct {
	topics    []int
	platforms []string
}

// sourceRules is evaluated top to bottom, first match wins. The legacy
// implementation had overlapping entries for the leaderboard topics where a
// later branch overwrote an earlier one; the list below pins the overwriting
// branch as the single rule for those IDs.
var sourceRules = []sourceRule{
	{
		topics:    []int{TopicMinistryComm, TopicNationalRail},
		platforms: []string{"LinkedIn", "Linkedin"},
	},
	{
		topics:    []int{TopicGulfBankEN, TopicRetailCoop},
		platforms: []string{"Facebook", "Twitter", "Instagram"},
	},
	{
		topics:    []int{TopicHealthAuth, TopicCivicPulse},
		platforms: []string{"Facebook", "Twitter", "Instagram", "YouTube"},
	},
	{
		topics:    []int{TopicGulfBank},
		platforms: []string{"Facebook", "Twitter"},
	},
}

// ExtraFilter is a mandatory term clause some topics append outside of source
// routing, so source rules and mandatory-tag rules can evolve independently.
type ExtraFilter struct {
	Field string
	Value any
}

// extraFilters maps topic IDs to their mandatory clauses.
var extraFilters = map[int][]ExtraFilter{
	TopicCivicPulse: {{Field: "is_public_opinion", Value: true}},
	TopicHealthAuth: {{Field: "category", Value: "Healthcare"}},
}

// Sources produces the ordered platform list the query must restrict to.
// An explicit caller-supplied list always takes precedence over topic rules.
func Sources(explicit []string, topicID int) []string {
	if len(explicit) > 0 {
		return append([]string(nil), explicit...)
	}

	for _, rule := range sourceRules {
		for _, id := range rule.topics {
			if id == topicID {
				return append([]string(nil), rule.platforms...)
			}
		}
	}

	return append([]string(nil), AllPlatforms...)
}

// Extras returns the mandatory extra clauses for a topic, nil for most.
func Extras(topicID int) []ExtraFilter {
	filters, ok := extraFilters[topicID]
	if !ok {
		return nil
	}
	return append([]ExtraFilter(nil), filters...)
}
