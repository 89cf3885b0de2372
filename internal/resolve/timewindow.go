package resolve

import (
	"time"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
)

// dateLayout is the day-granularity format used across all time clauses.
const dateLayout = "2006-01-02"

// TimeWindow is the resolved [from, to] pair. Active=false means no time
// clause is added to the query at all, which is distinct from a wide window:
// with topic defaults involved it changes which documents can match.
type TimeWindow struct {
	From   time.Time
	To     time.Time
	Active bool
}

// FromString returns the window start formatted at day granularity.
func (w TimeWindow) FromString() string {
	return w.From.Format(dateLayout)
}

// ToString returns the window end formatted at day granularity.
func (w TimeWindow) ToString() string {
	return w.To.Format(dateLayout)
}

// wideRangeTopics are legacy topics whose views expect unrestricted history
// when no time inputs are given.
var wideRangeTopics = map[int]bool{
	TopicGulfBank:   true,
	TopicUrbanTrans: true,
}

// Window resolves the five time-specification styles into a single window.
// Priority: explicit dates, named slot, lookback default, no filter. Archive
// requests and wide-range topics skip the lookback default so historical
// documents stay reachable.
func Window(fromDate, toDate, timeSlot string, topicID int, archive bool, now time.Time, defaultLookbackDays int) (TimeWindow, error) {
	if fromDate != "" && toDate != "" {
		from, err := time.Parse(dateLayout, fromDate)
		if err != nil {
			return TimeWindow{}, domain.NewValidationError("invalid fromDate: %s", fromDate)
		}
		to, err := time.Parse(dateLayout, toDate)
		if err != nil {
			return TimeWindow{}, domain.NewValidationError("invalid toDate: %s", toDate)
		}
		if from.After(to) {
			return TimeWindow{}, domain.NewValidationError("fromDate cannot be after toDate")
		}
		return TimeWindow{From: from, To: to, Active: true}, nil
	}

	if timeSlot != "" {
		days, ok := domain.ValidTimeSlots[timeSlot]
		if !ok {
			return TimeWindow{}, domain.NewValidationError("invalid timeSlot: %s", timeSlot)
		}
		return TimeWindow{From: now.AddDate(0, 0, -days), To: now, Active: true}, nil
	}

	if !archive && !wideRangeTopics[topicID] {
		return TimeWindow{From: now.AddDate(0, 0, -defaultLookbackDays), To: now, Active: true}, nil
	}

	return TimeWindow{Active: false}, nil
}
