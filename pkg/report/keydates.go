// Package report derives view-ready facts from the raw analysis report.
// Every function here is total: missing or malformed report sections produce
// empty results, never errors, because an incomplete report must still render.
package report

import (
	"time"

	"deposit-defender-be/internal/entity"
)

// KeyDate is a derived, labeled calendar date. It is never stored.
// Invariant: when DaysRemaining is set, IsPast == (*DaysRemaining < 0);
// zero means "today" and is neither past nor future.
type KeyDate struct {
	Label         string `json:"label"`
	Date          string `json:"date"` // ISO 8601 calendar date
	IsPast        bool   `json:"is_past"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

const dateLayout = "2006-01-02"

// fallbackDeadlineDays is the Texas Property Code refund window the UI
// synthesizes when the backend only stored a raw day count.
const fallbackDeadlineDays = 30

// ResolveKeyDates builds the ordered date list for a timeline.
//
// Priority: the backend-computed deadline list is authoritative when present.
// The move-out date is always prepended when known (it is always in the past
// relative to a report). When neither yields more than the move-out entry,
// a single 30-day deadline is synthesized from the raw day count so the UI
// always has at least one actionable date. Duplicates are not removed; a
// backend list that already names move-out simply shows it twice, which is
// benign for an advisory display.
func ResolveKeyDates(timeline *entity.Timeline) []KeyDate {
	if timeline == nil {
		return nil
	}

	var dates []KeyDate
	for _, d := range timeline.ComputedDeadlines {
		dates = append(dates, KeyDate{
			Label:         d.Label,
			Date:          d.Date,
			IsPast:        d.HasPassed,
			DaysRemaining: d.DaysRemaining,
		})
	}

	moveOut := moveOutDate(timeline)
	if moveOut != "" {
		dates = append([]KeyDate{{
			Label:  "Move-out date",
			Date:   moveOut,
			IsPast: true,
		}}, dates...)
	}

	if len(dates) <= 1 && timeline.DaysSinceMoveOut != nil {
		if parsed, err := time.Parse(dateLayout, moveOut); err == nil {
			remaining := fallbackDeadlineDays - *timeline.DaysSinceMoveOut
			dates = append(dates, KeyDate{
				Label:         "30-day deadline",
				Date:          parsed.AddDate(0, 0, fallbackDeadlineDays).Format(dateLayout),
				IsPast:        timeline.Past30Days != nil && *timeline.Past30Days,
				DaysRemaining: &remaining,
			})
		}
	}

	return dates
}

func moveOutDate(timeline *entity.Timeline) string {
	if timeline.KeyDates != nil && timeline.KeyDates.MoveOutDate != "" {
		return timeline.KeyDates.MoveOutDate
	}
	return timeline.MoveOutDate
}
