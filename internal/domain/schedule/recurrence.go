package schedule

import "time"

// ComputeNext derives the next due instant for a schedule as of now.
// It is pure: the caller injects the current instant and the location used
// for wall-clock combination, so results are deterministic and testable.
//
// Policy by frequency:
//   - every_x_hours anchors to the previous NextDue, not to now, so the
//     cadence grid is unaffected by how late the poller observed the firing.
//   - daily with a time of day fires at today's slot if it is still ahead,
//     otherwise tomorrow's. Without a time of day it degenerates to now+24h.
//   - weekly fires at the next occurrence of its weekday/time pair; if the
//     target day is today and the slot has already passed, a week later.
//
// A malformed schedule never stalls the engine: ComputeNext always returns
// a usable instant. When the configuration is invalid the returned error is
// a *ConfigurationError and the instant is the now+24h fallback.
//
// Daylight-saving transitions resolve through time.Date in loc: an
// ambiguous local time maps to the earlier offset, a nonexistent local
// time is normalized forward past the gap.
func ComputeNext(s FeedingSchedule, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	switch s.Frequency {
	case FrequencyEveryXHours:
		if s.HoursInterval <= 0 {
			return fallback(s, now, "hours interval must be positive")
		}
		return s.NextDue.Add(time.Duration(s.HoursInterval) * time.Hour), nil

	case FrequencyDaily:
		if s.TimeOfDay == nil {
			// No wall-clock anchor; behave as a fixed 24h interval
			// from the moment of observation.
			return now.Add(24 * time.Hour), nil
		}
		candidate := combine(now, 0, *s.TimeOfDay, loc)
		if candidate.After(now) {
			return candidate, nil
		}
		return combine(now, 1, *s.TimeOfDay, loc), nil

	case FrequencyWeekly:
		if s.DayOfWeek == nil {
			return fallback(s, now, "weekly schedule requires a day of week")
		}
		target, ok := s.DayOfWeek.Index()
		if !ok {
			return fallback(s, now, "unknown day of week")
		}
		if s.TimeOfDay == nil {
			return fallback(s, now, "weekly schedule requires a time of day")
		}
		daysAhead := (target - mondayIndexed(now.Weekday()) + 7) % 7
		candidate := combine(now, daysAhead, *s.TimeOfDay, loc)
		if daysAhead == 0 && !candidate.After(now) {
			// Today is the target day but the slot has passed
			// (or is firing right now); roll a full week.
			candidate = combine(now, 7, *s.TimeOfDay, loc)
		}
		return candidate, nil

	default:
		return fallback(s, now, "unknown frequency")
	}
}

// combine builds the instant at tod on now's date plus daysAhead, in loc.
// time.Date normalizes out-of-range components, which is also what makes
// the DST gap behavior deterministic.
func combine(now time.Time, daysAhead int, tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+daysAhead, tod.Hour, tod.Minute, 0, 0, loc)
}

// mondayIndexed converts Go's Sunday-based weekday to Monday = 0 .. Sunday = 6.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func fallback(s FeedingSchedule, now time.Time, reason string) (time.Time, error) {
	return now.Add(24 * time.Hour), &ConfigurationError{ScheduleID: s.ID, Reason: reason}
}
