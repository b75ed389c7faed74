package schedule

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Frequency is the recurrence policy of a feeding schedule.
// Exactly one policy is active per schedule; the frequency value decides
// which of the optional fields below are meaningful.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyEveryXHours Frequency = "every_x_hours"
)

// IsValid reports whether f is one of the known frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyEveryXHours:
		return true
	}
	return false
}

// Weekday is a closed weekday tag for weekly schedules.
type Weekday string

const (
	WeekdayMonday    Weekday = "mon"
	WeekdayTuesday   Weekday = "tue"
	WeekdayWednesday Weekday = "wed"
	WeekdayThursday  Weekday = "thu"
	WeekdayFriday    Weekday = "fri"
	WeekdaySaturday  Weekday = "sat"
	WeekdaySunday    Weekday = "sun"
)

var weekdayIndex = map[Weekday]int{
	WeekdayMonday:    0,
	WeekdayTuesday:   1,
	WeekdayWednesday: 2,
	WeekdayThursday:  3,
	WeekdayFriday:    4,
	WeekdaySaturday:  5,
	WeekdaySunday:    6,
}

// Index returns the weekday position with Monday = 0 .. Sunday = 6,
// and whether the tag is a known weekday.
func (w Weekday) Index() (int, bool) {
	i, ok := weekdayIndex[w]
	return i, ok
}

// TimeOfDay is a wall-clock time (hour and minute) without a date or zone.
// It maps to a Postgres TIME column.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates the hour/minute pair.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("time of day: hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day: minute %d out of range", minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Value implements driver.Valuer so a TimeOfDay can be written to a TIME column.
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute), nil
}

// Scan implements sql.Scanner. lib/pq hands TIME columns back as text,
// but time.Time is accepted too for driver portability.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Hour, t.Minute = v.Hour(), v.Minute()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case nil:
		return fmt.Errorf("time of day: cannot scan NULL, use a pointer")
	default:
		return fmt.Errorf("time of day: cannot scan %T", src)
	}
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if err := t.parse(s); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

func (t *TimeOfDay) parse(s string) error {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return fmt.Errorf("time of day: malformed value %q", s)
		}
	}
	tod, err := NewTimeOfDay(h, m)
	if err != nil {
		return err
	}
	*t = tod
	return nil
}

// FeedingSchedule is the recurrence record for one animal's feeding plan.
// NextDue is the single source of truth for when the schedule fires next.
type FeedingSchedule struct {
	ID            int64
	AnimalID      int64
	Frequency     Frequency
	TimeOfDay     *TimeOfDay // daily and weekly only
	DayOfWeek     *Weekday   // weekly only
	HoursInterval int        // every_x_hours only; strictly positive
	NextDue       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks that the frequency-specific fields required by the
// active frequency are present and well-formed. Stored rows that fail
// validation are still processed by the engine via the fallback rule;
// this is the construction-time gate for new and edited schedules.
func (s *FeedingSchedule) Validate() error {
	if !s.Frequency.IsValid() {
		return &ConfigurationError{ScheduleID: s.ID, Reason: fmt.Sprintf("unknown frequency %q", s.Frequency)}
	}
	switch s.Frequency {
	case FrequencyEveryXHours:
		if s.HoursInterval <= 0 {
			return &ConfigurationError{ScheduleID: s.ID, Reason: fmt.Sprintf("hours interval must be positive, got %d", s.HoursInterval)}
		}
	case FrequencyWeekly:
		if s.DayOfWeek == nil {
			return &ConfigurationError{ScheduleID: s.ID, Reason: "weekly schedule requires a day of week"}
		}
		if _, ok := s.DayOfWeek.Index(); !ok {
			return &ConfigurationError{ScheduleID: s.ID, Reason: fmt.Sprintf("unknown day of week %q", *s.DayOfWeek)}
		}
		if s.TimeOfDay == nil {
			return &ConfigurationError{ScheduleID: s.ID, Reason: "weekly schedule requires a time of day"}
		}
	case FrequencyDaily:
		// TimeOfDay is optional for daily schedules; without it the
		// schedule degenerates to a fixed 24h interval from observation.
	}
	return nil
}

// ConfigurationError reports a schedule whose frequency-specific fields are
// missing or invalid for its declared frequency. The engine treats it as a
// warning and falls back; it is a hard error only at construction time.
type ConfigurationError struct {
	ScheduleID int64
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("schedule %d misconfigured: %s", e.ScheduleID, e.Reason)
}

// IsConfigurationError reports whether err is a schedule configuration error.
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}
