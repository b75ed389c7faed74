package schedule

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 0}
	wed := WeekdayWednesday
	bogus := Weekday("humpday")

	cases := []struct {
		name    string
		s       FeedingSchedule
		wantErr bool
	}{
		{"daily with time of day", FeedingSchedule{Frequency: FrequencyDaily, TimeOfDay: &tod}, false},
		{"daily without time of day", FeedingSchedule{Frequency: FrequencyDaily}, false},
		{"weekly complete", FeedingSchedule{Frequency: FrequencyWeekly, DayOfWeek: &wed, TimeOfDay: &tod}, false},
		{"weekly missing day", FeedingSchedule{Frequency: FrequencyWeekly, TimeOfDay: &tod}, true},
		{"weekly missing time", FeedingSchedule{Frequency: FrequencyWeekly, DayOfWeek: &wed}, true},
		{"weekly unknown day", FeedingSchedule{Frequency: FrequencyWeekly, DayOfWeek: &bogus, TimeOfDay: &tod}, true},
		{"interval positive", FeedingSchedule{Frequency: FrequencyEveryXHours, HoursInterval: 6}, false},
		{"interval zero", FeedingSchedule{Frequency: FrequencyEveryXHours}, true},
		{"interval negative", FeedingSchedule{Frequency: FrequencyEveryXHours, HoursInterval: -1}, true},
		{"unknown frequency", FeedingSchedule{Frequency: Frequency("hourly")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if tc.wantErr && !IsConfigurationError(err) {
				t.Fatalf("error %v is not a ConfigurationError", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNewTimeOfDay(t *testing.T) {
	if _, err := NewTimeOfDay(24, 0); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := NewTimeOfDay(-1, 0); err == nil {
		t.Fatal("expected error for hour -1")
	}
	if _, err := NewTimeOfDay(9, 60); err == nil {
		t.Fatal("expected error for minute 60")
	}
	tod, err := NewTimeOfDay(23, 59)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tod.String() != "23:59" {
		t.Fatalf("String() = %q, want 23:59", tod.String())
	}
}

func TestTimeOfDay_ScanAndValue(t *testing.T) {
	var tod TimeOfDay

	if err := tod.Scan("09:30:00"); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if tod.Hour != 9 || tod.Minute != 30 {
		t.Fatalf("Scan(string) = %v, want 09:30", tod)
	}

	if err := tod.Scan([]byte("18:05:00")); err != nil {
		t.Fatalf("Scan([]byte): %v", err)
	}
	if tod.Hour != 18 || tod.Minute != 5 {
		t.Fatalf("Scan([]byte) = %v, want 18:05", tod)
	}

	if err := tod.Scan(time.Date(2000, 1, 1, 7, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time): %v", err)
	}
	if tod.Hour != 7 || tod.Minute != 45 {
		t.Fatalf("Scan(time.Time) = %v, want 07:45", tod)
	}

	v, err := TimeOfDay{Hour: 7, Minute: 45}.Value()
	if err != nil {
		t.Fatalf("Value(): %v", err)
	}
	if v != "07:45:00" {
		t.Fatalf("Value() = %v, want 07:45:00", v)
	}

	if err := tod.Scan("not-a-time"); err == nil {
		t.Fatal("expected error scanning malformed value")
	}
	if err := tod.Scan(nil); err == nil {
		t.Fatal("expected error scanning NULL into a non-pointer TimeOfDay")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("06:15")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if tod.Hour != 6 || tod.Minute != 15 {
		t.Fatalf("ParseTimeOfDay = %v, want 06:15", tod)
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestWeekdayIndex(t *testing.T) {
	order := []Weekday{
		WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday,
	}
	for want, w := range order {
		got, ok := w.Index()
		if !ok {
			t.Fatalf("Index(%q) not ok", w)
		}
		if got != want {
			t.Fatalf("Index(%q) = %d, want %d", w, got, want)
		}
	}
	if _, ok := Weekday("xyz").Index(); ok {
		t.Fatal("Index of unknown weekday should not be ok")
	}
}
