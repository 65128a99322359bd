package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	minutesPerDay = 24 * 60
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, httperr.Errorf(httperr.CodeInvalidTimeFormat, fmt.Sprintf("invalid time %02d:%02d", hour, minute))
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses "HH:MM" on a 24h clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, httperr.Errorf(httperr.CodeInvalidTimeFormat, fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ComputeEndTime adds durationMinutes to start. The day closes at midnight:
// an end at or past 24:00 is rejected, including one landing exactly on it.
func ComputeEndTime(start TimeOfDay, durationMinutes int) (TimeOfDay, error) {
	if start < 0 || start >= minutesPerDay {
		return 0, httperr.Errorf(httperr.CodeInvalidTimeFormat, "start time out of range")
	}
	if durationMinutes <= 0 {
		return 0, httperr.Errorf(httperr.CodeInvalidTimeFormat, "duration must be positive")
	}
	end := int(start) + durationMinutes
	if end >= minutesPerDay {
		return 0, httperr.Errorf(httperr.CodeInvalidTimeFormat, "appointment must end before midnight")
	}
	return TimeOfDay(end), nil
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses a calendar date "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, httperr.Errorf(httperr.CodeInvalidTimeFormat, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// StartInstant places date + start on the salon's clock.
func StartInstant(date string, start string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := ParseTimeOfDay(start)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

// Slot is a [Start, End) interval on one calendar day.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (s Slot) Overlaps(other Slot) bool {
	return IntervalsOverlap(s.Start, s.End, other.Start, other.End)
}

// SlotOf reads the stored interval of an appointment.
func SlotOf(startTime, endTime string) (Slot, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: start, End: end}, nil
}
