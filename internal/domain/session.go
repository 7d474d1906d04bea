package domain

import "time"

// DayLayout is the calendar-day format used for session keys.
const DayLayout = "2006-01-02"

// Day is a calendar day in DayLayout form. It is the aggregation key for
// reading sessions: every session belongs to exactly one day.
type Day string

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay parses a DayLayout string.
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", err
	}
	return Day(s), nil
}

// Valid reports whether d is a well-formed day.
func (d Day) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// In returns midnight of d in loc. An invalid day yields the zero time.
func (d Day) In(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(DayLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	t := d.In(time.UTC)
	if t.IsZero() {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// String implements fmt.Stringer.
func (d Day) String() string {
	return string(d)
}

// ReadingSession aggregates the pages read in one book on one day.
// A book holds at most one session per day.
//
// TimeSpent, Location and Mood are optional reader annotations. The server
// never sets them but keeps them intact across load and save.
type ReadingSession struct {
	Timestamp time.Time `json:"timestamp"` // last update that contributed pages
	Date      Day       `json:"date"`
	PagesRead int       `json:"pagesRead"`
	TimeSpent int       `json:"timeSpent,omitempty"` // minutes
	Location  string    `json:"location,omitempty"`
	Mood      Mood      `json:"mood,omitempty"`
}

// Mood is how the reader felt during a session.
type Mood string

const (
	MoodGreat      Mood = "great"
	MoodGood       Mood = "good"
	MoodNeutral    Mood = "neutral"
	MoodDistracted Mood = "distracted"
	MoodTired      Mood = "tired"
)
