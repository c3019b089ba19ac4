package interval

import "time"

// Interval is a half-open time interval [Start, End).
// Two intervals that merely touch at an endpoint do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an interval from explicit start and end
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// FromDuration creates an interval [start, start+minutes)
func FromDuration(start time.Time, minutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

// Overlaps reports whether i and other share any instant.
// Standard half-open check: i.Start < other.End && i.End > other.Start.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports whether t falls inside the interval (start inclusive, end exclusive)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Minutes returns the interval length in whole minutes
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// IsValid reports whether the interval has positive length
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}
