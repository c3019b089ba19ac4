package domain

import "time"

// Slot represents a bookable start interval offered to a customer.
// Value type: fully determined by its inputs, equality by (start, end).
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Equal returns true when both slots cover the same interval
func (s Slot) Equal(other Slot) bool {
	return s.StartTime.Equal(other.StartTime) && s.EndTime.Equal(other.EndTime)
}

// DurationMinutes returns the slot length in whole minutes
func (s Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
