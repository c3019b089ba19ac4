package domain

import (
	"time"

	"github.com/igestaos-eng/barbearia-inicio/pkg/types"
)

// WorkingWindow is a span of a day during which a barber can be booked.
// Either a recurring weekday window (working_hours) or a date-specific
// override (schedule_overrides); the storage layer resolves which applies.
// Multiple non-overlapping windows per day are allowed (split shifts).
type WorkingWindow struct {
	BarberID    int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// IsValid returns true when the window has positive length
func (w WorkingWindow) IsValid() bool {
	return w.StartTime.IsBefore(w.EndTime)
}

// WorkingHour is one recurring weekly schedule row of a barber
type WorkingHour struct {
	ID           int64
	BarberID     int64
	DayOfWeek    time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsWorkingDay bool
}

// Window converts the schedule row into a bookable window
func (h WorkingHour) Window() WorkingWindow {
	return WorkingWindow{
		BarberID:    h.BarberID,
		StartTime:   h.StartTime,
		EndTime:     h.EndTime,
		IsAvailable: h.IsWorkingDay,
	}
}

// ScheduleOverride is a date-specific window that replaces the weekly
// schedule for its date (day off, extra shift, shortened day)
type ScheduleOverride struct {
	ID          int64
	BarberID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Window converts the override into a bookable window
func (o ScheduleOverride) Window() WorkingWindow {
	return WorkingWindow{
		BarberID:    o.BarberID,
		StartTime:   o.StartTime,
		EndTime:     o.EndTime,
		IsAvailable: o.IsAvailable,
	}
}
