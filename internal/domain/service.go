package domain

import "time"

// Service represents a bookable service (haircut, beard trim, ...)
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	Popularity      int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidDuration returns true when the duration fits business bounds
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDurationMinutes &&
		s.DurationMinutes <= MaxServiceDurationMinutes
}
