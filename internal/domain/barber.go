package domain

import "time"

// Barber represents a barber offering services in the shop
type Barber struct {
	ID              int64
	Name            string
	Specialization  *string
	Bio             *string
	ExperienceYears int
	Rating          float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Customer represents a booking customer
type Customer struct {
	ID                int64
	Name              string
	Phone             string
	Email             *string
	TotalAppointments int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
