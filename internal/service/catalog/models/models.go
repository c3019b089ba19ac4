package models

import (
	"errors"
	"time"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
	"github.com/igestaos-eng/barbearia-inicio/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается при некорректном дне недели
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time value")
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date value")
)

// Request модели

// WeeklyScheduleDay один день недельного шаблона
type WeeklyScheduleDay struct {
	DayOfWeek    int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "19:00"
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// UpdateScheduleRequest запрос на замену недельного шаблона барбера
type UpdateScheduleRequest struct {
	UserID int64               `json:"userId"`
	Days   []WeeklyScheduleDay `json:"days"`
}

// ToDomainHours конвертирует request в domain расписание
func (r *UpdateScheduleRequest) ToDomainHours(barberID int64) ([]domain.WorkingHour, error) {
	hours := make([]domain.WorkingHour, 0, len(r.Days))

	for _, d := range r.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}

		start, err := types.NewTimeStringFromString(d.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		end, err := types.NewTimeStringFromString(d.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}

		hours = append(hours, domain.WorkingHour{
			BarberID:     barberID,
			DayOfWeek:    time.Weekday(d.DayOfWeek),
			StartTime:    start,
			EndTime:      end,
			IsWorkingDay: d.IsWorkingDay,
		})
	}

	return hours, nil
}

// OverrideWindow одно окно переопределения на дату
type OverrideWindow struct {
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "14:00"
	IsAvailable bool   `json:"isAvailable"`
}

// SetOverrideRequest запрос на замену переопределений расписания на дату
// Пустой список окон делает дату выходным днём
type SetOverrideRequest struct {
	UserID  int64            `json:"userId"`
	Date    string           `json:"date"` // "2025-10-15"
	Windows []OverrideWindow `json:"windows"`
}

// ToDomainOverrides конвертирует request в domain переопределения
func (r *SetOverrideRequest) ToDomainOverrides(barberID int64) ([]domain.ScheduleOverride, time.Time, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, time.Time{}, ErrInvalidDate
	}

	overrides := make([]domain.ScheduleOverride, 0, len(r.Windows))
	for _, w := range r.Windows {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, time.Time{}, ErrInvalidTime
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, time.Time{}, ErrInvalidTime
		}

		overrides = append(overrides, domain.ScheduleOverride{
			BarberID:    barberID,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: w.IsAvailable,
		})
	}

	return overrides, date, nil
}

// Response модели

// BarberResponse ответ с данными барбера
type BarberResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Specialization  *string `json:"specialization,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	ExperienceYears int     `json:"experienceYears"`
	Rating          float64 `json:"rating"`
}

// BarberListResponse ответ со списком барберов
type BarberListResponse struct {
	Barbers []*BarberResponse `json:"barbers"`
	Total   int               `json:"total"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// ScheduleDayResponse один день недельного шаблона в ответе
type ScheduleDayResponse struct {
	DayOfWeek    int    `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// ScheduleResponse недельный шаблон барбера
type ScheduleResponse struct {
	BarberID int64                  `json:"barberId"`
	Days     []*ScheduleDayResponse `json:"days"`
}

// OverrideResponse действующие окна барбера на дату после переопределения
type OverrideResponse struct {
	BarberID int64             `json:"barberId"`
	Date     string            `json:"date"`
	Windows  []*OverrideWindow `json:"windows"`
}

// FromDomainWindows конвертирует рабочие окна на дату в response
func FromDomainWindows(barberID int64, date time.Time, windows []domain.WorkingWindow) *OverrideResponse {
	items := make([]*OverrideWindow, 0, len(windows))
	for _, w := range windows {
		items = append(items, &OverrideWindow{
			StartTime:   w.StartTime.String(),
			EndTime:     w.EndTime.String(),
			IsAvailable: w.IsAvailable,
		})
	}
	return &OverrideResponse{
		BarberID: barberID,
		Date:     date.Format(domain.DateFormat),
		Windows:  items,
	}
}

// Конвертация domain -> response

// FromDomainBarber конвертирует domain барбера в response
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	return &BarberResponse{
		ID:              b.ID,
		Name:            b.Name,
		Specialization:  b.Specialization,
		Bio:             b.Bio,
		ExperienceYears: b.ExperienceYears,
		Rating:          b.Rating,
	}
}

// FromDomainBarberList конвертирует список domain барберов в response
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	items := make([]*BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		items = append(items, FromDomainBarber(b))
	}
	return &BarberListResponse{Barbers: items, Total: len(items)}
}

// FromDomainService конвертирует domain услугу в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

// FromDomainServiceList конвертирует список domain услуг в response
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	items := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, FromDomainService(s))
	}
	return &ServiceListResponse{Services: items, Total: len(items)}
}

// FromDomainSchedule конвертирует недельный шаблон в response
func FromDomainSchedule(barberID int64, hours []domain.WorkingHour) *ScheduleResponse {
	days := make([]*ScheduleDayResponse, 0, len(hours))
	for _, h := range hours {
		days = append(days, &ScheduleDayResponse{
			DayOfWeek:    int(h.DayOfWeek),
			StartTime:    h.StartTime.String(),
			EndTime:      h.EndTime.String(),
			IsWorkingDay: h.IsWorkingDay,
		})
	}
	return &ScheduleResponse{BarberID: barberID, Days: days}
}
