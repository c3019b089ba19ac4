package domain

// Scheduling defaults; overridable via config.toml [booking]
const (
	DefaultSlotStepMinutes        = 15
	DefaultServiceDurationMinutes = 30
	DefaultMaxAdvanceDays         = 30
	DefaultReminderHours          = 24
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых запись занимает календарь барбера
// Используются при подсчёте конфликтов и доступных слотов
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses статусы, из которых запись больше не меняется
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
