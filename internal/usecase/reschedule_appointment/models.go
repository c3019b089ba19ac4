package reschedule_appointment

import "time"

// Request модель запроса на перенос записи
type Request struct {
	UserID        int64     // ID пользователя (из X-User-ID)
	AppointmentID int64     // ID переносимой записи
	ScheduledAt   time.Time // Новое время начала
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64     // ID записи
	CustomerID      int64     // ID клиента
	BarberID        int64     // ID барбера
	ServiceID       int64     // ID услуги
	ScheduledAt     time.Time // Новое время начала
	EndsAt          time.Time // Новое время окончания (исключительно)
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус записи
	PreviousStart   time.Time // Время начала до переноса
}
