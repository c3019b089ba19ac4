package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается, когда статус записи не допускает перенос
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrTimeInPast возвращается, когда новое время уже прошло
	ErrTimeInPast = errors.New("reschedule_appointment: scheduled time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочее окно
	ErrOutsideWorkingHours = errors.New("reschedule_appointment: slot is outside working hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другой записью
	ErrSlotConflict = errors.New("reschedule_appointment: slot conflicts with another appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
