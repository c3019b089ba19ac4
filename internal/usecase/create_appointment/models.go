package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	UserID      int64     // ID клиента (из X-User-ID)
	BarberID    int64     // ID барбера
	ServiceID   int64     // ID услуги
	ScheduledAt time.Time // Время начала записи
	Notes       *string   // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	CustomerID      int64     // ID клиента
	BarberID        int64     // ID барбера
	ServiceID       int64     // ID услуги
	ScheduledAt     time.Time // Время начала
	EndsAt          time.Time // Время окончания (исключительно)
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус записи
	Price           float64   // Зафиксированная цена услуги

	// Денормализованные данные для ответа клиенту
	BarberName  string // Имя барбера
	ServiceName string // Название услуги

	Notes     *string   // Заметки
	CreatedAt time.Time // Время создания
}
