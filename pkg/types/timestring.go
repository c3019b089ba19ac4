package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// timeLayout формат хранения времени суток
const timeLayout = "15:04"

// endOfDay конец последнего окна дня, time.Parse такое значение не принимает
const endOfDay = "24:00"

// TimeString represents a wall-clock time of day ("10:00") without a date.
// Used for working windows where only the local clock time matters.
type TimeString struct {
	hour   int
	minute int
	valid  bool
}

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString{hour: t.Hour(), minute: t.Minute(), valid: true}
}

// NewTimeStringFromString парсит строку вида "HH:MM"
// "24:00" допускается как конец последнего окна дня
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == endOfDay {
		return TimeString{hour: 24, valid: true}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{hour: t.Hour(), minute: t.Minute(), valid: true}, nil
}

// MustTimeString парсит строку и паникует при ошибке (для констант и тестов)
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// IsZero returns true for the zero value (no time set)
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что значение установлено и находится в допустимых границах
// "24:00" допускается как конец последнего окна дня
func (t TimeString) Validate() error {
	if !t.valid || t.hour < 0 || t.minute < 0 || t.minute > 59 {
		return ErrInvalidTimeString
	}
	if t.hour > 24 || (t.hour == 24 && t.minute != 0) {
		return ErrInvalidTimeString
	}
	return nil
}

// String returns the "HH:MM" representation
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// TotalMinutes returns minutes elapsed since midnight
func (t TimeString) TotalMinutes() int {
	return t.hour*60 + t.minute
}

// AddMinutes возвращает время, сдвинутое на minutes вперёд
// Возвращает ошибку при выходе за границы суток (рабочие окна не переходят через полночь)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total := t.TotalMinutes() + minutes
	if total < 0 || total > 24*60 {
		return TimeString{}, fmt.Errorf("%w: %s + %dm is out of day bounds", ErrInvalidTimeString, t, minutes)
	}
	// 24:00 допускается как конец последнего окна дня
	return TimeString{hour: total / 60, minute: total % 60, valid: true}, nil
}

// IsBefore returns true if t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.TotalMinutes() < other.TotalMinutes()
}

// IsAfter returns true if t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.TotalMinutes() > other.TotalMinutes()
}

// Equal returns true when both values represent the same clock time
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.TotalMinutes() == other.TotalMinutes()
}

// At anchors the clock time onto the given calendar date in its location
func (t TimeString) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

// Scan реализует sql.Scanner (поддерживает TIME и текстовые колонки)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres отдаёт TIME как "10:00:00"
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// MarshalJSON serializes as the "HH:MM" string
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses the "HH:MM" string form
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
