package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "barbearia"
`

func TestLoad_BookingDefaults(t *testing.T) {
	// Опущенная секция [booking] получает значения по умолчанию
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSlotStepMinutes, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, cfg.Booking.DefaultDurationMinutes)
	assert.Equal(t, domain.DefaultMaxAdvanceDays, cfg.Booking.MaxAdvanceDays)
	assert.Equal(t, domain.DefaultReminderHours, cfg.Booking.ReminderHours)
}

func TestLoad_BookingOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[booking]
slot_step_minutes = 20
default_duration_minutes = 45
max_advance_days = 14
reminder_hours = 12
`))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 45, cfg.Booking.DefaultDurationMinutes)
	assert.Equal(t, 14, cfg.Booking.MaxAdvanceDays)
	assert.Equal(t, 12, cfg.Booking.ReminderHours)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
http_port = 0

[database]
host = "localhost"
dbname = "barbearia"
`))
	assert.ErrorContains(t, err, "server.http_port")

	_, err = Load(writeConfig(t, minimalConfig+`
[booking]
slot_step_minutes = -5
`))
	assert.ErrorContains(t, err, "slot_step_minutes")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
