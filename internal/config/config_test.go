package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db.campus.local"
dbname = "bookings"

[booking]
slot_minutes = 15
time_zone = "Europe/Moscow"
sweep_interval = "2m"

[events]
enabled = true
exchange = "campus.reservations"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db.campus.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15, cfg.Booking.SlotMinutes)
	assert.Equal(t, 2*time.Minute, cfg.Booking.SweepInterval)
	assert.Equal(t, 5, cfg.Booking.BookingNumberAttempts)
	assert.Equal(t, "campus.reservations", cfg.Events.Exchange)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("FACILITY_DB_HOST", "10.0.0.5")
	t.Setenv("FACILITY_BOOKING_SLOT_MINUTES", "60")
	t.Setenv("FACILITY_METRICS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Database.Host)
	assert.Equal(t, 60, cfg.Booking.SlotMinutes)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "bookings", cfg.Database.DBName)
}

func TestLoad_DotEnvNextToFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"),
		[]byte("FACILITY_USER_SERVICE_URL=http://users.campus.local\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FACILITY_USER_SERVICE_URL") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://users.campus.local", cfg.UserService.URL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[booking]\nslot_minutes = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "[booking]\ntime_zone = \"Mars/Olympus\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("FACILITY_SERVER_HTTP_PORT", "not-a-number")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrEnvOverride)
}

func TestDSN(t *testing.T) {
	db := Default().Database
	db.Password = "secret"

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=facility_booking sslmode=disable", db.DSN())
}
