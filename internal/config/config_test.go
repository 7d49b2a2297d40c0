package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGodotenvQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte(`DATA_PATH='/srv/orders "q3"'`), 0644))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, `/srv/orders "q3"`, env["DATA_PATH"])
}

// clearEnv unsets every key read by fromEnv for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_PATH", "LOGS_FOLDER", "RETURNLAG_DEFAULT_SPAN", "RETURNLAG_STALE_DAYS", "RETURNLAG_WORKERS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv("/opt/returnlag")
	require.NoError(t, err)

	assert.Equal(t, "/opt/returnlag", cfg.DataPath)
	assert.Equal(t, filepath.Join("/opt/returnlag", "logs"), cfg.LogDir)
	assert.Equal(t, 30, cfg.DefaultSpan)
	assert.Equal(t, 7, cfg.StaleDays)
	assert.Equal(t, 4, cfg.Workers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", "/data")
	t.Setenv("LOGS_FOLDER", "/var/log/returnlag")
	t.Setenv("RETURNLAG_DEFAULT_SPAN", "14")
	t.Setenv("RETURNLAG_STALE_DAYS", "3")
	t.Setenv("RETURNLAG_WORKERS", "0")

	cfg, err := fromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataPath)
	assert.Equal(t, "/var/log/returnlag", cfg.LogDir)
	assert.Equal(t, 14, cfg.DefaultSpan)
	assert.Equal(t, 3, cfg.StaleDays)
	assert.Equal(t, 1, cfg.Workers)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"SpanTooLarge", "RETURNLAG_DEFAULT_SPAN", "181"},
		{"SpanZero", "RETURNLAG_DEFAULT_SPAN", "0"},
		{"NegativeStale", "RETURNLAG_STALE_DAYS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := fromEnv("")
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_NonNumericFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETURNLAG_DEFAULT_SPAN", "thirty")

	cfg, err := fromEnv("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.DefaultSpan)
	assert.Equal(t, ".", cfg.DataPath)
}
