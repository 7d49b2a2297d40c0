package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesBothSinks(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	require.NoError(t, Setup(false, &console, dir))
	log.Info().Str("path", "orders.csv").Msg("Loaded orders")
	log.Debug().Msg("hidden at info level")

	assert.Contains(t, console.String(), "Loaded orders")
	assert.NotContains(t, console.String(), "hidden at info level")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"path":"orders.csv"`)
}

func TestSetup_Verbose(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, Setup(true, &console, t.TempDir()))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Msg("visible")
	assert.Contains(t, console.String(), "visible")
}

func TestSetup_UnusableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := Setup(false, &bytes.Buffer{}, filepath.Join(file, "logs"))
	assert.Error(t, err)
}

func TestDir_FromEnvironment(t *testing.T) {
	t.Setenv("LOGS_FOLDER", "/var/log/returnlag")
	assert.Equal(t, "/var/log/returnlag", Dir())
}
