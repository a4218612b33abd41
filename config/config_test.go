package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.DocumentTimeout)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.StrictPDFValidation)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "TDS_Challan_Extracted_Data.xlsx", cfg.ExportFilename)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DOCUMENT_TIMEOUT", "5s")
	t.Setenv("EXTRACT_WORKERS", "4")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("STRICT_PDF_VALIDATION", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := LoadConfig("")

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Second, cfg.DocumentTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.StrictPDFValidation)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigGuardsInvalidValues(t *testing.T) {
	t.Setenv("EXTRACT_WORKERS", "0")
	t.Setenv("DOCUMENT_TIMEOUT", "-1s")
	t.Setenv("MAX_UPLOAD_MB", "0")

	cfg := LoadConfig("")

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.DocumentTimeout)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "challan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("EXPORT_FILENAME: q1.xlsx\nLOG_LEVEL: debug\n"), 0o644))

	cfg := LoadConfig(path)

	assert.Equal(t, "q1.xlsx", cfg.ExportFilename)
	assert.Equal(t, "debug", cfg.LogLevel)
}
