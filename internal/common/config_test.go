package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.HealthTimeout)
	assert.Equal(t, 60*time.Second, cfg.API.ExtractTimeout)
	assert.Equal(t, 30*time.Second, cfg.API.ExcelTimeout)
	assert.Equal(t, 60*time.Second, cfg.API.ZipTimeout)
	assert.Equal(t, 2, cfg.API.DownloadRetries)
	assert.Equal(t, 2*time.Second, cfg.API.RetryDelay)
	assert.Equal(t, "Results", cfg.Export.SheetName)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PERMITX_API_BASE_URL", "http://extract.internal:9000")
	t.Setenv("PERMITX_EXTRACT_TIMEOUT", "90s")
	t.Setenv("PERMITX_DOWNLOAD_RETRIES", "5")

	cfg := LoadConfig()
	assert.Equal(t, "http://extract.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.API.ExtractTimeout)
	assert.Equal(t, 5, cfg.API.DownloadRetries)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.API.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.API.DownloadRetries = -1
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.API.ExtractTimeout = 0
	assert.Error(t, cfg.Validate())
}
