package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API    APIConfig
	Export ExportConfig
}

// APIConfig holds everything needed to talk to the extraction service.
type APIConfig struct {
	BaseURL         string
	HealthTimeout   time.Duration
	ExtractTimeout  time.Duration
	ExcelTimeout    time.Duration
	ZipTimeout      time.Duration
	DownloadRetries int
	RetryDelay      time.Duration
}

// ExportConfig holds local export defaults.
type ExportConfig struct {
	OutputDir string
	SheetName string
}

// LoadConfig loads configuration from PERMITX_-prefixed environment
// variables, falling back to the documented defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("PERMITX")
	v.AutomaticEnv()

	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("health_timeout", 5*time.Second)
	v.SetDefault("extract_timeout", 60*time.Second)
	v.SetDefault("excel_timeout", 30*time.Second)
	v.SetDefault("zip_timeout", 60*time.Second)
	v.SetDefault("download_retries", 2)
	v.SetDefault("retry_delay", 2*time.Second)
	v.SetDefault("output_dir", ".")
	v.SetDefault("sheet_name", "Results")

	return &Config{
		API: APIConfig{
			BaseURL:         v.GetString("api_base_url"),
			HealthTimeout:   v.GetDuration("health_timeout"),
			ExtractTimeout:  v.GetDuration("extract_timeout"),
			ExcelTimeout:    v.GetDuration("excel_timeout"),
			ZipTimeout:      v.GetDuration("zip_timeout"),
			DownloadRetries: v.GetInt("download_retries"),
			RetryDelay:      v.GetDuration("retry_delay"),
		},
		Export: ExportConfig{
			OutputDir: v.GetString("output_dir"),
			SheetName: v.GetString("sheet_name"),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "PERMITX_API_BASE_URL is required", ErrInvalidInput)
	}
	if c.API.DownloadRetries < 0 {
		return NewAppError("CONFIG_ERROR", "PERMITX_DOWNLOAD_RETRIES must be >= 0", ErrInvalidInput)
	}
	if c.API.ExtractTimeout <= 0 {
		return NewAppError("CONFIG_ERROR", "PERMITX_EXTRACT_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
