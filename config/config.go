package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort          string
	MaxUploadBytes      int64
	DocumentTimeout     time.Duration
	Workers             int
	StrictPDFValidation bool
	RateLimitPerSecond  float64
	RateLimitBurst      int
	CORSAllowedOrigins  []string
	LogLevel            string
	LogFormat           string
	ExportFilename      string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_UPLOAD_MB", 32)
	v.SetDefault("DOCUMENT_TIMEOUT", "30s")
	v.SetDefault("EXTRACT_WORKERS", 1)
	v.SetDefault("STRICT_PDF_VALIDATION", false)
	v.SetDefault("RATE_LIMIT_PER_SECOND", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("EXPORT_FILENAME", "TDS_Challan_Extracted_Data.xlsx")
}

// LoadConfig reads configuration from the environment and, when configFile is
// non-empty, from that file as well.
func LoadConfig(configFile string) *Config {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("config file not loaded, using env and defaults", "file", configFile, "error", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	workers := v.GetInt("EXTRACT_WORKERS")
	if workers < 1 {
		workers = 1
	}

	timeout := v.GetDuration("DOCUMENT_TIMEOUT")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	maxMB := v.GetInt64("MAX_UPLOAD_MB")
	if maxMB <= 0 {
		maxMB = 32
	}

	return &Config{
		ServerPort:          v.GetString("SERVER_PORT"),
		MaxUploadBytes:      maxMB << 20,
		DocumentTimeout:     timeout,
		Workers:             workers,
		StrictPDFValidation: v.GetBool("STRICT_PDF_VALIDATION"),
		RateLimitPerSecond:  v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		RateLimitBurst:      v.GetInt("RATE_LIMIT_BURST"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		ExportFilename:      v.GetString("EXPORT_FILENAME"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
