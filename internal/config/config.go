package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Settings is the process-wide configuration. Load builds it once at startup
// from environment variables over compiled-in defaults; it is read-only after.
type Settings struct {
	ProjectName string `koanf:"project_name" validate:"required"`
	Version     string `koanf:"version" validate:"required"`

	Env   string `koanf:"env" validate:"required"`
	Debug bool   `koanf:"debug"`

	Host    string `koanf:"host" validate:"required"`
	Port    int    `koanf:"port" validate:"gt=0,lte=65535"`
	Workers int    `koanf:"workers" validate:"gte=1"`

	APIV1Prefix string `koanf:"api_v1_prefix" validate:"required,startswith=/"`

	// CORSOrigins is filled from BACKEND_CORS_ORIGINS by normalizeCORSOrigins,
	// not by koanf unmarshalling, so the comma-split rule applies.
	CORSOrigins []string `koanf:"-" validate:"required,min=1"`

	LogLevel  string `koanf:"log_level" validate:"required"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=json text"`

	Observability *ObservabilityConfig `koanf:"-"`
}

func defaults() Settings {
	return Settings{
		ProjectName: "alya.io",
		Version:     "0.1.0",
		Env:         "development",
		Debug:       true,
		Host:        "0.0.0.0",
		Port:        8000,
		Workers:     1,
		APIV1Prefix: "/api/v1",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:8000"},
		LogLevel:    "INFO",
		LogFormat:   "json",
	}
}

// Load reads settings from the environment using koanf. Variable names match
// the field names (PORT, HOST, ENV, DEBUG, WORKERS, PROJECT_NAME, VERSION,
// API_V1_PREFIX, BACKEND_CORS_ORIGINS, LOG_LEVEL, LOG_FORMAT). Any error here
// must abort startup.
func Load() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	s := defaults()
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if raw := k.Get("backend_cors_origins"); raw != nil {
		origins, err := normalizeCORSOrigins(raw)
		if err != nil {
			return nil, err
		}
		s.CORSOrigins = origins
	}

	obs := DefaultObservabilityConfig()
	if key := k.String("new_relic_license_key"); key != "" {
		obs.LicenseKey = key
		obs.Enabled = true
	}
	obs.ServiceName = s.ProjectName
	obs.Environment = s.Env
	if err := obs.Validate(); err != nil {
		return nil, fmt.Errorf("observability settings: %w", err)
	}
	s.Observability = obs

	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}
	return &s, nil
}

// normalizeCORSOrigins coerces BACKEND_CORS_ORIGINS into a list of origins.
// A plain string is split on commas with whitespace trimmed, a bracketed
// string is parsed as a JSON array, and an existing sequence passes through
// unchanged. Any other shape is a startup error.
func normalizeCORSOrigins(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		if strings.HasPrefix(v, "[") {
			var origins []string
			if err := json.Unmarshal([]byte(v), &origins); err != nil {
				return nil, fmt.Errorf("invalid BACKEND_CORS_ORIGINS %q: %w", v, err)
			}
			return origins, nil
		}
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		return origins, nil
	case []string:
		return v, nil
	case []any:
		origins := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("invalid BACKEND_CORS_ORIGINS entry %v", item)
			}
			origins = append(origins, s)
		}
		return origins, nil
	default:
		return nil, fmt.Errorf("invalid BACKEND_CORS_ORIGINS value %v", raw)
	}
}

// Addr is the host:port the listener binds to.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDevelopment reports whether the service runs in development mode.
func (s *Settings) IsDevelopment() bool {
	return s.Env == "development"
}
