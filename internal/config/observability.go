package config

import "fmt"

// ObservabilityConfig controls the optional New Relic agent. The agent stays
// off unless a license key is supplied.
type ObservabilityConfig struct {
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`
	LicenseKey  string `koanf:"license_key"`
	Enabled     bool   `koanf:"enabled"`
}

// DefaultObservabilityConfig returns the disabled-agent defaults.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{Enabled: false}
}

// Validate checks that an enabled agent has a license key.
func (o *ObservabilityConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("observability config is nil")
	}
	if o.Enabled && o.LicenseKey == "" {
		return fmt.Errorf("observability enabled but no license key set")
	}
	return nil
}
