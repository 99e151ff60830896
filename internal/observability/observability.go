package observability

import (
	"github.com/alya-io/alya/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewApplication starts the New Relic agent when the settings enable it.
// Returns nil with no error when telemetry is disabled.
func NewApplication(cfg *config.ObservabilityConfig) (*newrelic.Application, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	return newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigEnabled(true),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"env": cfg.Environment}
		},
	)
}
