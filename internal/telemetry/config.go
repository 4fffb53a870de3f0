// Package telemetry provides OpenTelemetry instrumentation for ChartScope.
// Metrics are exposed through a Prometheus registry for the operational
// HTTP surface and optionally pushed over OTLP; tracing is OTLP-only.
package telemetry

import (
	"errors"
	"fmt"
)

const (
	// DefaultServiceName is the default service name for telemetry.
	DefaultServiceName = "chartscope"

	// DefaultSampling is the default trace sampling rate (5%).
	DefaultSampling = 0.05
)

// Config represents the root telemetry configuration.
type Config struct {
	// Enabled controls whether telemetry is enabled globally.
	// When false, no telemetry providers are initialized.
	Enabled bool `yaml:"enabled"`

	// ServiceName identifies the service in exported telemetry.
	// Defaults to "chartscope" if not specified.
	ServiceName string `yaml:"service_name,omitempty"`

	// ServiceVersion is the version reported with telemetry.
	// Defaults to "unknown" if not specified.
	ServiceVersion string `yaml:"service_version,omitempty"`

	// Endpoint is the OTLP collector endpoint in "host:port" form.
	// When empty, nothing is pushed over OTLP: metrics are still served
	// from the Prometheus registry, and tracing stays disabled.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Insecure allows HTTP connections to the collector instead of HTTPS.
	// Should only be true for development environments.
	Insecure bool `yaml:"insecure,omitempty"`

	// Tracing contains tracing-specific configuration.
	Tracing *TracingConfig `yaml:"tracing,omitempty"`

	// Metrics contains metrics-specific configuration.
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// TracingConfig defines tracing-specific configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is enabled. Tracing additionally
	// requires a configured OTLP endpoint.
	Enabled bool `yaml:"enabled"`

	// Sampling controls the trace sampling rate (0.0 to 1.0).
	// Defaults to DefaultSampling when unset.
	Sampling float64 `yaml:"sampling,omitempty"`
}

// MetricsConfig defines metrics-specific configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is enabled.
	Enabled bool `yaml:"enabled"`
}

// GetServiceName returns the service name, using the default if not
// specified.
func (c *Config) GetServiceName() string {
	if c.ServiceName == "" {
		return DefaultServiceName
	}
	return c.ServiceName
}

// GetServiceVersion returns the service version, using "unknown" if not
// specified.
func (c *Config) GetServiceVersion() string {
	if c.ServiceVersion == "" {
		return "unknown"
	}
	return c.ServiceVersion
}

// GetSampling returns the sampling ratio, defaulting when unset. A
// configured 0 cannot be distinguished from unset in YAML, so 0 means
// "use default"; validation runs before this is consulted.
func (c *TracingConfig) GetSampling() float64 {
	if c.Sampling == 0.0 {
		return DefaultSampling
	}
	return c.Sampling
}

// Validate validates the telemetry configuration.
func (c *Config) Validate() error {
	if c == nil || !c.Enabled {
		return nil
	}

	var errs []error

	if c.Tracing != nil {
		if err := c.Tracing.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
		if c.Tracing.Enabled && c.Endpoint == "" {
			errs = append(errs, errors.New("tracing: an OTLP endpoint is required"))
		}
	}

	return errors.Join(errs...)
}

// Validate validates the tracing configuration.
func (c *TracingConfig) Validate() error {
	if c == nil || !c.Enabled {
		return nil
	}

	if c.Sampling < 0 || c.Sampling > 1.0 {
		return fmt.Errorf("sampling must be between 0.0 and 1.0, got %f", c.Sampling)
	}
	return nil
}
