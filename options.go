package endpoint

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/dylanonelson/endpoint/internal/urltemplate"
)

// Option represents a configuration option
type Option func(*Endpoint)

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger Logger) Option {
	return func(e *Endpoint) {
		e.logger = logger
	}
}

// WithSimpleLogger logs request diagnostics to stderr at debug level
func WithSimpleLogger() Option {
	return func(e *Endpoint) {
		e.logger = NewSimpleLogger()
	}
}

// WithMetrics enables Prometheus metrics on the default registerer
func WithMetrics() Option {
	return func(e *Endpoint) {
		e.metrics = DefaultMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(e *Endpoint) {
		e.metrics = collector
	}
}

// WithTracerProvider sets the OpenTelemetry provider request spans are
// created with
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Endpoint) {
		e.tracerProvider = tp
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(e *Endpoint) {
		e.requestIDGen = gen
	}
}

// WithBaseContext sets the context requests run under. Requests are never
// cancelled by the endpoint itself; cancelling ctx is up to the caller.
func WithBaseContext(ctx context.Context) Option {
	return func(e *Endpoint) {
		e.baseCtx = ctx
	}
}

// Validate checks cfg and returns a *ConfigError listing every problem.
func (cfg Config) Validate() error {
	v := &validation{}

	cfg.validateName(v)
	cfg.validateURL(v)
	cfg.validateRequest(v)

	return v.err(cfg.Name)
}

// validateName validates the endpoint name
func (cfg Config) validateName(v *validation) {
	if strings.TrimSpace(cfg.Name) == "" {
		v.fail(ErrInvalidName, "name must be a non-empty string")
	}
}

// validateURL validates the URL template or function
func (cfg Config) validateURL(v *validation) {
	switch {
	case cfg.URL == "" && cfg.URLFunc == nil:
		v.fail(ErrInvalidURL, "one of url or urlFunc is required")
	case cfg.URL != "" && cfg.URLFunc != nil:
		v.fail(ErrInvalidURL, "url and urlFunc are mutually exclusive")
	case cfg.URL != "":
		if _, err := urltemplate.Parse(cfg.URL); err != nil {
			v.fail(ErrInvalidURL, fmt.Sprintf("url template: %v", err))
		}
	}
}

// validateRequest validates the request function
func (cfg Config) validateRequest(v *validation) {
	if cfg.Request == nil {
		v.fail(ErrMissingRequest, "request function is required")
	}
}

// validateOptions validates values set through options
func (e *Endpoint) validateOptions() error {
	v := &validation{}

	if e.logger == nil {
		v.fail(ErrInvalidOption, "logger cannot be nil")
	}
	if e.requestIDGen == nil {
		v.fail(ErrInvalidOption, "request ID generator cannot be nil")
	}
	if e.baseCtx == nil {
		v.fail(ErrInvalidOption, "base context cannot be nil")
	}
	if e.tracerProvider == nil {
		v.fail(ErrInvalidOption, "tracer provider cannot be nil")
	}

	return v.err(e.name)
}

type validation struct {
	problems []string
	causes   []error
}

func (v *validation) fail(cause error, problem string) {
	v.problems = append(v.problems, problem)
	v.causes = append(v.causes, cause)
}

func (v *validation) err(name string) error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ConfigError{
		Endpoint: name,
		Problems: v.problems,
		Cause:    joinErrors(v.causes),
	}
}
