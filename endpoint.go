package endpoint

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dylanonelson/endpoint/internal/urltemplate"
)

// Config describes one endpoint.
type Config struct {
	// Name prefixes both action tags verbatim: "{Name}/MAKE_REQUEST" and
	// "{Name}/INGEST_RESPONSE".
	Name string

	// URL is a template with ":param" placeholders, e.g.
	// "http://localhost:1111/api/:id". Exactly one of URL and URLFunc must be
	// set.
	URL string
	// URLFunc builds the URL from the request parameters.
	URLFunc URLFunc

	// Request performs the request. Required.
	Request RequestFunc

	// Resolver maps parameters to the state key. Defaults to DefaultResolver.
	Resolver Resolver
	// RootSelector locates the endpoint's state in the root state. Defaults
	// to treating the root as the endpoint's State.
	RootSelector RootSelector
}

// Endpoint bundles the action creators, middleware, reducer and selectors
// for one parametrized request. It is safe for concurrent use.
type Endpoint struct {
	ActionCreators ActionCreators
	Selectors      *Selectors

	name           string
	request        RequestFunc
	baseCtx        context.Context
	logger         Logger
	metrics        *MetricsCollector
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	requestIDGen   func() string
}

// New validates cfg and builds the endpoint. Configuration problems are
// reported as a *ConfigError.
func New(cfg Config, options ...Option) (*Endpoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolve := cfg.Resolver
	if resolve == nil {
		resolve = DefaultResolver
	}
	root := cfg.RootSelector
	if root == nil {
		root = identityRoot
	}
	buildURL := cfg.URLFunc
	if buildURL == nil {
		tmpl := urltemplate.MustParse(cfg.URL)
		buildURL = func(params Params) string {
			return tmpl.Expand(params)
		}
	}

	e := &Endpoint{
		ActionCreators: newActionCreators(cfg.Name, resolve, buildURL),
		name:           cfg.Name,
		request:        cfg.Request,
		baseCtx:        context.Background(),
		logger:         NopLogger(),
		metrics:        nil,
		tracerProvider: otel.GetTracerProvider(),
		requestIDGen:   uuid.NewString,
	}

	for _, option := range options {
		option(e)
	}

	if err := e.validateOptions(); err != nil {
		return nil, err
	}

	e.tracer = e.tracerProvider.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version))
	e.Selectors = newSelectors(resolve, root, func(size int) {
		e.metrics.RecordSelectorCacheSize(e.name, size)
	})

	return e, nil
}

// MustNew is like New but panics on error. It suits package-level endpoint
// variables.
func MustNew(cfg Config, options ...Option) *Endpoint {
	e, err := New(cfg, options...)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the configured name.
func (e *Endpoint) Name() string {
	return e.name
}

// Request is shorthand for e.ActionCreators.Request.Create(params).
func (e *Endpoint) Request(params Params) RequestAction {
	return e.ActionCreators.Request.Create(params)
}

// Ingest is shorthand for e.ActionCreators.Ingest.Create(payload, meta).
func (e *Endpoint) Ingest(payload any, meta Meta) IngestAction {
	return e.ActionCreators.Ingest.Create(payload, meta)
}

// Selector returns the record params resolve to within root, or nil.
func (e *Endpoint) Selector(root any, params Params) *KeyRecord {
	return e.Selectors.For(params).Record(root)
}
