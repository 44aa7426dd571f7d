package service

import (
	"bindays-backend/internal/assert"
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/internal/components/telemetry"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	report_service_request_id  = "service.request-id"
	report_service_bad_request = "service.bad-request"
	report_service_fetch       = "service.fetch"
	report_service_encode      = "service.encode"
)

const requestIdHeader = "X-Request-Id"

// RandomAPI is an abstraction over any code that generates random values.
type RandomAPI interface {
	RequestId() (string, error)
}

type defaultRandomAPI struct{}

func (defaultRandomAPI) RequestId() (string, error) {
	return random.String(16)
}

// SourceFactory creates a Source for a property, a returned error means the
// postcode or uprn is invalid.
type SourceFactory func(postcode, uprn string) (collection.Source, error)

// Service serves the collection schedules of properties over http. Every
// request fetches with a fresh Source.
type Service struct {
	sources SourceFactory
	rand    RandomAPI
	clock   chrono.API
	tel     telemetry.API
	timeout time.Duration
}

type serviceConfig struct {
	rand    RandomAPI
	clock   chrono.API
	tel     telemetry.API
	timeout time.Duration
}

type Option func(cfg *serviceConfig)

func WithCustomRandomAPI(rand RandomAPI) Option {
	return func(cfg *serviceConfig) {
		cfg.rand = rand
	}
}

func WithCustomTelemetryAPI(tel telemetry.API) Option {
	return func(cfg *serviceConfig) {
		cfg.tel = tel
	}
}

func WithClock(clock chrono.API) Option {
	return func(cfg *serviceConfig) {
		cfg.clock = clock
	}
}

// WithFetchTimeout bounds how long a single request may spend fetching.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(cfg *serviceConfig) {
		cfg.timeout = timeout
	}
}

func NewService(sources SourceFactory, options ...Option) (Service, error) {
	assert.NotNil(sources, "sources")

	cfg := serviceConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	s := Service{
		sources: sources,
		rand:    defaultRandomAPI{},
		clock:   cfg.clock,
		tel:     telemetry.SlogAPI{},
		timeout: time.Minute,
	}
	if cfg.rand != nil {
		s.rand = cfg.rand
	}
	if cfg.tel != nil {
		s.tel = cfg.tel
	}
	if cfg.timeout > 0 {
		s.timeout = cfg.timeout
	}
	if s.clock == nil {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return Service{}, err
		}
		s.clock = clock
	}
	s.tel = telemetry.NewScopedAPI("service", s.tel)

	return s, nil
}

// Handler returns the routes of the service, instrumented with otel.
func (s Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/collections", s.getCollections)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain")
		w.Write([]byte("ok"))
	})
	return otelhttp.NewHandler(s.withRequestId(mux), "bindays")
}

func (s Service) withRequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.rand.RequestId()
		if err != nil {
			s.tel.ReportBroken(report_service_request_id, err)
		} else {
			w.Header().Set(requestIdHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

type collectionJson struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

type collectionsResponse struct {
	Source      string           `json:"source"`
	Collections []collectionJson `json:"collections"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s Service) writeJson(w http.ResponseWriter, status int, value any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		s.tel.ReportWarning(report_service_encode, err)
	}
}

func (s Service) getCollections(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	postcode := query.Get("postcode")
	uprn := query.Get("uprn")
	if postcode == "" || uprn == "" {
		s.writeJson(w, http.StatusBadRequest, errorResponse{Error: "postcode and uprn are required"})
		return
	}

	source, err := s.sources(postcode, uprn)
	if err != nil {
		s.tel.ReportDebug(report_service_bad_request, err)
		s.writeJson(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	events, err := source.Fetch(ctx)
	if err != nil {
		s.tel.ReportWarning(report_service_fetch, err)
		s.writeJson(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if typ := query.Get("type"); typ != "" {
		resolved, ok := collection.ResolveType(events, typ)
		if !ok {
			events = nil
		} else {
			events = collection.OfType(events, resolved)
		}
	}
	if query.Get("upcoming") == "true" {
		events = collection.Upcoming(events, s.clock.Now())
	}

	res := collectionsResponse{
		Source:      source.Info().Title,
		Collections: make([]collectionJson, len(events)),
	}
	for i, e := range events {
		res.Collections[i] = collectionJson{
			Date: e.Date.Format(time.DateOnly),
			Type: e.Type,
			Icon: e.Icon,
		}
	}
	s.writeJson(w, http.StatusOK, res)
}
