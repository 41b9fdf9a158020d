// Package links builds Navigator deep links for API clients.
package links

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/navigatorlink/navigatorlink/pkg/navigator"
)

const instrumentationName = "github.com/navigatorlink/navigatorlink/internal/links"

// ErrUnknownEncoding indicates a request named an encoding that does not exist.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ServiceConfig holds configuration for the link service.
type ServiceConfig struct {
	// Product is the deep link scheme (default: navigator.DefaultProduct).
	Product string

	// DefaultEncoding is used when a request names none (default: query).
	DefaultEncoding string

	// CallbackURL and CallbackPrompt are used when a request leaves them out.
	CallbackURL    string
	CallbackPrompt string

	// Logger for service operations.
	Logger zerolog.Logger

	// Tracer and Meter default to the global OpenTelemetry providers.
	Tracer trace.Tracer
	Meter  metric.Meter
}

// Input describes one link to build.
type Input struct {
	Stops   []navigator.Location
	Start   navigator.Location
	Options []navigator.Option

	// CallbackURL and CallbackPrompt override the service defaults when non-nil.
	CallbackURL    *string
	CallbackPrompt *string

	// Encoding is "query", "payload" or empty for the service default.
	Encoding string
}

// Link is a successfully built deep link.
type Link struct {
	ID          string
	URL         string
	Encoding    string
	Status      navigator.Status
	GeneratedAt time.Time
}

// BuildError reports a link that could not be built.
type BuildError struct {
	Encoding string
	Status   navigator.Status
	Err      error
}

func (e *BuildError) Error() string {
	return string(e.Status) + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Service builds deep links with per-request encoder selection.
type Service struct {
	product         string
	defaultEncoding string
	callbackURL     string
	callbackPrompt  string
	logger          zerolog.Logger
	tracer          trace.Tracer

	linksBuilt metric.Int64Counter
	linkStops  metric.Int64Histogram
	linkLength metric.Int64Histogram
}

// NewService creates a link service. It fails only if metric instruments cannot be created.
func NewService(cfg ServiceConfig) (*Service, error) {
	product := cfg.Product
	if product == "" {
		product = navigator.DefaultProduct
	}

	defaultEncoding := cfg.DefaultEncoding
	if defaultEncoding == "" {
		defaultEncoding = navigator.QueryEncoding
	}
	if _, ok := navigator.EncoderByName(defaultEncoding); !ok {
		return nil, ErrUnknownEncoding
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}

	meter := cfg.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	linksBuilt, err := meter.Int64Counter(
		"navigator.links.built",
		metric.WithDescription("Number of deep link builds by encoding and status"),
		metric.WithUnit("{link}"),
	)
	if err != nil {
		return nil, err
	}

	linkStops, err := meter.Int64Histogram(
		"navigator.link.stops",
		metric.WithDescription("Number of stops per deep link build"),
		metric.WithUnit("{stop}"),
	)
	if err != nil {
		return nil, err
	}

	linkLength, err := meter.Int64Histogram(
		"navigator.link.length",
		metric.WithDescription("Length of built deep links"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		product:         product,
		defaultEncoding: defaultEncoding,
		callbackURL:     cfg.CallbackURL,
		callbackPrompt:  cfg.CallbackPrompt,
		logger:          cfg.Logger,
		tracer:          tracer,
		linksBuilt:      linksBuilt,
		linkStops:       linkStops,
		linkLength:      linkLength,
	}, nil
}

// DefaultEncoding returns the encoding used when a request names none.
func (s *Service) DefaultEncoding() string {
	return s.defaultEncoding
}

// Build creates a deep link for in.
// Failures are returned as *BuildError wrapping navigator.ErrNoStops or navigator.ErrPayload,
// or ErrUnknownEncoding.
func (s *Service) Build(ctx context.Context, in Input) (*Link, error) {
	encoding := in.Encoding
	if encoding == "" {
		encoding = s.defaultEncoding
	}

	encoder, ok := navigator.EncoderByName(encoding)
	if !ok {
		return nil, ErrUnknownEncoding
	}

	ctx, span := s.tracer.Start(ctx, "links.Build",
		trace.WithAttributes(
			attribute.String("navigator.encoding", encoding),
			attribute.Int("navigator.stops", len(in.Stops)),
		),
	)
	defer span.End()

	builder := navigator.New(navigator.Config{
		CallbackURL:    s.callbackURL,
		CallbackPrompt: s.callbackPrompt,
		Encoder:        encoder,
		Product:        s.product,
		Logger:         s.logger,
	})
	if in.CallbackURL != nil {
		builder.SetCallbackURL(*in.CallbackURL)
	}
	if in.CallbackPrompt != nil {
		builder.SetCallbackPrompt(*in.CallbackPrompt)
	}
	builder.SetStart(in.Start)
	for _, stop := range in.Stops {
		builder.AddStop(stop)
	}
	builder.SetOptions(in.Options...)

	url, err := builder.Build()
	status := builder.LastStatus()

	attrs := metric.WithAttributes(
		attribute.String("navigator.encoding", encoding),
		attribute.String("navigator.status", string(status)),
	)
	s.linksBuilt.Add(ctx, 1, attrs)
	s.linkStops.Record(ctx, int64(len(in.Stops)), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(status))
		s.logger.Warn().
			Str("encoding", encoding).
			Str("status", string(status)).
			Int("stops", len(in.Stops)).
			Msg("deep link build failed")
		return nil, &BuildError{Encoding: encoding, Status: status, Err: err}
	}

	s.linkLength.Record(ctx, int64(len(url)), attrs)

	link := &Link{
		ID:          "lnk_" + uuid.New().String()[:12],
		URL:         url,
		Encoding:    encoding,
		Status:      status,
		GeneratedAt: time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("navigator.link_id", link.ID))

	s.logger.Debug().
		Str("link_id", link.ID).
		Str("encoding", encoding).
		Int("stops", len(in.Stops)).
		Int("length", len(url)).
		Msg("deep link built")

	return link, nil
}
