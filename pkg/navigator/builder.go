package navigator

import (
	"errors"

	"github.com/rs/zerolog"
)

// DefaultProduct is the URL scheme registered by ArcGIS Navigator.
const DefaultProduct = "arcgis-navigator"

const paramPrefix = "://?"

// Status describes the outcome of the most recent Build call.
type Status string

// Build statuses.
const (
	StatusNone          Status = ""
	StatusOK            Status = "OK"
	StatusNoStops       Status = "No stops defined"
	StatusPayloadFailed Status = "Unable to build payload"
)

// Sentinel errors returned by Build.
var (
	// ErrNoStops indicates Build was called before any stop was added.
	ErrNoStops = errors.New("no stops defined")
	// ErrPayload indicates the encoder could not represent the route.
	ErrPayload = errors.New("unable to build payload")
)

// Config holds construction parameters for a Builder.
type Config struct {
	// CallbackURL is the return link offered by Navigator, typically the calling page's URL.
	CallbackURL string

	// CallbackPrompt labels the return link. Optional.
	CallbackPrompt string

	// Encoder serializes the route (default: QueryEncoder).
	Encoder Encoder

	// Product is the URL scheme (default: DefaultProduct).
	Product string

	// Logger receives encoder failure causes at debug level.
	Logger zerolog.Logger
}

// Builder accumulates route parameters and produces Navigator deep links.
// A Builder is not safe for concurrent use.
type Builder struct {
	req     Request
	encoder Encoder
	product string
	logger  zerolog.Logger
	status  Status
}

// New creates a Builder with no stops and all options left to the app defaults.
func New(cfg Config) *Builder {
	encoder := cfg.Encoder
	if encoder == nil {
		encoder = QueryEncoder{}
	}

	product := cfg.Product
	if product == "" {
		product = DefaultProduct
	}

	return &Builder{
		req: Request{
			Callback: Callback{
				URL:    cfg.CallbackURL,
				Prompt: cfg.CallbackPrompt,
			},
		},
		encoder: encoder,
		product: product,
		logger:  cfg.Logger,
	}
}

// SetCallbackPrompt sets the label for Navigator's link back.
func (b *Builder) SetCallbackPrompt(prompt string) {
	b.req.Callback.Prompt = prompt
}

// SetCallbackURL sets the URL for Navigator's link back.
func (b *Builder) SetCallbackURL(url string) {
	b.req.Callback.URL = url
}

// SetStart sets the starting location. A nil start means the device's current position.
func (b *Builder) SetStart(start Location) {
	b.req.Start = start
}

// AddStop appends a stop; stops are visited in the order added.
func (b *Builder) AddStop(stop Location) {
	b.req.Stops = append(b.req.Stops, stop)
}

// ClearStops removes all stops, including the final destination.
func (b *Builder) ClearStops() {
	b.req.Stops = nil
}

// SetOptions applies the given options and leaves every other option unchanged.
func (b *Builder) SetOptions(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(&b.req)
		}
	}
}

// SetEncoder swaps the serialization strategy. A nil encoder restores QueryEncoder.
func (b *Builder) SetEncoder(enc Encoder) {
	if enc == nil {
		enc = QueryEncoder{}
	}
	b.encoder = enc
}

// Request returns a copy of the current route state.
func (b *Builder) Request() Request {
	return b.req.clone()
}

// Build generates the deep link.
// On failure it returns ErrNoStops or ErrPayload; LastStatus reports the same outcome.
func (b *Builder) Build() (string, error) {
	b.status = StatusNone

	if len(b.req.Stops) == 0 {
		b.status = StatusNoStops
		return "", ErrNoStops
	}

	body, err := b.encoder.Encode(b.req)
	if err != nil {
		b.logger.Debug().
			Err(err).
			Int("stops", len(b.req.Stops)).
			Msg("navigator payload encoding failed")
		b.status = StatusPayloadFailed
		return "", ErrPayload
	}

	b.status = StatusOK
	return b.product + paramPrefix + body, nil
}

// LastStatus returns the status of the most recent Build call.
func (b *Builder) LastStatus() Status {
	return b.status
}
