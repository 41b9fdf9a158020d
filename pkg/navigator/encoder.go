package navigator

import (
	"errors"
	"fmt"
)

// Encoder serializes a Request into the query portion of a deep link.
// The returned body must not include the leading "?".
type Encoder interface {
	Encode(req Request) (string, error)
	// Name identifies the encoding, e.g. for logging and metrics.
	Name() string
}

// ErrInvalidLocation indicates a nil or unrecognized Location.
var ErrInvalidLocation = errors.New("invalid location")

func locationError(field string, index int) error {
	if index < 0 {
		return fmt.Errorf("%s: %w", field, ErrInvalidLocation)
	}
	return fmt.Errorf("%s[%d]: %w", field, index, ErrInvalidLocation)
}

// EncoderByName returns the encoder registered under name ("query" or "payload").
func EncoderByName(name string) (Encoder, bool) {
	switch name {
	case QueryEncoding:
		return QueryEncoder{}, true
	case PayloadEncoding:
		return PayloadEncoder{}, true
	default:
		return nil, false
	}
}
