package navigator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// PayloadEncoding is the name of the single-parameter JSON encoding.
const PayloadEncoding = "payload"

// PayloadVersion is the payload schema version written by PayloadEncoder.
const PayloadVersion = "1.0"

const payloadParam = "payload"

// ErrNoPayload indicates a URL without a payload parameter.
var ErrNoPayload = errors.New("url has no payload parameter")

// Payload is the JSON document carried in the payload parameter.
// Absent options are omitted rather than written as null.
type Payload struct {
	Version    string      `json:"version"`
	Stops      []Location  `json:"stops"`
	Callback   Callback    `json:"callback"`
	TravelMode *TravelMode `json:"travelmode,omitempty"`
	Optimize   *bool       `json:"optimize,omitempty"`
	Navigate   *bool       `json:"navigate,omitempty"`
	Start      Location    `json:"start,omitempty"`
}

// PayloadEncoder serializes the whole request as one JSON object in payload=.
type PayloadEncoder struct{}

// Name returns PayloadEncoding.
func (PayloadEncoder) Name() string { return PayloadEncoding }

// Encode renders req as payload=<escaped JSON>.
func (PayloadEncoder) Encode(req Request) (string, error) {
	for i, stop := range req.Stops {
		if !knownLocation(stop) {
			return "", locationError("stops", i)
		}
	}
	if req.Start != nil && !knownLocation(req.Start) {
		return "", locationError("start", -1)
	}

	p := Payload{
		Version:    PayloadVersion,
		Stops:      req.Stops,
		Callback:   req.Callback,
		TravelMode: req.TravelMode,
		Optimize:   req.Optimize,
		Navigate:   req.Navigate,
		Start:      req.Start,
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	return payloadParam + "=" + EscapeComponent(string(data)), nil
}

func knownLocation(loc Location) bool {
	switch loc.(type) {
	case Coordinate, Address:
		return true
	default:
		return false
	}
}

// UnmarshalJSON decodes locations by field presence: an "address" key yields an Address,
// "latitude" and "longitude" yield a Coordinate.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version    string            `json:"version"`
		Stops      []json.RawMessage `json:"stops"`
		Callback   Callback          `json:"callback"`
		TravelMode *TravelMode       `json:"travelmode"`
		Optimize   *bool             `json:"optimize"`
		Navigate   *bool             `json:"navigate"`
		Start      json.RawMessage   `json:"start"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	stops := make([]Location, 0, len(raw.Stops))
	for i, msg := range raw.Stops {
		loc, err := decodeLocation(msg)
		if err != nil {
			return fmt.Errorf("stops[%d]: %w", i, err)
		}
		stops = append(stops, loc)
	}

	var start Location
	if len(raw.Start) > 0 && string(raw.Start) != "null" {
		loc, err := decodeLocation(raw.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		start = loc
	}

	*p = Payload{
		Version:    raw.Version,
		Stops:      stops,
		Callback:   raw.Callback,
		TravelMode: raw.TravelMode,
		Optimize:   raw.Optimize,
		Navigate:   raw.Navigate,
		Start:      start,
	}
	return nil
}

func decodeLocation(data json.RawMessage) (Location, error) {
	var fields struct {
		Name      string   `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Address   *string  `json:"address"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	switch {
	case fields.Address != nil:
		return Address{Name: fields.Name, Address: *fields.Address}, nil
	case fields.Latitude != nil && fields.Longitude != nil:
		return Coordinate{Name: fields.Name, Latitude: *fields.Latitude, Longitude: *fields.Longitude}, nil
	default:
		return nil, ErrInvalidLocation
	}
}

// DecodePayload extracts and parses the payload parameter of a deep link built with
// PayloadEncoder.
func DecodePayload(rawURL string) (*Payload, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	for _, param := range strings.Split(u.RawQuery, "&") {
		key, value, _ := strings.Cut(param, "=")
		if key != payloadParam {
			continue
		}

		decoded, err := UnescapeComponent(value)
		if err != nil {
			return nil, fmt.Errorf("unescape payload: %w", err)
		}

		var p Payload
		if err := json.Unmarshal([]byte(decoded), &p); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		return &p, nil
	}

	return nil, ErrNoPayload
}
