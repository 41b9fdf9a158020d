// Package navigator builds deep links that open ArcGIS Navigator with a pre-populated route.
// A Builder accumulates stops, an optional start, routing options and callback details,
// then serializes them with one of two encoders: flat query-string parameters or a single
// JSON payload parameter.
package navigator

// Location is a route stop or start point.
// It is implemented only by Coordinate and Address.
type Location interface {
	// DisplayName returns the optional label for the location.
	DisplayName() string

	location()
}

// Coordinate is a point in WGS84 decimal degrees.
type Coordinate struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is free text the navigation app geocodes itself.
type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// DisplayName returns the coordinate's label.
func (c Coordinate) DisplayName() string { return c.Name }

// DisplayName returns the address's label.
func (a Address) DisplayName() string { return a.Name }

func (Coordinate) location() {}
func (Address) location()    {}

// TravelMode is one of the travel modes configured in Navigator maps.
type TravelMode string

// Travel modes understood by Navigator.
const (
	DrivingTime          TravelMode = "Driving Time"
	DrivingDistance      TravelMode = "Driving Distance"
	TruckingTime         TravelMode = "Trucking Time"
	TruckingDistance     TravelMode = "Trucking Distance"
	WalkingTime          TravelMode = "Walking Time"
	WalkingDistance      TravelMode = "Walking Distance"
	RuralDrivingTime     TravelMode = "Rural Driving Time"
	RuralDrivingDistance TravelMode = "Rural Driving Distance"
)

// TravelModes returns all known travel modes in display order.
func TravelModes() []TravelMode {
	return []TravelMode{
		DrivingTime,
		DrivingDistance,
		TruckingTime,
		TruckingDistance,
		WalkingTime,
		WalkingDistance,
		RuralDrivingTime,
		RuralDrivingDistance,
	}
}

// Valid reports whether m is a known travel mode.
func (m TravelMode) Valid() bool {
	for _, known := range TravelModes() {
		if m == known {
			return true
		}
	}
	return false
}

// Callback is the link Navigator offers for returning to the calling app.
type Callback struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt,omitempty"`
}

// Request is the route state held by a Builder.
// Nil pointer options and a nil Start mean "use the app default".
type Request struct {
	Stops      []Location
	Start      Location
	TravelMode *TravelMode
	Optimize   *bool
	Navigate   *bool
	Callback   Callback
}

// clone returns a copy that shares no mutable state with r.
func (r Request) clone() Request {
	out := r
	if r.Stops != nil {
		out.Stops = make([]Location, len(r.Stops))
		copy(out.Stops, r.Stops)
	}
	if r.TravelMode != nil {
		mode := *r.TravelMode
		out.TravelMode = &mode
	}
	if r.Optimize != nil {
		optimize := *r.Optimize
		out.Optimize = &optimize
	}
	if r.Navigate != nil {
		navigate := *r.Navigate
		out.Navigate = &navigate
	}
	return out
}
