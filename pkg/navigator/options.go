package navigator

// Option updates a single routing option on a Request.
type Option func(*Request)

// WithTravelMode selects the travel mode.
func WithTravelMode(mode TravelMode) Option {
	return func(r *Request) {
		r.TravelMode = &mode
	}
}

// DefaultTravelMode reverts to the map's default travel mode.
func DefaultTravelMode() Option {
	return func(r *Request) {
		r.TravelMode = nil
	}
}

// WithOptimize sets whether Navigator reorders stops for the best route.
func WithOptimize(optimize bool) Option {
	return func(r *Request) {
		r.Optimize = &optimize
	}
}

// DefaultOptimize reverts to the app's optimize setting.
func DefaultOptimize() Option {
	return func(r *Request) {
		r.Optimize = nil
	}
}

// WithNavigate sets whether guidance starts as soon as Navigator opens.
func WithNavigate(navigate bool) Option {
	return func(r *Request) {
		r.Navigate = &navigate
	}
}

// DefaultNavigate omits the navigate flag, which Navigator reads as false.
func DefaultNavigate() Option {
	return func(r *Request) {
		r.Navigate = nil
	}
}
