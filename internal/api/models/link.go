package models

// Location is a stop or start point. Either latitude and longitude, or address, must be set.
type Location struct {
	Name      string   `json:"name,omitempty" validate:"max=256"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,min=1,max=1024"`
}

// CallbackInput overrides the service's default return link.
type CallbackInput struct {
	URL    *string `json:"url,omitempty" validate:"omitempty,max=2048"`
	Prompt *string `json:"prompt,omitempty" validate:"omitempty,max=256"`
}

// LinkBuildRequest is the request body for building a Navigator deep link.
type LinkBuildRequest struct {
	Stops      []Location     `json:"stops" validate:"max=100,dive"`
	Start      *Location      `json:"start,omitempty"`
	TravelMode *string        `json:"travelMode,omitempty" validate:"omitempty,travelmode"`
	Optimize   *bool          `json:"optimize,omitempty"`
	Navigate   *bool          `json:"navigate,omitempty"`
	Callback   *CallbackInput `json:"callback,omitempty"`
	Encoding   string         `json:"encoding,omitempty" validate:"omitempty,oneof=query payload"`
}

// LinkBuildResponse is the response for a built deep link.
type LinkBuildResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Encoding    string    `json:"encoding"`
	Status      string    `json:"status"`
	GeneratedAt Timestamp `json:"generatedAt"`
}

// TravelModeList lists the travel modes a link may request.
type TravelModeList struct {
	Items []string `json:"items"`
}
