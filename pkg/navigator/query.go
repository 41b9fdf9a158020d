package navigator

import (
	"strconv"
	"strings"
)

// QueryEncoding is the name of the flat query-string encoding.
const QueryEncoding = "query"

// QueryEncoder emits one parameter per field, repeating stop= for each stop.
type QueryEncoder struct{}

// Name returns QueryEncoding.
func (QueryEncoder) Name() string { return QueryEncoding }

// Encode renders req as stop=...&stopname=...&start=...&travelmode=...&callback=...
func (QueryEncoder) Encode(req Request) (string, error) {
	params := make([]string, 0, 2*len(req.Stops)+7)

	for i, stop := range req.Stops {
		encoded, err := appendLocationParams(params, "stop", stop)
		if err != nil {
			return "", locationError("stops", i)
		}
		params = encoded
	}

	if req.Start != nil {
		encoded, err := appendLocationParams(params, "start", req.Start)
		if err != nil {
			return "", locationError("start", -1)
		}
		params = encoded
	}

	if req.TravelMode != nil {
		params = append(params, "travelmode="+EscapeComponent(string(*req.TravelMode)))
	}
	if req.Optimize != nil {
		params = append(params, "optimize="+strconv.FormatBool(*req.Optimize))
	}
	if req.Navigate != nil {
		params = append(params, "navigate="+strconv.FormatBool(*req.Navigate))
	}

	if req.Callback.URL != "" {
		params = append(params, "callback="+EscapeComponent(req.Callback.URL))
	}
	if req.Callback.Prompt != "" {
		params = append(params, "callbackprompt="+EscapeComponent(req.Callback.Prompt))
	}

	return strings.Join(params, "&"), nil
}

func appendLocationParams(params []string, tag string, loc Location) ([]string, error) {
	switch l := loc.(type) {
	case Address:
		params = append(params, tag+"="+EscapeComponent(l.Address))
	case Coordinate:
		// Digits, sign, dot and comma are URL-safe, so coordinates are not escaped.
		params = append(params, tag+"="+formatDegrees(l.Latitude)+","+formatDegrees(l.Longitude))
	default:
		return params, ErrInvalidLocation
	}

	if name := loc.DisplayName(); name != "" {
		params = append(params, tag+"name="+EscapeComponent(name))
	}
	return params, nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
