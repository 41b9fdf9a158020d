package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigatorlink/navigatorlink/internal/api/handler"
	"github.com/navigatorlink/navigatorlink/internal/api/models"
	"github.com/navigatorlink/navigatorlink/internal/links"
	"github.com/navigatorlink/navigatorlink/pkg/navigator"
)

func newLinkHandler(t *testing.T, cfg links.ServiceConfig) *handler.LinkHandler {
	t.Helper()
	service, err := links.NewService(cfg)
	require.NoError(t, err)
	return handler.NewLinkHandler(service, zerolog.Nop())
}

func postLink(h *handler.LinkHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/navigator-links", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.BuildLink(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	var p models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func problemFields(p models.Problem) []string {
	fields := make([]string, 0, len(p.Errors))
	for _, fe := range p.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestBuildLink_QueryEncoding(t *testing.T) {
	h := newLinkHandler(t, links.ServiceConfig{})

	w := postLink(h, `{
		"stops": [
			{"name": "Home", "address": "1 Main St"},
			{"latitude": 34.05, "longitude": -118.25}
		],
		"travelMode": "Driving Time",
		"optimize": true
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LinkBuildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "query", resp.Encoding)
	assert.Equal(t, "OK", resp.Status)
	assert.True(t, strings.HasPrefix(resp.ID, "lnk_"))
	assert.False(t, resp.GeneratedAt.Time().IsZero())
	assert.Equal(t,
		"arcgis-navigator://?stop=1%20Main%20St&stopname=Home&stop=34.05,-118.25"+
			"&travelmode=Driving%20Time&optimize=true",
		resp.URL)
}

func TestBuildLink_PayloadEncoding(t *testing.T) {
	h := newLinkHandler(t, links.ServiceConfig{CallbackURL: "https://dispatch.example.com"})

	w := postLink(h, `{
		"stops": [{"name": "A", "address": "Redlands"}, {"name": "B", "latitude": 1.5, "longitude": 2}],
		"start": {"latitude": 0, "longitude": 0},
		"callback": {"prompt": "Return"},
		"encoding": "payload"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LinkBuildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "payload", resp.Encoding)

	p, err := navigator.DecodePayload(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, []navigator.Location{
		navigator.Address{Name: "A", Address: "Redlands"},
		navigator.Coordinate{Name: "B", Latitude: 1.5, Longitude: 2},
	}, p.Stops)
	assert.Equal(t, navigator.Coordinate{}, p.Start)
	assert.Equal(t, navigator.Callback{URL: "https://dispatch.example.com", Prompt: "Return"}, p.Callback)
	assert.Nil(t, p.TravelMode)
}

func TestBuildLink_NoStops(t *testing.T) {
	h := newLinkHandler(t, links.ServiceConfig{})

	w := postLink(h, `{"stops": []}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, models.ProblemTypeLinkNotBuilt, p.Type)
	assert.Equal(t, "No stops defined", p.Detail)
	assert.Equal(t, "/v1/navigator-links", p.Instance)
}

func TestBuildLink_InvalidJSON(t *testing.T) {
	h := newLinkHandler(t, links.ServiceConfig{})

	w := postLink(h, `{"stops": [`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, "invalid JSON body", p.Detail)
}

func TestBuildLink_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "location without address or coordinates",
			body:   `{"stops": [{"name": "Nowhere"}]}`,
			fields: []string{"stops[0]"},
		},
		{
			name:   "location with both forms",
			body:   `{"stops": [{"address": "1 Main St", "latitude": 1, "longitude": 2}]}`,
			fields: []string{"stops[0]"},
		},
		{
			name:   "latitude without longitude",
			body:   `{"stops": [{"latitude": 1}]}`,
			fields: []string{"stops[0].longitude"},
		},
		{
			name:   "latitude out of range",
			body:   `{"stops": [{"latitude": 91, "longitude": 2}]}`,
			fields: []string{"stops[0].latitude"},
		},
		{
			name:   "empty address",
			body:   `{"stops": [{"address": ""}]}`,
			fields: []string{"stops[0].address"},
		},
		{
			name:   "unknown travel mode",
			body:   `{"stops": [{"address": "x"}], "travelMode": "Teleport"}`,
			fields: []string{"travelMode"},
		},
		{
			name:   "unknown encoding",
			body:   `{"stops": [{"address": "x"}], "encoding": "xml"}`,
			fields: []string{"encoding"},
		},
		{
			name:   "invalid start",
			body:   `{"stops": [{"address": "x"}], "start": {"longitude": 2}}`,
			fields: []string{"start.latitude"},
		},
	}

	h := newLinkHandler(t, links.ServiceConfig{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLink(h, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			p := decodeProblem(t, w)
			assert.Equal(t, models.ProblemTypeValidation, p.Type)
			assert.Equal(t, tt.fields, problemFields(p))
		})
	}
}

func TestListTravelModes(t *testing.T) {
	h := newLinkHandler(t, links.ServiceConfig{})

	w := httptest.NewRecorder()
	h.ListTravelModes(w, httptest.NewRequest(http.MethodGet, "/v1/navigator-links/travel-modes", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var list models.TravelModeList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, len(navigator.TravelModes()))
	assert.Equal(t, "Driving Time", list.Items[0])
	assert.Contains(t, list.Items, "Rural Driving Distance")
}
