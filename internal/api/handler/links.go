package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/navigatorlink/navigatorlink/internal/api/middleware"
	"github.com/navigatorlink/navigatorlink/internal/api/models"
	"github.com/navigatorlink/navigatorlink/internal/api/response"
	"github.com/navigatorlink/navigatorlink/internal/links"
	"github.com/navigatorlink/navigatorlink/pkg/navigator"
)

const maxRequestBody = 64 << 10

// LinkHandler handles Navigator deep link endpoints.
type LinkHandler struct {
	service  *links.Service
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(service *links.Service, logger zerolog.Logger) *LinkHandler {
	return &LinkHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger,
	}
}

// BuildLink handles POST /v1/navigator-links - build a deep link for a set of stops.
func (h *LinkHandler) BuildLink(w http.ResponseWriter, r *http.Request) {
	var input models.LinkBuildRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := h.validateRequest(input); len(errs) > 0 {
		response.BadRequest(w, r, "request validation failed", errs)
		return
	}

	link, err := h.service.Build(r.Context(), toInput(input))
	if err != nil {
		var buildErr *links.BuildError
		switch {
		case errors.As(err, &buildErr):
			response.LinkNotBuilt(w, r, string(buildErr.Status))
		case errors.Is(err, links.ErrUnknownEncoding):
			response.BadRequest(w, r, "unknown encoding", []models.FieldError{
				{Field: "encoding", Message: "must be one of: query, payload", Code: "INVALID"},
			})
		default:
			h.logger.Error().
				Err(err).
				Str("request_id", middleware.GetRequestID(r.Context())).
				Msg("deep link build error")
			response.InternalError(w, r, "unable to build link")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.LinkBuildResponse{
		ID:          link.ID,
		URL:         link.URL,
		Encoding:    link.Encoding,
		Status:      string(link.Status),
		GeneratedAt: models.Timestamp(link.GeneratedAt),
	})
}

// ListTravelModes handles GET /v1/navigator-links/travel-modes - list known travel modes.
func (h *LinkHandler) ListTravelModes(w http.ResponseWriter, r *http.Request) {
	modes := navigator.TravelModes()
	list := models.TravelModeList{Items: make([]string, 0, len(modes))}
	for _, mode := range modes {
		list.Items = append(list.Items, string(mode))
	}
	response.JSON(w, r, http.StatusOK, list)
}

func (h *LinkHandler) validateRequest(input models.LinkBuildRequest) []models.FieldError {
	var errs []models.FieldError
	if err := h.validate.Struct(input); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}

	for i, stop := range input.Stops {
		errs = append(errs, locationErrors(fmt.Sprintf("stops[%d]", i), stop)...)
	}
	if input.Start != nil {
		errs = append(errs, locationErrors("start", *input.Start)...)
	}
	return errs
}

// toInput maps a validated request onto a link service input.
// Stops are not required here; an empty list is reported by the builder as a 422.
func toInput(input models.LinkBuildRequest) links.Input {
	in := links.Input{
		Stops:    make([]navigator.Location, 0, len(input.Stops)),
		Encoding: input.Encoding,
	}
	for _, stop := range input.Stops {
		in.Stops = append(in.Stops, toLocation(stop))
	}
	if input.Start != nil {
		in.Start = toLocation(*input.Start)
	}

	if input.TravelMode != nil {
		in.Options = append(in.Options, navigator.WithTravelMode(navigator.TravelMode(*input.TravelMode)))
	}
	if input.Optimize != nil {
		in.Options = append(in.Options, navigator.WithOptimize(*input.Optimize))
	}
	if input.Navigate != nil {
		in.Options = append(in.Options, navigator.WithNavigate(*input.Navigate))
	}

	if input.Callback != nil {
		in.CallbackURL = input.Callback.URL
		in.CallbackPrompt = input.Callback.Prompt
	}
	return in
}
