// internal/api/schedules/handlers.go
package schedules

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leaguedesk/internal/api/apiutil"
	"github.com/codr1/leaguedesk/internal/drafts"
	"github.com/codr1/leaguedesk/internal/leagueapi"
	"github.com/codr1/leaguedesk/internal/ratelimit"
	"github.com/codr1/leaguedesk/internal/schedule"
	"github.com/codr1/leaguedesk/internal/validation"
)

const (
	backendTimeout  = 20 * time.Second
	seasonIDPathKey = "id"
	draftIDPathKey  = "draft_id"
	weekPathKey     = "week"
	indexPathKey    = "index"
	revisionQuery   = "revision"
)

var (
	store      *drafts.Store
	backend    *leagueapi.API
	limiter    *ratelimit.Limiter
	trustProxy bool
)

// Deps are the collaborators the schedule handlers need.
type Deps struct {
	Store      *drafts.Store
	Backend    *leagueapi.API
	Limiter    *ratelimit.Limiter
	TrustProxy bool
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(deps Deps) {
	store = deps.Store
	backend = deps.Backend
	limiter = deps.Limiter
	trustProxy = deps.TrustProxy
}

type planRequest struct {
	Configuration schedule.Configuration `json:"configuration"`
	Teams         []schedule.Team        `json:"teams"`
	Weeks         []schedule.Week        `json:"weeks,omitempty"`
}

type validateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
}

type previewResponse struct {
	Weeks    []schedule.Week    `json:"weeks"`
	Warnings []schedule.Warning `json:"warnings"`
	Summary  schedule.Summary   `json:"summary"`
	Estimate schedule.Estimate  `json:"estimate"`
}

type warningsResponse struct {
	Warnings  []schedule.Warning  `json:"warnings"`
	HasErrors bool                `json:"hasErrors"`
	Summary   schedule.Summary    `json:"summary"`
	TeamLoads []schedule.TeamLoad `json:"teamLoads"`
}

// POST /api/v1/schedule/estimate
func HandleEstimate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}
	if err := schedule.Validate(req.Configuration, req.Teams); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	estimate := schedule.EstimateSchedule(req.Configuration, req.Teams)
	if err := apiutil.WriteJSON(w, http.StatusOK, estimate); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write estimate response")
	}
}

// POST /api/v1/schedule/validate
func HandleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	resp := validateResponse{Valid: true, Errors: []validation.FieldError{}}
	if err := schedule.Validate(req.Configuration, req.Teams); err != nil {
		fieldErrs, isValidation := validation.As(err)
		if !isValidation {
			apiutil.WriteError(w, r, err)
			return
		}
		resp.Valid = false
		resp.Errors = fieldErrs
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write validation response")
	}
}

// POST /api/v1/schedule/preview
func HandlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	sched, err := schedule.Generate(req.Configuration, req.Teams)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	resp := previewResponse{
		Weeks:    sched.Weeks,
		Warnings: schedule.Warnings(sched, req.Configuration, req.Teams),
		Summary:  sched.Summary(),
		Estimate: schedule.EstimateSchedule(req.Configuration, req.Teams),
	}
	log.Ctx(r.Context()).Debug().
		Int("teams", len(req.Teams)).
		Int("weeks", resp.Summary.Weeks).
		Int("warnings", len(resp.Warnings)).
		Msg("Schedule preview generated")
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write preview response")
	}
}

// POST /api/v1/schedule/warnings
func HandleWarnings(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}
	sched := schedule.Schedule{Weeks: req.Weeks}
	if err := apiutil.WriteJSON(w, http.StatusOK, analyze(sched, req.Configuration, req.Teams)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write warnings response")
	}
}

func analyze(sched schedule.Schedule, cfg schedule.Configuration, teams []schedule.Team) warningsResponse {
	warnings := schedule.Warnings(sched, cfg, teams)
	return warningsResponse{
		Warnings:  warnings,
		HasErrors: schedule.HasErrors(warnings),
		Summary:   sched.Summary(),
		TeamLoads: sched.TeamLoads(),
	}
}

func decodePlanRequest(w http.ResponseWriter, r *http.Request) (planRequest, bool) {
	var req planRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return req, false
	}
	return req, true
}

// editError maps schedule and draft failures onto HTTP statuses.
func editError(err error) error {
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Draft not found", Err: err}
	case errors.Is(err, drafts.ErrConflict):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: "Draft was modified, reload and retry", Err: err}
	case errors.Is(err, schedule.ErrWeekNotFound), errors.Is(err, schedule.ErrMatchNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, schedule.ErrBreakWeek),
		errors.Is(err, schedule.ErrWeekNotEmpty),
		errors.Is(err, schedule.ErrSwapBye),
		errors.Is(err, schedule.ErrByeHasOpponent),
		errors.Is(err, schedule.ErrByeHasVenue),
		errors.Is(err, schedule.ErrMissingTeam),
		errors.Is(err, schedule.ErrSameTeam),
		errors.Is(err, schedule.ErrMissingVenue):
		return apiutil.HandlerError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	default:
		return err
	}
}

func badRequest(err error) error {
	return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
}
