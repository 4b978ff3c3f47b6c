// internal/api/schedules/drafts.go
package schedules

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leaguedesk/internal/api/apiutil"
	"github.com/codr1/leaguedesk/internal/drafts"
	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/ratelimit"
	"github.com/codr1/leaguedesk/internal/schedule"
	"github.com/codr1/leaguedesk/internal/validation"
)

type createDraftRequest struct {
	Configuration schedule.Configuration `json:"configuration"`
	Source        string                 `json:"source"`
	TeamIDs       []int64                `json:"teamIds,omitempty"`
}

type weekUpdateRequest struct {
	Date    *models.Date `json:"date,omitempty"`
	IsBreak *bool        `json:"isBreak,omitempty"`
}

type draftResponse struct {
	Draft    drafts.Draft      `json:"draft"`
	Analysis warningsResponse  `json:"analysis"`
	Estimate schedule.Estimate `json:"estimate"`
}

type saveRefusedResponse struct {
	Error    string             `json:"error"`
	Warnings []schedule.Warning `json:"warnings"`
}

func newDraftResponse(draft drafts.Draft) draftResponse {
	return draftResponse{
		Draft:    draft,
		Analysis: analyze(draft.Schedule, draft.Configuration, draft.Teams),
		Estimate: schedule.EstimateSchedule(draft.Configuration, draft.Teams),
	}
}

// POST /api/v1/seasons/{id}/schedule/drafts
func HandleDraftCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	seasonID, err := apiutil.PathInt64(r, seasonIDPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}

	var req createDraftRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if req.Source == "" {
		req.Source = drafts.SourceLocal
	}
	if req.Source != drafts.SourceLocal && req.Source != drafts.SourceServer {
		var errs validation.Errors
		errs.Add("source", "must be one of local server")
		apiutil.WriteError(w, r, errs.Err())
		return
	}

	client := ratelimit.GetClientIP(r, trustProxy)
	if req.Source == drafts.SourceServer && limiter != nil {
		if result := limiter.CheckGenerate(client); !result.Allowed {
			ratelimit.LogRateLimitExceeded(r.Context(), "generate", client, result.Reason, result.RetryAfter)
			writeTooManyRequests(w, r, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	var (
		season     models.Season
		teamModels []models.Team
		venues     []models.Venue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		season, err = backend.GetSeason(gctx, seasonID)
		return err
	})
	g.Go(func() error {
		var err error
		teamModels, err = backend.ListTeams(gctx, seasonID)
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = backend.ListVenues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Int64("season_id", seasonID).Msg("Failed to load season for scheduling")
		apiutil.WriteError(w, r, err)
		return
	}

	cfg := fillFromSeason(req.Configuration, season, venues)
	teams, err := selectTeams(schedule.TeamsFromModels(teamModels), req.TeamIDs)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := schedule.Validate(cfg, teams); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var sched schedule.Schedule
	if req.Source == drafts.SourceServer {
		sched, err = backend.GenerateSchedule(ctx, seasonID, cfg)
		if err != nil {
			logger.Error().Err(err).Int64("season_id", seasonID).Msg("Backend schedule generation failed")
			apiutil.WriteError(w, r, err)
			return
		}
		if limiter != nil {
			limiter.RecordGenerate(client)
		}
	} else {
		sched, err = schedule.Generate(cfg, teams)
		if err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
	}

	draft, err := store.Create(ctx, seasonID, req.Source, cfg, teams, sched)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	logger.Info().
		Int64("season_id", seasonID).
		Str("draft_id", draft.ID).
		Str("source", draft.Source).
		Int("weeks", len(draft.Schedule.Weeks)).
		Msg("Schedule draft created")

	if err := apiutil.WriteJSON(w, http.StatusCreated, newDraftResponse(draft)); err != nil {
		logger.Error().Err(err).Str("draft_id", draft.ID).Msg("Failed to write draft response")
	}
}

// GET /api/v1/seasons/{id}/schedule/drafts
func HandleDraftList(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathInt64(r, seasonIDPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	list, err := store.ListBySeason(r.Context(), seasonID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"drafts": list}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("season_id", seasonID).Msg("Failed to write drafts response")
	}
}

// GET /api/v1/schedule/drafts/{draft_id}
func HandleDraftDetail(w http.ResponseWriter, r *http.Request) {
	draft, err := store.Get(r.Context(), r.PathValue(draftIDPathKey))
	if err != nil {
		apiutil.WriteError(w, r, editError(err))
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, newDraftResponse(draft)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("draft_id", draft.ID).Msg("Failed to write draft response")
	}
}

// DELETE /api/v1/schedule/drafts/{draft_id}
func HandleDraftDelete(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue(draftIDPathKey)
	if err := store.Delete(r.Context(), draftID); err != nil {
		apiutil.WriteError(w, r, editError(err))
		return
	}
	log.Ctx(r.Context()).Info().Str("draft_id", draftID).Msg("Schedule draft deleted")
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}
func HandleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	week, index, ok := matchPosition(w, r)
	if !ok {
		return
	}
	var edit schedule.MatchEdit
	if err := apiutil.DecodeJSON(r, &edit); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		return s.UpdateMatch(week, index, edit)
	})
}

// POST /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}/swap
func HandleMatchSwap(w http.ResponseWriter, r *http.Request) {
	week, index, ok := matchPosition(w, r)
	if !ok {
		return
	}
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		return s.SwapHomeAway(week, index)
	})
}

// DELETE /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches/{index}
func HandleMatchRemove(w http.ResponseWriter, r *http.Request) {
	week, index, ok := matchPosition(w, r)
	if !ok {
		return
	}
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		return s.RemoveMatch(week, index)
	})
}

// POST /api/v1/schedule/drafts/{draft_id}/weeks/{week}/matches
func HandleMatchAdd(w http.ResponseWriter, r *http.Request) {
	week, err := apiutil.PathInt(r, weekPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	var match schedule.Match
	if err := apiutil.DecodeJSON(r, &match); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		return s.AddMatch(week, match)
	})
}

// PUT /api/v1/schedule/drafts/{draft_id}/weeks/{week}
func HandleWeekUpdate(w http.ResponseWriter, r *http.Request) {
	week, err := apiutil.PathInt(r, weekPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	var req weekUpdateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err})
		return
	}
	if req.Date == nil && req.IsBreak == nil {
		apiutil.WriteError(w, r, badRequest(fmt.Errorf("date or isBreak is required")))
		return
	}
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		var err error
		if req.Date != nil {
			if s, err = s.SetWeekDate(week, *req.Date); err != nil {
				return s, err
			}
		}
		if req.IsBreak != nil {
			if s, err = s.SetBreakWeek(week, *req.IsBreak); err != nil {
				return s, err
			}
		}
		return s, nil
	})
}

// POST /api/v1/schedule/drafts/{draft_id}/weeks
func HandleWeekAppend(w http.ResponseWriter, r *http.Request) {
	applyEdit(w, r, func(s schedule.Schedule) (schedule.Schedule, error) {
		return s.AppendWeek(), nil
	})
}

// POST /api/v1/schedule/drafts/{draft_id}/save
func HandleDraftSave(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	draft, err := store.Get(r.Context(), r.PathValue(draftIDPathKey))
	if err != nil {
		apiutil.WriteError(w, r, editError(err))
		return
	}

	warnings := schedule.Warnings(draft.Schedule, draft.Configuration, draft.Teams)
	if schedule.HasErrors(warnings) {
		logger.Info().Str("draft_id", draft.ID).Int("warnings", len(warnings)).Msg("Refusing to save schedule with errors")
		if err := apiutil.WriteJSON(w, http.StatusUnprocessableEntity, saveRefusedResponse{
			Error:    "Schedule has errors that must be fixed before saving",
			Warnings: warnings,
		}); err != nil {
			logger.Error().Err(err).Str("draft_id", draft.ID).Msg("Failed to write save response")
		}
		return
	}

	client := ratelimit.GetClientIP(r, trustProxy)
	if limiter != nil {
		if result := limiter.CheckSave(client, draft.SeasonID); !result.Allowed {
			ratelimit.LogRateLimitExceeded(r.Context(), "save", client, result.Reason, result.RetryAfter)
			writeTooManyRequests(w, r, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	if _, err := backend.SaveSchedule(ctx, draft.SeasonID, draft.Configuration, draft.Schedule); err != nil {
		logger.Error().Err(err).Str("draft_id", draft.ID).Int64("season_id", draft.SeasonID).Msg("Failed to save schedule")
		apiutil.WriteError(w, r, err)
		return
	}
	if limiter != nil {
		limiter.RecordSave(client, draft.SeasonID)
	}

	saved, err := store.MarkSaved(ctx, draft.ID)
	if err != nil {
		apiutil.WriteError(w, r, editError(err))
		return
	}

	logger.Info().Str("draft_id", saved.ID).Int64("season_id", saved.SeasonID).Msg("Schedule saved to backend")
	if err := apiutil.WriteJSON(w, http.StatusOK, newDraftResponse(saved)); err != nil {
		logger.Error().Err(err).Str("draft_id", saved.ID).Msg("Failed to write save response")
	}
}

func applyEdit(w http.ResponseWriter, r *http.Request, fn func(schedule.Schedule) (schedule.Schedule, error)) {
	revision, err := apiutil.OptionalInt64Query(r, revisionQuery)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}

	draft, err := store.Edit(r.Context(), r.PathValue(draftIDPathKey), revision, fn)
	if err != nil {
		apiutil.WriteError(w, r, editError(err))
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, newDraftResponse(draft)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("draft_id", draft.ID).Msg("Failed to write draft response")
	}
}

func matchPosition(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	week, err := apiutil.PathInt(r, weekPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return 0, 0, false
	}
	index, err := apiutil.PathInt(r, indexPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return 0, 0, false
	}
	return week, index, true
}

// fillFromSeason completes cfg with the season's dates and, when no venues
// were chosen, every backend venue that has tables.
func fillFromSeason(cfg schedule.Configuration, season models.Season, venues []models.Venue) schedule.Configuration {
	if cfg.StartDate.IsZero() {
		cfg.StartDate = season.StartDate
	}
	if cfg.EndDate.IsZero() {
		cfg.EndDate = season.EndDate
	}
	if len(cfg.Venues) == 0 {
		for _, venue := range schedule.VenuesFromModels(venues) {
			if venue.TableCount > 0 {
				cfg.Venues = append(cfg.Venues, venue)
			}
		}
	}
	return cfg
}

func selectTeams(teams []schedule.Team, ids []int64) ([]schedule.Team, error) {
	if len(ids) == 0 {
		return teams, nil
	}
	byID := make(map[int64]schedule.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	var errs validation.Errors
	selected := make([]schedule.Team, 0, len(ids))
	for i, id := range ids {
		team, ok := byID[id]
		if !ok {
			errs.Add(fmt.Sprintf("teamIds[%d]", i), "is not a team in this season")
			continue
		}
		selected = append(selected, team)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return selected, nil
}

func writeTooManyRequests(w http.ResponseWriter, r *http.Request, result ratelimit.LimitResult) {
	seconds := int(math.Ceil(result.RetryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusTooManyRequests, Message: "Too many requests, try again later"})
}
