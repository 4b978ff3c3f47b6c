// internal/api/schedules/seasons.go
package schedules

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leaguedesk/internal/api/apiutil"
	"github.com/codr1/leaguedesk/internal/apiclient"
	"github.com/codr1/leaguedesk/internal/leagueapi"
	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/standings"
)

const maxSearchDistance = 2

type standingsResponse struct {
	Standings []standings.TeamStanding `json:"standings"`
	Source    string                   `json:"source"`
}

// GET /api/v1/seasons/{id}/teams/search?q=
func HandleTeamSearch(w http.ResponseWriter, r *http.Request) {
	seasonID, err := apiutil.PathInt64(r, seasonIDPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	teams, err := backend.ListTeams(ctx, seasonID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	matches := leagueapi.FindTeamsByName(teams, term, maxSearchDistance)
	if matches == nil {
		matches = []leagueapi.TeamMatch{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": matches}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("season_id", seasonID).Msg("Failed to write team search response")
	}
}

// GET /api/v1/seasons/{id}/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	seasonID, err := apiutil.PathInt64(r, seasonIDPathKey)
	if err != nil {
		apiutil.WriteError(w, r, badRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	resp := standingsResponse{Source: "server"}
	resp.Standings, err = backend.SeasonStandings(ctx, seasonID)
	if apiclient.IsNotFound(err) {
		logger.Debug().Int64("season_id", seasonID).Msg("Backend standings unavailable, calculating locally")
		resp.Source = "local"
		resp.Standings, err = localStandings(ctx, seasonID)
	}
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if resp.Standings == nil {
		resp.Standings = []standings.TeamStanding{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Int64("season_id", seasonID).Msg("Failed to write standings response")
	}
}

func localStandings(ctx context.Context, seasonID int64) ([]standings.TeamStanding, error) {
	var (
		teams   []models.Team
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = backend.ListTeams(gctx, seasonID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = backend.ListMatches(gctx, seasonID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []standings.TeamStanding{}, nil
	}
	return standings.Calculate(teams, matches)
}
