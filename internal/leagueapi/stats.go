package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/standings"
)

func (a *API) SeasonStandings(ctx context.Context, seasonID int64) ([]standings.TeamStanding, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return nil, err
	}
	var rows []standings.TeamStanding
	if err := a.client.Get(ctx, resourcePath("seasons", seasonID, "standings"), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *API) PlayerStats(ctx context.Context, seasonID, playerID int64) (models.PlayerStats, error) {
	var stats models.PlayerStats
	if err := requireID("seasonId", seasonID); err != nil {
		return stats, err
	}
	if err := requireID("playerId", playerID); err != nil {
		return stats, err
	}
	err := a.client.Get(ctx, resourcePath("seasons", seasonID, "players", playerID, "stats"), nil, &stats)
	return stats, err
}
