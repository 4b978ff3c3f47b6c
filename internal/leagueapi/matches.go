package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type MatchInput struct {
	WeekNumber    int         `json:"weekNumber" validate:"gte=1"`
	ScheduledDate models.Date `json:"scheduledDate"`
	HomeTeamID    int64       `json:"homeTeamId" validate:"gt=0"`
	AwayTeamID    int64       `json:"awayTeamId" validate:"gt=0,nefield=HomeTeamID"`
	VenueID       *int64      `json:"venueId,omitempty" validate:"omitempty,gt=0"`
	Status        string      `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
}

type ScoreInput struct {
	HomeScore int `json:"homeScore" validate:"gte=0"`
	AwayScore int `json:"awayScore" validate:"gte=0"`
}

func (a *API) ListMatches(ctx context.Context, seasonID int64) ([]models.Match, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return nil, err
	}
	var matches []models.Match
	if err := a.client.Get(ctx, resourcePath("seasons", seasonID, "matches"), nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (a *API) GetMatch(ctx context.Context, matchID int64) (models.Match, error) {
	var match models.Match
	if err := requireID("matchId", matchID); err != nil {
		return match, err
	}
	err := a.client.Get(ctx, resourcePath("matches", matchID), nil, &match)
	return match, err
}

func (a *API) UpdateMatch(ctx context.Context, matchID int64, input MatchInput) (models.Match, error) {
	var match models.Match
	if err := requireID("matchId", matchID); err != nil {
		return match, err
	}
	if err := validation.Struct(input); err != nil {
		return match, err
	}
	err := a.client.Put(ctx, resourcePath("matches", matchID), input, &match)
	return match, err
}

// SubmitScore records the final score; the backend marks the match completed.
func (a *API) SubmitScore(ctx context.Context, matchID int64, input ScoreInput) (models.Match, error) {
	var match models.Match
	if err := requireID("matchId", matchID); err != nil {
		return match, err
	}
	if err := validation.Struct(input); err != nil {
		return match, err
	}
	err := a.client.Post(ctx, resourcePath("matches", matchID, "score"), input, &match)
	return match, err
}

func (a *API) DeleteMatch(ctx context.Context, matchID int64) error {
	if err := requireID("matchId", matchID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("matches", matchID))
}
