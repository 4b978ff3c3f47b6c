package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type LeagueInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Sport       string `json:"sport,omitempty" validate:"max=60"`
}

func (a *API) ListLeagues(ctx context.Context) ([]models.League, error) {
	var leagues []models.League
	if err := a.client.Get(ctx, resourcePath("leagues"), nil, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (a *API) GetLeague(ctx context.Context, leagueID int64) (models.League, error) {
	var league models.League
	if err := requireID("leagueId", leagueID); err != nil {
		return league, err
	}
	err := a.client.Get(ctx, resourcePath("leagues", leagueID), nil, &league)
	return league, err
}

func (a *API) CreateLeague(ctx context.Context, input LeagueInput) (models.League, error) {
	var league models.League
	if err := validation.Struct(input); err != nil {
		return league, err
	}
	err := a.client.Post(ctx, resourcePath("leagues"), input, &league)
	return league, err
}

func (a *API) UpdateLeague(ctx context.Context, leagueID int64, input LeagueInput) (models.League, error) {
	var league models.League
	if err := requireID("leagueId", leagueID); err != nil {
		return league, err
	}
	if err := validation.Struct(input); err != nil {
		return league, err
	}
	err := a.client.Put(ctx, resourcePath("leagues", leagueID), input, &league)
	return league, err
}

func (a *API) DeleteLeague(ctx context.Context, leagueID int64) error {
	if err := requireID("leagueId", leagueID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("leagues", leagueID))
}
