package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type TeamInput struct {
	Name        string `json:"name" validate:"required,max=80"`
	CaptainID   *int64 `json:"captainId,omitempty" validate:"omitempty,gt=0"`
	HomeVenueID *int64 `json:"homeVenueId,omitempty" validate:"omitempty,gt=0"`
}

func (a *API) ListTeams(ctx context.Context, seasonID int64) ([]models.Team, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return nil, err
	}
	var teams []models.Team
	if err := a.client.Get(ctx, resourcePath("seasons", seasonID, "teams"), nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (a *API) GetTeam(ctx context.Context, teamID int64) (models.Team, error) {
	var team models.Team
	if err := requireID("teamId", teamID); err != nil {
		return team, err
	}
	err := a.client.Get(ctx, resourcePath("teams", teamID), nil, &team)
	return team, err
}

func (a *API) CreateTeam(ctx context.Context, seasonID int64, input TeamInput) (models.Team, error) {
	var team models.Team
	if err := requireID("seasonId", seasonID); err != nil {
		return team, err
	}
	if err := validation.Struct(input); err != nil {
		return team, err
	}
	err := a.client.Post(ctx, resourcePath("seasons", seasonID, "teams"), input, &team)
	return team, err
}

func (a *API) UpdateTeam(ctx context.Context, teamID int64, input TeamInput) (models.Team, error) {
	var team models.Team
	if err := requireID("teamId", teamID); err != nil {
		return team, err
	}
	if err := validation.Struct(input); err != nil {
		return team, err
	}
	err := a.client.Put(ctx, resourcePath("teams", teamID), input, &team)
	return team, err
}

func (a *API) DeleteTeam(ctx context.Context, teamID int64) error {
	if err := requireID("teamId", teamID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("teams", teamID))
}
