package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type SeasonInput struct {
	Name      string      `json:"name" validate:"required,max=120"`
	StartDate models.Date `json:"startDate"`
	EndDate   models.Date `json:"endDate"`
	Status    string      `json:"status,omitempty" validate:"omitempty,oneof=draft active completed"`
}

func (in SeasonInput) validate() error {
	var errs validation.Errors
	if err := validation.Struct(in); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	if in.StartDate.IsZero() {
		errs.Add("startDate", "is required")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate.Time) {
		errs.Add("endDate", "must be on or after startDate")
	}
	return errs.Err()
}

func (a *API) ListSeasons(ctx context.Context, leagueID int64) ([]models.Season, error) {
	if err := requireID("leagueId", leagueID); err != nil {
		return nil, err
	}
	var seasons []models.Season
	if err := a.client.Get(ctx, resourcePath("leagues", leagueID, "seasons"), nil, &seasons); err != nil {
		return nil, err
	}
	return seasons, nil
}

func (a *API) GetSeason(ctx context.Context, seasonID int64) (models.Season, error) {
	var season models.Season
	if err := requireID("seasonId", seasonID); err != nil {
		return season, err
	}
	err := a.client.Get(ctx, resourcePath("seasons", seasonID), nil, &season)
	return season, err
}

func (a *API) CreateSeason(ctx context.Context, leagueID int64, input SeasonInput) (models.Season, error) {
	var season models.Season
	if err := requireID("leagueId", leagueID); err != nil {
		return season, err
	}
	if err := input.validate(); err != nil {
		return season, err
	}
	err := a.client.Post(ctx, resourcePath("leagues", leagueID, "seasons"), input, &season)
	return season, err
}

func (a *API) UpdateSeason(ctx context.Context, seasonID int64, input SeasonInput) (models.Season, error) {
	var season models.Season
	if err := requireID("seasonId", seasonID); err != nil {
		return season, err
	}
	if err := input.validate(); err != nil {
		return season, err
	}
	err := a.client.Put(ctx, resourcePath("seasons", seasonID), input, &season)
	return season, err
}

func (a *API) DeleteSeason(ctx context.Context, seasonID int64) error {
	if err := requireID("seasonId", seasonID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("seasons", seasonID))
}
