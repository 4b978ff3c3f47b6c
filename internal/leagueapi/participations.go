package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type ParticipationInput struct {
	TeamID   int64 `json:"teamId" validate:"gt=0"`
	PlayerID int64 `json:"playerId" validate:"gt=0"`
}

func (a *API) ListParticipations(ctx context.Context, seasonID int64) ([]models.SeasonParticipation, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return nil, err
	}
	var participations []models.SeasonParticipation
	if err := a.client.Get(ctx, resourcePath("seasons", seasonID, "participations"), nil, &participations); err != nil {
		return nil, err
	}
	return participations, nil
}

func (a *API) AddParticipation(ctx context.Context, seasonID int64, input ParticipationInput) (models.SeasonParticipation, error) {
	var participation models.SeasonParticipation
	if err := requireID("seasonId", seasonID); err != nil {
		return participation, err
	}
	if err := validation.Struct(input); err != nil {
		return participation, err
	}
	err := a.client.Post(ctx, resourcePath("seasons", seasonID, "participations"), input, &participation)
	return participation, err
}

func (a *API) RemoveParticipation(ctx context.Context, seasonID, participationID int64) error {
	if err := requireID("seasonId", seasonID); err != nil {
		return err
	}
	if err := requireID("participationId", participationID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("seasons", seasonID, "participations", participationID))
}
