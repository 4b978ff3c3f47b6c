package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type VenueInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	Address    string `json:"address,omitempty" validate:"max=255"`
	TableCount int    `json:"tableCount" validate:"min=1,max=20"`
}

func (a *API) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := a.client.Get(ctx, resourcePath("venues"), nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (a *API) GetVenue(ctx context.Context, venueID int64) (models.Venue, error) {
	var venue models.Venue
	if err := requireID("venueId", venueID); err != nil {
		return venue, err
	}
	err := a.client.Get(ctx, resourcePath("venues", venueID), nil, &venue)
	return venue, err
}

func (a *API) CreateVenue(ctx context.Context, input VenueInput) (models.Venue, error) {
	var venue models.Venue
	if err := validation.Struct(input); err != nil {
		return venue, err
	}
	err := a.client.Post(ctx, resourcePath("venues"), input, &venue)
	return venue, err
}

func (a *API) UpdateVenue(ctx context.Context, venueID int64, input VenueInput) (models.Venue, error) {
	var venue models.Venue
	if err := requireID("venueId", venueID); err != nil {
		return venue, err
	}
	if err := validation.Struct(input); err != nil {
		return venue, err
	}
	err := a.client.Put(ctx, resourcePath("venues", venueID), input, &venue)
	return venue, err
}
