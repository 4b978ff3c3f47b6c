package leagueapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

type PlayerInput struct {
	FirstName string `json:"firstName" validate:"required,max=60"`
	LastName  string `json:"lastName" validate:"required,max=60"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	TeamID    *int64 `json:"teamId,omitempty" validate:"omitempty,gt=0"`
}

// NormalizePhone formats raw as E.164, reading numbers without a country code
// in region. Empty input stays empty.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", validation.FieldError{Field: "phone", Reason: "must be a valid phone number"}
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func (a *API) preparePlayer(input PlayerInput) (PlayerInput, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	var errs validation.Errors
	if err := validation.Struct(input); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return input, err
		}
		errs = append(errs, fieldErrs...)
	}
	phone, err := NormalizePhone(input.Phone, a.phoneRegion)
	if err != nil {
		fieldErrs, _ := validation.As(err)
		errs = append(errs, fieldErrs...)
	}
	input.Phone = phone
	return input, errs.Err()
}

// ListPlayers lists players, optionally filtered server side by search.
func (a *API) ListPlayers(ctx context.Context, search string) ([]models.Player, error) {
	var query url.Values
	if search = strings.TrimSpace(search); search != "" {
		query = url.Values{"search": {search}}
	}
	var players []models.Player
	if err := a.client.Get(ctx, resourcePath("players"), query, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (a *API) ListTeamPlayers(ctx context.Context, teamID int64) ([]models.Player, error) {
	if err := requireID("teamId", teamID); err != nil {
		return nil, err
	}
	var players []models.Player
	if err := a.client.Get(ctx, resourcePath("teams", teamID, "players"), nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (a *API) GetPlayer(ctx context.Context, playerID int64) (models.Player, error) {
	var player models.Player
	if err := requireID("playerId", playerID); err != nil {
		return player, err
	}
	err := a.client.Get(ctx, resourcePath("players", playerID), nil, &player)
	return player, err
}

func (a *API) CreatePlayer(ctx context.Context, input PlayerInput) (models.Player, error) {
	var player models.Player
	input, err := a.preparePlayer(input)
	if err != nil {
		return player, err
	}
	err = a.client.Post(ctx, resourcePath("players"), input, &player)
	return player, err
}

func (a *API) UpdatePlayer(ctx context.Context, playerID int64, input PlayerInput) (models.Player, error) {
	var player models.Player
	if err := requireID("playerId", playerID); err != nil {
		return player, err
	}
	input, err := a.preparePlayer(input)
	if err != nil {
		return player, err
	}
	err = a.client.Put(ctx, resourcePath("players", playerID), input, &player)
	return player, err
}

func (a *API) DeletePlayer(ctx context.Context, playerID int64) error {
	if err := requireID("playerId", playerID); err != nil {
		return err
	}
	return a.client.Delete(ctx, resourcePath("players", playerID))
}
