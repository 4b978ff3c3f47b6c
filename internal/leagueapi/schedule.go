package leagueapi

import (
	"context"

	"github.com/codr1/leaguedesk/internal/schedule"
)

type generateScheduleRequest struct {
	Configuration schedule.Configuration `json:"configuration"`
}

type scheduleEnvelope struct {
	Configuration *schedule.Configuration `json:"configuration,omitempty"`
	Weeks         []schedule.Week         `json:"weeks"`
}

// GenerateSchedule asks the backend's fixture generator for a proposed
// schedule. Nothing is persisted until SaveSchedule.
func (a *API) GenerateSchedule(ctx context.Context, seasonID int64, cfg schedule.Configuration) (schedule.Schedule, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return schedule.Schedule{}, err
	}
	var resp scheduleEnvelope
	if err := a.client.Post(ctx, resourcePath("seasons", seasonID, "schedule", "generate"), generateScheduleRequest{Configuration: cfg}, &resp); err != nil {
		return schedule.Schedule{}, err
	}
	return schedule.Schedule{Weeks: resp.Weeks}, nil
}

// GetSchedule loads the saved schedule of a season.
func (a *API) GetSchedule(ctx context.Context, seasonID int64) (schedule.Schedule, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return schedule.Schedule{}, err
	}
	var resp scheduleEnvelope
	if err := a.client.Get(ctx, resourcePath("seasons", seasonID, "schedule"), nil, &resp); err != nil {
		return schedule.Schedule{}, err
	}
	return schedule.Schedule{Weeks: resp.Weeks}, nil
}

// SaveSchedule replaces the season's schedule with sched.
func (a *API) SaveSchedule(ctx context.Context, seasonID int64, cfg schedule.Configuration, sched schedule.Schedule) (schedule.Schedule, error) {
	if err := requireID("seasonId", seasonID); err != nil {
		return schedule.Schedule{}, err
	}
	req := scheduleEnvelope{Configuration: &cfg, Weeks: sched.Weeks}
	var resp scheduleEnvelope
	if err := a.client.Put(ctx, resourcePath("seasons", seasonID, "schedule"), req, &resp); err != nil {
		return schedule.Schedule{}, err
	}
	if resp.Weeks == nil {
		return sched, nil
	}
	return schedule.Schedule{Weeks: resp.Weeks}, nil
}
