// Package schedule models season schedule configuration and proposed
// fixtures: parameter validation, closed-form estimates, a local round-robin
// preview, scheduling warnings and match-level edits.
package schedule

import (
	"fmt"
	"sort"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

const (
	MinTeams              = 2
	MinTableCount         = 1
	MaxTableCount         = 20
	MaxTimesPlayEachOther = 4
)

// VenueCapacity is a venue offered to the schedule with the number of tables
// that can host simultaneous matches.
type VenueCapacity struct {
	VenueID    int64  `json:"venueId" validate:"gt=0"`
	Name       string `json:"name,omitempty"`
	TableCount int    `json:"tableCount" validate:"min=1,max=20"`
}

type Configuration struct {
	StartDate          models.Date     `json:"startDate"`
	EndDate            models.Date     `json:"endDate"`
	MatchesPerWeek     int             `json:"matchesPerWeek" validate:"min=1"`
	TimesPlayEachOther int             `json:"timesPlayEachOther" validate:"min=1,max=4"`
	AlternateHomeAway  bool            `json:"alternateHomeAway"`
	BreakWeeks         []int           `json:"breakWeeks" validate:"dive,min=1"`
	Venues             []VenueCapacity `json:"venues" validate:"min=1,dive"`
}

// Team is the scheduling view of a team.
type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HomeVenueID int64  `json:"homeVenueId,omitempty"`
}

// TeamsFromModels converts backend teams into scheduling teams.
func TeamsFromModels(teams []models.Team) []Team {
	result := make([]Team, 0, len(teams))
	for _, team := range teams {
		entry := Team{ID: team.ID, Name: team.Name}
		if team.HomeVenueID != nil {
			entry.HomeVenueID = *team.HomeVenueID
		}
		result = append(result, entry)
	}
	return result
}

// VenuesFromModels offers every venue at its full table count.
func VenuesFromModels(venues []models.Venue) []VenueCapacity {
	result := make([]VenueCapacity, 0, len(venues))
	for _, venue := range venues {
		result = append(result, VenueCapacity{VenueID: venue.ID, Name: venue.Name, TableCount: venue.TableCount})
	}
	return result
}

// MatchesPerRound is the number of matches in one full round robin round.
func MatchesPerRound(teamCount int) int {
	return teamCount / 2
}

// Validate checks cfg for a season with the given teams. It returns
// validation.Errors listing every problem found.
func Validate(cfg Configuration, teams []Team) error {
	var errs validation.Errors
	if err := validation.Struct(cfg); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if cfg.StartDate.IsZero() {
		errs.Add("startDate", "is required")
	}
	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() && cfg.EndDate.Before(cfg.StartDate.Time) {
		errs.Add("endDate", "must be on or after startDate")
	}

	if len(teams) < MinTeams {
		errs.Add("teams", fmt.Sprintf("must contain at least %d teams", MinTeams))
	} else if perRound := MatchesPerRound(len(teams)); cfg.MatchesPerWeek > perRound {
		errs.Add("matchesPerWeek", fmt.Sprintf("must be at most %d for %d teams", perRound, len(teams)))
	}

	seenTeams := make(map[int64]struct{}, len(teams))
	for i, team := range teams {
		if team.ID <= 0 {
			errs.Add(fmt.Sprintf("teams[%d].id", i), "must be greater than 0")
			continue
		}
		if _, ok := seenTeams[team.ID]; ok {
			errs.Add(fmt.Sprintf("teams[%d].id", i), fmt.Sprintf("duplicates team %d", team.ID))
		}
		seenTeams[team.ID] = struct{}{}
	}

	for _, week := range duplicateInts(cfg.BreakWeeks) {
		errs.Add("breakWeeks", fmt.Sprintf("contains week %d more than once", week))
	}

	seenVenues := make(map[int64]struct{}, len(cfg.Venues))
	for i, venue := range cfg.Venues {
		if venue.VenueID <= 0 {
			continue
		}
		if _, ok := seenVenues[venue.VenueID]; ok {
			errs.Add(fmt.Sprintf("venues[%d].venueId", i), fmt.Sprintf("duplicates venue %d", venue.VenueID))
		}
		seenVenues[venue.VenueID] = struct{}{}
	}

	return errs.Err()
}

func duplicateInts(values []int) []int {
	counts := make(map[int]int, len(values))
	for _, value := range values {
		counts[value]++
	}
	var dups []int
	for value, count := range counts {
		if count > 1 {
			dups = append(dups, value)
		}
	}
	sort.Ints(dups)
	return dups
}

func (c Configuration) breakWeekSet() map[int]struct{} {
	set := make(map[int]struct{}, len(c.BreakWeeks))
	for _, week := range c.BreakWeeks {
		set[week] = struct{}{}
	}
	return set
}

func (c Configuration) venueByID() map[int64]VenueCapacity {
	lookup := make(map[int64]VenueCapacity, len(c.Venues))
	for _, venue := range c.Venues {
		lookup[venue.VenueID] = venue
	}
	return lookup
}

// WeekDate is the date of calendar week number n (1-based).
func (c Configuration) WeekDate(n int) models.Date {
	return c.StartDate.AddWeeks(n - 1)
}
