package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/codr1/leaguedesk/internal/models"
)

// Match is one proposed fixture. A bye carries its single team in
// HomeTeamID and has no opponent or venue.
type Match struct {
	HomeTeamID int64 `json:"homeTeamId,omitempty"`
	AwayTeamID int64 `json:"awayTeamId,omitempty"`
	VenueID    int64 `json:"venueId,omitempty"`
	IsBye      bool  `json:"isBye"`
}

type Week struct {
	Number  int         `json:"weekNumber"`
	Date    models.Date `json:"date"`
	IsBreak bool        `json:"isBreak"`
	Matches []Match     `json:"matches"`
}

type Schedule struct {
	Weeks []Week `json:"weeks"`
}

var (
	ErrByeHasOpponent = errors.New("a bye has exactly one team")
	ErrByeHasVenue    = errors.New("a bye has no venue")
	ErrMissingTeam    = errors.New("a match needs a home and an away team")
	ErrSameTeam       = errors.New("a team cannot play itself")
	ErrMissingVenue   = errors.New("a match needs a venue")
)

// Validate enforces the bye/regular match invariant.
func (m Match) Validate() error {
	if m.IsBye {
		if m.HomeTeamID <= 0 {
			return ErrMissingTeam
		}
		if m.AwayTeamID != 0 {
			return ErrByeHasOpponent
		}
		if m.VenueID != 0 {
			return ErrByeHasVenue
		}
		return nil
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return ErrMissingTeam
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeam
	}
	if m.VenueID <= 0 {
		return ErrMissingVenue
	}
	return nil
}

// Teams lists the teams taking part in the match.
func (m Match) Teams() []int64 {
	if m.IsBye {
		return []int64{m.HomeTeamID}
	}
	return []int64{m.HomeTeamID, m.AwayTeamID}
}

// Clone deep-copies the schedule.
func (s Schedule) Clone() Schedule {
	weeks := make([]Week, len(s.Weeks))
	for i, week := range s.Weeks {
		weeks[i] = week
		weeks[i].Matches = append([]Match(nil), week.Matches...)
		if weeks[i].Matches == nil {
			weeks[i].Matches = []Match{}
		}
	}
	return Schedule{Weeks: weeks}
}

func (s Schedule) weekIndex(number int) (int, error) {
	for i, week := range s.Weeks {
		if week.Number == number {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrWeekNotFound, number)
}

type Summary struct {
	Weeks      int         `json:"weeks"`
	PlayWeeks  int         `json:"playWeeks"`
	BreakWeeks int         `json:"breakWeeks"`
	Matches    int         `json:"matches"`
	Byes       int         `json:"byes"`
	FirstDate  models.Date `json:"firstDate"`
	LastDate   models.Date `json:"lastDate"`
}

func (s Schedule) Summary() Summary {
	summary := Summary{Weeks: len(s.Weeks)}
	for _, week := range s.Weeks {
		if summary.FirstDate.IsZero() || week.Date.Before(summary.FirstDate.Time) {
			summary.FirstDate = week.Date
		}
		if week.Date.After(summary.LastDate.Time) {
			summary.LastDate = week.Date
		}
		if week.IsBreak {
			summary.BreakWeeks++
			continue
		}
		summary.PlayWeeks++
		for _, match := range week.Matches {
			if match.IsBye {
				summary.Byes++
			} else {
				summary.Matches++
			}
		}
	}
	return summary
}

// TeamLoad counts how often a team is home, away or on a bye.
type TeamLoad struct {
	TeamID int64 `json:"teamId"`
	Home   int   `json:"home"`
	Away   int   `json:"away"`
	Byes   int   `json:"byes"`
}

func (s Schedule) TeamLoads() []TeamLoad {
	loads := make(map[int64]*TeamLoad)
	get := func(teamID int64) *TeamLoad {
		load, ok := loads[teamID]
		if !ok {
			load = &TeamLoad{TeamID: teamID}
			loads[teamID] = load
		}
		return load
	}
	for _, week := range s.Weeks {
		for _, match := range week.Matches {
			if match.IsBye {
				if match.HomeTeamID > 0 {
					get(match.HomeTeamID).Byes++
				}
				continue
			}
			if match.HomeTeamID > 0 {
				get(match.HomeTeamID).Home++
			}
			if match.AwayTeamID > 0 {
				get(match.AwayTeamID).Away++
			}
		}
	}

	result := make([]TeamLoad, 0, len(loads))
	for _, load := range loads {
		result = append(result, *load)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeamID < result[j].TeamID })
	return result
}
