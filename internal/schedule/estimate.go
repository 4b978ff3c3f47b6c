package schedule

import (
	"sort"

	"github.com/codr1/leaguedesk/internal/models"
)

// VenueLoad compares how many matches a venue may host in a single week
// against its table count.
type VenueLoad struct {
	VenueID     int64  `json:"venueId"`
	Name        string `json:"name,omitempty"`
	TableCount  int    `json:"tableCount"`
	HomeTeams   int    `json:"homeTeams"`
	PeakMatches int    `json:"peakMatches"`
	Conflict    bool   `json:"conflict"`
}

type Estimate struct {
	TeamCount        int         `json:"teamCount"`
	TotalMatches     int         `json:"totalMatches"`
	MatchesPerRound  int         `json:"matchesPerRound"`
	Rounds           int         `json:"rounds"`
	ByesPerRound     int         `json:"byesPerRound"`
	PlayWeeks        int         `json:"playWeeks"`
	BreakWeeks       int         `json:"breakWeeks"`
	TotalWeeks       int         `json:"totalWeeks"`
	LastWeekDate     models.Date `json:"lastWeekDate"`
	TotalTables      int         `json:"totalTables"`
	CapacityConflict bool        `json:"capacityConflict"`
	SeasonOverflow   bool        `json:"seasonOverflow"`
	VenueLoads       []VenueLoad `json:"venueLoads"`
}

// Conflicts reports whether any capacity or calendar problem was found.
func (e Estimate) Conflicts() bool {
	if e.CapacityConflict || e.SeasonOverflow {
		return true
	}
	for _, load := range e.VenueLoads {
		if load.Conflict {
			return true
		}
	}
	return false
}

// EstimateSchedule derives match and week counts from cfg without building
// fixtures. Weeks are ceil(total matches / matches per week); the local
// preview may need more when pairings cannot be packed tightly. Counts stay
// zero when times-play-each-other is outside 1..MaxTimesPlayEachOther.
func EstimateSchedule(cfg Configuration, teams []Team) Estimate {
	teamCount := len(teams)
	est := Estimate{
		TeamCount:  teamCount,
		VenueLoads: []VenueLoad{},
	}
	for _, venue := range cfg.Venues {
		est.TotalTables += venue.TableCount
	}
	if teamCount < MinTeams || cfg.TimesPlayEachOther < 1 || cfg.TimesPlayEachOther > MaxTimesPlayEachOther {
		return est
	}

	repeats := cfg.TimesPlayEachOther
	est.TotalMatches = teamCount * (teamCount - 1) * repeats / 2
	est.MatchesPerRound = MatchesPerRound(teamCount)
	if teamCount%2 == 0 {
		est.Rounds = (teamCount - 1) * repeats
	} else {
		est.Rounds = teamCount * repeats
		est.ByesPerRound = 1
	}

	perWeek := cfg.MatchesPerWeek
	if perWeek <= 0 || perWeek > est.MatchesPerRound {
		perWeek = est.MatchesPerRound
	}
	est.PlayWeeks = ceilDiv(est.TotalMatches, perWeek)

	est.TotalWeeks = est.PlayWeeks
	for _, week := range sortedBreakWeeks(cfg) {
		if week > est.TotalWeeks {
			break
		}
		est.BreakWeeks++
		est.TotalWeeks++
	}
	if !cfg.StartDate.IsZero() {
		est.LastWeekDate = cfg.WeekDate(est.TotalWeeks)
		if !cfg.EndDate.IsZero() && est.LastWeekDate.After(cfg.EndDate.Time) {
			est.SeasonOverflow = true
		}
	}

	est.CapacityConflict = cfg.MatchesPerWeek > 0 && cfg.MatchesPerWeek > est.TotalTables

	homeTeams := make(map[int64]int)
	for _, team := range teams {
		if team.HomeVenueID > 0 {
			homeTeams[team.HomeVenueID]++
		}
	}
	for _, venue := range cfg.Venues {
		load := VenueLoad{
			VenueID:    venue.VenueID,
			Name:       venue.Name,
			TableCount: venue.TableCount,
			HomeTeams:  homeTeams[venue.VenueID],
		}
		peak := load.HomeTeams
		if cfg.AlternateHomeAway {
			peak = ceilDiv(peak, 2)
		}
		if peak > perWeek {
			peak = perWeek
		}
		load.PeakMatches = peak
		load.Conflict = peak > venue.TableCount
		est.VenueLoads = append(est.VenueLoads, load)
	}

	return est
}

// sortedBreakWeeks returns the distinct positive break weeks in ascending
// order.
func sortedBreakWeeks(cfg Configuration) []int {
	set := cfg.breakWeekSet()
	weeks := make([]int, 0, len(set))
	for week := range set {
		if week > 0 {
			weeks = append(weeks, week)
		}
	}
	sort.Ints(weeks)
	return weeks
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
