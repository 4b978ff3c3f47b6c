package schedule

import (
	"fmt"
	"sort"
)

type WarningKind string

const (
	KindInvalidMatch      WarningKind = "invalid_match"
	KindBreakWeekNotEmpty WarningKind = "break_week_not_empty"
	KindUnknownTeam       WarningKind = "unknown_team"
	KindUnknownVenue      WarningKind = "unknown_venue"
	KindTeamConflict      WarningKind = "team_conflict"
	KindVenueConflict     WarningKind = "venue_conflict"
	KindSeasonOverflow    WarningKind = "season_overflow"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

var kindOrder = map[WarningKind]int{
	KindInvalidMatch:      0,
	KindBreakWeekNotEmpty: 1,
	KindUnknownTeam:       2,
	KindUnknownVenue:      3,
	KindTeamConflict:      4,
	KindVenueConflict:     5,
	KindSeasonOverflow:    6,
}

type Warning struct {
	Kind       WarningKind `json:"kind"`
	Severity   Severity    `json:"severity"`
	WeekNumber int         `json:"weekNumber"`
	MatchIndex int         `json:"matchIndex"`
	TeamID     int64       `json:"teamId,omitempty"`
	VenueID    int64       `json:"venueId,omitempty"`
	Message    string      `json:"message"`
}

// HasErrors reports whether any warning blocks saving the schedule.
func HasErrors(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings inspects a proposed schedule. Structural problems (invalid
// matches, matches in break weeks, unknown teams or venues) are errors;
// double-booked teams, venues over their table count and weeks after the
// season end date are warnings. When teams is empty team membership is not
// checked. MatchIndex is -1 for week-level warnings.
func Warnings(sched Schedule, cfg Configuration, teams []Team) []Warning {
	teamNames := make(map[int64]string, len(teams))
	for _, team := range teams {
		teamNames[team.ID] = team.Name
	}
	venues := cfg.venueByID()

	teamLabel := func(id int64) string {
		if name := teamNames[id]; name != "" {
			return name
		}
		return fmt.Sprintf("team %d", id)
	}
	venueLabel := func(id int64) string {
		if venue, ok := venues[id]; ok && venue.Name != "" {
			return venue.Name
		}
		return fmt.Sprintf("venue %d", id)
	}

	warnings := []Warning{}
	add := func(w Warning) {
		switch w.Kind {
		case KindInvalidMatch, KindBreakWeekNotEmpty, KindUnknownTeam, KindUnknownVenue:
			w.Severity = SeverityError
		default:
			w.Severity = SeverityWarning
		}
		warnings = append(warnings, w)
	}

	overflowWeeks := 0
	firstOverflow := 0
	for _, week := range sched.Weeks {
		if week.IsBreak && len(week.Matches) > 0 {
			add(Warning{
				Kind:       KindBreakWeekNotEmpty,
				WeekNumber: week.Number,
				MatchIndex: -1,
				Message:    fmt.Sprintf("Week %d is a break week but has %d matches", week.Number, len(week.Matches)),
			})
		}

		appearances := make(map[int64]int)
		venueUse := make(map[int64]int)
		for i, match := range week.Matches {
			if err := match.Validate(); err != nil {
				add(Warning{
					Kind:       KindInvalidMatch,
					WeekNumber: week.Number,
					MatchIndex: i,
					Message:    fmt.Sprintf("Week %d match %d: %s", week.Number, i+1, err),
				})
			}
			for _, teamID := range match.Teams() {
				if teamID <= 0 {
					continue
				}
				appearances[teamID]++
				if len(teams) > 0 {
					if _, ok := teamNames[teamID]; !ok {
						add(Warning{
							Kind:       KindUnknownTeam,
							WeekNumber: week.Number,
							MatchIndex: i,
							TeamID:     teamID,
							Message:    fmt.Sprintf("Week %d match %d references unknown team %d", week.Number, i+1, teamID),
						})
					}
				}
			}
			if match.IsBye || match.VenueID <= 0 {
				continue
			}
			if _, ok := venues[match.VenueID]; !ok {
				add(Warning{
					Kind:       KindUnknownVenue,
					WeekNumber: week.Number,
					MatchIndex: i,
					VenueID:    match.VenueID,
					Message:    fmt.Sprintf("Week %d match %d uses venue %d which is not offered for this season", week.Number, i+1, match.VenueID),
				})
				continue
			}
			venueUse[match.VenueID]++
		}

		for _, teamID := range sortedKeys(appearances) {
			if count := appearances[teamID]; count > 1 {
				add(Warning{
					Kind:       KindTeamConflict,
					WeekNumber: week.Number,
					MatchIndex: -1,
					TeamID:     teamID,
					Message:    fmt.Sprintf("%s is scheduled %d times in week %d", teamLabel(teamID), count, week.Number),
				})
			}
		}
		for _, venueID := range sortedKeys(venueUse) {
			if used, tables := venueUse[venueID], venues[venueID].TableCount; used > tables {
				add(Warning{
					Kind:       KindVenueConflict,
					WeekNumber: week.Number,
					MatchIndex: -1,
					VenueID:    venueID,
					Message:    fmt.Sprintf("%s hosts %d matches in week %d but has %d tables", venueLabel(venueID), used, week.Number, tables),
				})
			}
		}

		if !cfg.EndDate.IsZero() && len(week.Matches) > 0 && week.Date.After(cfg.EndDate.Time) {
			overflowWeeks++
			if firstOverflow == 0 {
				firstOverflow = week.Number
			}
		}
	}

	if overflowWeeks > 0 {
		add(Warning{
			Kind:       KindSeasonOverflow,
			WeekNumber: firstOverflow,
			MatchIndex: -1,
			Message:    fmt.Sprintf("%d weeks are scheduled after the season end date %s", overflowWeeks, cfg.EndDate),
		})
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].WeekNumber != warnings[j].WeekNumber {
			return warnings[i].WeekNumber < warnings[j].WeekNumber
		}
		return kindOrder[warnings[i].Kind] < kindOrder[warnings[j].Kind]
	})
	return warnings
}

func sortedKeys(m map[int64]int) []int64 {
	keys := make([]int64, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
