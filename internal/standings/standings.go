// Package standings ranks season teams from completed match results.
package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/codr1/leaguedesk/internal/models"
)

type TeamStanding struct {
	Rank              int    `json:"rank"`
	TeamID            int64  `json:"teamId"`
	TeamName          string `json:"teamName"`
	MatchesPlayed     int    `json:"matchesPlayed"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	Draws             int    `json:"draws"`
	PointsFor         int    `json:"pointsFor"`
	PointsAgainst     int    `json:"pointsAgainst"`
	PointDifferential int    `json:"pointDifferential"`
}

type teamStats struct {
	TeamStanding
	headToHeadWins      map[int64]int
	headToHeadPointDiff map[int64]int
}

// Calculate ranks teams by wins, then head-to-head wins inside a tied
// group, point differential, head-to-head differential and finally name.
// Only completed matches with both scores count.
func Calculate(teams []models.Team, matches []models.Match) ([]TeamStanding, error) {
	if len(teams) == 0 {
		return nil, errors.New("at least one team is required")
	}

	stats := make(map[int64]*teamStats, len(teams))
	ordered := make([]*teamStats, 0, len(teams))
	for _, team := range teams {
		if _, ok := stats[team.ID]; ok {
			return nil, fmt.Errorf("team %d listed twice", team.ID)
		}
		entry := &teamStats{
			TeamStanding: TeamStanding{
				TeamID:   team.ID,
				TeamName: team.Name,
			},
			headToHeadWins:      make(map[int64]int),
			headToHeadPointDiff: make(map[int64]int),
		}
		stats[team.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, match := range matches {
		if !match.Completed() {
			continue
		}
		home, ok := stats[match.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("match %d references unknown team %d", match.ID, match.HomeTeamID)
		}
		away, ok := stats[match.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("match %d references unknown team %d", match.ID, match.AwayTeamID)
		}
		home.record(match.AwayTeamID, *match.HomeScore, *match.AwayScore)
		away.record(match.HomeTeamID, *match.AwayScore, *match.HomeScore)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Wins != ordered[j].Wins {
			return ordered[i].Wins > ordered[j].Wins
		}
		return ordered[i].TeamName < ordered[j].TeamName
	})

	sortStandingsByTiebreakers(ordered)

	standings := make([]TeamStanding, 0, len(ordered))
	for i, team := range ordered {
		team.Rank = i + 1
		standings = append(standings, team.TeamStanding)
	}
	return standings, nil
}

func (t *teamStats) record(opponentID int64, teamScore, opponentScore int) {
	t.MatchesPlayed++
	t.PointsFor += teamScore
	t.PointsAgainst += opponentScore
	t.PointDifferential = t.PointsFor - t.PointsAgainst

	switch {
	case teamScore > opponentScore:
		t.Wins++
		t.headToHeadWins[opponentID]++
	case teamScore < opponentScore:
		t.Losses++
	default:
		t.Draws++
	}
	t.headToHeadPointDiff[opponentID] += teamScore - opponentScore
}

func sortStandingsByTiebreakers(ordered []*teamStats) {
	if len(ordered) < 2 {
		return
	}

	start := 0
	for start < len(ordered) {
		end := start + 1
		for end < len(ordered) && ordered[end].Wins == ordered[start].Wins {
			end++
		}

		if end-start > 1 {
			group := ordered[start:end]
			groupSet := make(map[int64]struct{}, len(group))
			for _, team := range group {
				groupSet[team.TeamID] = struct{}{}
			}

			sort.SliceStable(group, func(i, j int) bool {
				winsI := sumInGroup(group[i].headToHeadWins, groupSet)
				winsJ := sumInGroup(group[j].headToHeadWins, groupSet)
				if winsI != winsJ {
					return winsI > winsJ
				}
				if group[i].PointDifferential != group[j].PointDifferential {
					return group[i].PointDifferential > group[j].PointDifferential
				}
				diffI := sumInGroup(group[i].headToHeadPointDiff, groupSet)
				diffJ := sumInGroup(group[j].headToHeadPointDiff, groupSet)
				if diffI != diffJ {
					return diffI > diffJ
				}
				return group[i].TeamName < group[j].TeamName
			})
		}

		start = end
	}
}

func sumInGroup(byOpponent map[int64]int, group map[int64]struct{}) int {
	total := 0
	for opponentID, value := range byOpponent {
		if _, ok := group[opponentID]; ok {
			total += value
		}
	}
	return total
}
