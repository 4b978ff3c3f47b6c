package leagueapi

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/codr1/leaguedesk/internal/models"
)

const defaultMaxSearchDistance = 3

// TeamMatch is a team ranked against a search term.
type TeamMatch struct {
	Team     models.Team `json:"team"`
	Distance int         `json:"distance"`
}

type PlayerMatch struct {
	Player   models.Player `json:"player"`
	Distance int           `json:"distance"`
}

// FindTeamsByName ranks teams by Levenshtein distance to term. Names that
// contain the term match with distance 0; others match when within
// maxDistance edits of the full name.
func FindTeamsByName(teams []models.Team, term string, maxDistance int) []TeamMatch {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	if maxDistance <= 0 {
		maxDistance = defaultMaxSearchDistance
	}

	var matches []TeamMatch
	for _, team := range teams {
		if distance, ok := nameDistance(term, team.Name, maxDistance); ok {
			matches = append(matches, TeamMatch{Team: team, Distance: distance})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return strings.ToLower(matches[i].Team.Name) < strings.ToLower(matches[j].Team.Name)
	})
	return matches
}

// FindPlayersByName ranks players by their full name, like FindTeamsByName.
func FindPlayersByName(players []models.Player, term string, maxDistance int) []PlayerMatch {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	if maxDistance <= 0 {
		maxDistance = defaultMaxSearchDistance
	}

	var matches []PlayerMatch
	for _, player := range players {
		if distance, ok := nameDistance(term, player.FullName(), maxDistance); ok {
			matches = append(matches, PlayerMatch{Player: player, Distance: distance})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return strings.ToLower(matches[i].Player.FullName()) < strings.ToLower(matches[j].Player.FullName())
	})
	return matches
}

func nameDistance(term, name string, maxDistance int) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, false
	}
	if strings.Contains(name, term) {
		return 0, true
	}
	distance := fuzzy.LevenshteinDistance(term, name)
	if distance <= maxDistance {
		return distance, true
	}
	return 0, false
}
