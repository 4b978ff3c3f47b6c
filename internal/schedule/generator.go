package schedule

type roundPair struct {
	Round int
	Home  Team
	Away  Team
}

// Generate builds a local preview of the season using the circle method.
// Each cycle of TimesPlayEachOther repeats the base rounds; with
// AlternateHomeAway set, odd cycles mirror home and away. Pairings are
// packed greedily into weeks of at most MatchesPerWeek matches with no team
// playing twice in a week, and break weeks are emitted empty.
func Generate(cfg Configuration, teams []Team) (Schedule, error) {
	if err := Validate(cfg, teams); err != nil {
		return Schedule{}, err
	}

	base := buildRoundRobinRounds(teams, cfg.AlternateHomeAway)
	pending := make([]roundPair, 0, len(base)*MatchesPerRound(len(teams))*cfg.TimesPlayEachOther)
	for cycle := 0; cycle < cfg.TimesPlayEachOther; cycle++ {
		mirror := cfg.AlternateHomeAway && cycle%2 == 1
		for _, rd := range base {
			for _, pair := range rd {
				if mirror {
					pair.Home, pair.Away = pair.Away, pair.Home
				}
				pair.Round += cycle * len(base)
				pending = append(pending, pair)
			}
		}
	}

	breaks := cfg.breakWeekSet()
	perRound := MatchesPerRound(len(teams))
	oddTeams := len(teams)%2 == 1
	assigner := newVenueAssigner(cfg.Venues)

	var weeks []Week
	for number := 1; len(pending) > 0; number++ {
		week := Week{Number: number, Date: cfg.WeekDate(number), Matches: []Match{}}
		if _, ok := breaks[number]; ok {
			week.IsBreak = true
			weeks = append(weeks, week)
			continue
		}

		busy := make(map[int64]bool, len(teams))
		rest := pending[:0:0]
		assigner.reset()
		for _, pair := range pending {
			if len(week.Matches) >= cfg.MatchesPerWeek || busy[pair.Home.ID] || busy[pair.Away.ID] {
				rest = append(rest, pair)
				continue
			}
			busy[pair.Home.ID] = true
			busy[pair.Away.ID] = true
			week.Matches = append(week.Matches, Match{
				HomeTeamID: pair.Home.ID,
				AwayTeamID: pair.Away.ID,
				VenueID:    assigner.assign(pair.Home.HomeVenueID),
			})
		}

		if oddTeams && len(week.Matches) == perRound {
			for _, team := range teams {
				if !busy[team.ID] {
					week.Matches = append(week.Matches, Match{HomeTeamID: team.ID, IsBye: true})
					break
				}
			}
		}

		pending = rest
		weeks = append(weeks, week)
	}

	return Schedule{Weeks: weeks}, nil
}

// buildRoundRobinRounds pairs every team once per round. With an odd team
// count a nil placeholder gives one team a bye each round. Without alternate
// the left side of each slot is always home.
func buildRoundRobinRounds(teams []Team, alternate bool) [][]roundPair {
	working := make([]*Team, 0, len(teams)+1)
	for i := range teams {
		working = append(working, &teams[i])
	}
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	rounds := len(working) - 1
	result := make([][]roundPair, 0, rounds)
	for r := 0; r < rounds; r++ {
		current := make([]roundPair, 0, len(working)/2)
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			if left == nil || right == nil {
				continue
			}
			home := *left
			away := *right
			if alternate && (i == 0 && r%2 == 1 || i > 0 && (i+r)%2 == 1) {
				home, away = away, home
			}
			current = append(current, roundPair{
				Round: r + 1,
				Home:  home,
				Away:  away,
			})
		}
		result = append(result, current)
		rotateTeams(working)
	}
	return result
}

func rotateTeams(teams []*Team) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}

// venueAssigner hands out tables for a single week. A home team plays at
// its home venue while a table is free there; otherwise the first venue
// with a free table is used. When every table is taken the match is
// overbooked at the home venue (or the first venue) and surfaces as a
// venue conflict warning.
type venueAssigner struct {
	venues []VenueCapacity
	byID   map[int64]VenueCapacity
	used   map[int64]int
}

func newVenueAssigner(venues []VenueCapacity) *venueAssigner {
	byID := make(map[int64]VenueCapacity, len(venues))
	for _, venue := range venues {
		byID[venue.VenueID] = venue
	}
	return &venueAssigner{venues: venues, byID: byID, used: make(map[int64]int)}
}

func (a *venueAssigner) reset() {
	clear(a.used)
}

func (a *venueAssigner) assign(homeVenueID int64) int64 {
	if venue, ok := a.byID[homeVenueID]; ok && a.used[venue.VenueID] < venue.TableCount {
		a.used[venue.VenueID]++
		return venue.VenueID
	}
	for _, venue := range a.venues {
		if a.used[venue.VenueID] < venue.TableCount {
			a.used[venue.VenueID]++
			return venue.VenueID
		}
	}
	chosen := a.venues[0].VenueID
	if _, ok := a.byID[homeVenueID]; ok {
		chosen = homeVenueID
	}
	a.used[chosen]++
	return chosen
}
