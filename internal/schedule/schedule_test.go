package schedule

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/codr1/leaguedesk/internal/models"
	"github.com/codr1/leaguedesk/internal/validation"
)

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return d
}

func makeTeams(n int, homeVenueID int64) []Team {
	teams := make([]Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, Team{ID: int64(i), Name: fmt.Sprintf("Team %d", i), HomeVenueID: homeVenueID})
	}
	return teams
}

func baseConfig(t *testing.T) Configuration {
	t.Helper()
	return Configuration{
		StartDate:          mustDate(t, "2024-01-01"),
		MatchesPerWeek:     2,
		TimesPlayEachOther: 1,
		Venues:             []VenueCapacity{{VenueID: 10, Name: "Main Hall", TableCount: 4}},
	}
}

func hasField(err error, field string) bool {
	errs, ok := validation.As(err)
	if !ok {
		return false
	}
	for _, fieldErr := range errs {
		if strings.HasPrefix(fieldErr.Field, field) {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		teams  int
		mutate func(*Configuration)
		field  string
	}{
		{name: "valid", teams: 4},
		{name: "missing start date", teams: 4, mutate: func(c *Configuration) { c.StartDate = models.Date{} }, field: "startDate"},
		{name: "end before start", teams: 4, mutate: func(c *Configuration) { c.EndDate = mustDate(t, "2023-12-01") }, field: "endDate"},
		{name: "single team", teams: 1, field: "teams"},
		{name: "too many matches per week", teams: 4, mutate: func(c *Configuration) { c.MatchesPerWeek = 3 }, field: "matchesPerWeek"},
		{name: "zero matches per week", teams: 4, mutate: func(c *Configuration) { c.MatchesPerWeek = 0 }, field: "matchesPerWeek"},
		{name: "too many repeats", teams: 4, mutate: func(c *Configuration) { c.TimesPlayEachOther = MaxTimesPlayEachOther + 1 }, field: "timesPlayEachOther"},
		{name: "duplicate break weeks", teams: 4, mutate: func(c *Configuration) { c.BreakWeeks = []int{3, 5, 3} }, field: "breakWeeks"},
		{name: "break week zero", teams: 4, mutate: func(c *Configuration) { c.BreakWeeks = []int{0} }, field: "breakWeeks"},
		{name: "no venues", teams: 4, mutate: func(c *Configuration) { c.Venues = nil }, field: "venues"},
		{name: "too many tables", teams: 4, mutate: func(c *Configuration) { c.Venues[0].TableCount = MaxTableCount + 1 }, field: "venues[0].tableCount"},
		{name: "zero tables", teams: 4, mutate: func(c *Configuration) { c.Venues[0].TableCount = 0 }, field: "venues[0].tableCount"},
		{name: "duplicate venue", teams: 4, mutate: func(c *Configuration) {
			c.Venues = append(c.Venues, VenueCapacity{VenueID: 10, TableCount: 2})
		}, field: "venues[1].venueId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := Validate(cfg, makeTeams(tt.teams, 0))
			if tt.field == "" {
				if err != nil {
					t.Fatalf("expected valid configuration, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error on %s", tt.field)
			}
			if !hasField(err, tt.field) {
				t.Fatalf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateDuplicateTeams(t *testing.T) {
	teams := append(makeTeams(3, 0), Team{ID: 2, Name: "Copy"})
	err := Validate(baseConfig(t), teams)
	if !hasField(err, "teams[3].id") {
		t.Fatalf("expected duplicate team error, got %v", err)
	}
}

func TestEstimateSchedule(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MatchesPerWeek = 3
	cfg.TimesPlayEachOther = 2
	cfg.BreakWeeks = []int{3, 5, 40}

	est := EstimateSchedule(cfg, makeTeams(6, 0))
	if est.TotalMatches != 30 {
		t.Errorf("TotalMatches = %d, want 30", est.TotalMatches)
	}
	if est.MatchesPerRound != 3 || est.Rounds != 10 || est.ByesPerRound != 0 {
		t.Errorf("rounds = %d x %d (byes %d), want 10 x 3 (byes 0)", est.Rounds, est.MatchesPerRound, est.ByesPerRound)
	}
	if est.PlayWeeks != 10 {
		t.Errorf("PlayWeeks = %d, want 10", est.PlayWeeks)
	}
	if est.TotalWeeks != 12 || est.BreakWeeks != 2 {
		t.Errorf("TotalWeeks = %d BreakWeeks = %d, want 12 and 2", est.TotalWeeks, est.BreakWeeks)
	}
	if got := est.LastWeekDate.String(); got != "2024-03-18" {
		t.Errorf("LastWeekDate = %s, want 2024-03-18", got)
	}
	if est.Conflicts() {
		t.Errorf("expected no conflicts, got %+v", est)
	}
}

func TestEstimateScheduleOddTeams(t *testing.T) {
	cfg := baseConfig(t)
	est := EstimateSchedule(cfg, makeTeams(7, 0))
	if est.TotalMatches != 21 || est.Rounds != 7 || est.ByesPerRound != 1 {
		t.Fatalf("unexpected estimate %+v", est)
	}
	if est.PlayWeeks != 11 {
		t.Errorf("PlayWeeks = %d, want 11", est.PlayWeeks)
	}
}

func TestEstimateScheduleConflicts(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MatchesPerWeek = 3
	cfg.EndDate = mustDate(t, "2024-01-15")
	cfg.Venues = []VenueCapacity{{VenueID: 10, Name: "Main Hall", TableCount: 2}}

	teams := makeTeams(6, 0)
	for i := 0; i < 3; i++ {
		teams[i].HomeVenueID = 10
	}

	est := EstimateSchedule(cfg, teams)
	if !est.CapacityConflict {
		t.Error("expected capacity conflict with 3 matches per week on 2 tables")
	}
	if !est.SeasonOverflow {
		t.Error("expected season overflow past 2024-01-15")
	}
	if len(est.VenueLoads) != 1 || !est.VenueLoads[0].Conflict || est.VenueLoads[0].PeakMatches != 3 {
		t.Fatalf("unexpected venue load %+v", est.VenueLoads)
	}

	cfg.AlternateHomeAway = true
	est = EstimateSchedule(cfg, teams)
	if est.VenueLoads[0].Conflict {
		t.Errorf("expected alternating home teams to fit, got %+v", est.VenueLoads[0])
	}
}

func TestEstimateScheduleRejectsRepeatCountsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		teams   int
		repeats int
	}{
		{name: "zero", teams: 4, repeats: 0},
		{name: "above maximum", teams: 4, repeats: MaxTimesPlayEachOther + 1},
		{name: "huge", teams: 100, repeats: 1_000_000_000_000},
		{name: "overflowing", teams: 3, repeats: 1 << 62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			cfg.MatchesPerWeek = 1
			cfg.TimesPlayEachOther = tt.repeats

			done := make(chan Estimate, 1)
			go func() { done <- EstimateSchedule(cfg, makeTeams(tt.teams, 0)) }()

			var est Estimate
			select {
			case est = <-done:
			case <-time.After(3 * time.Second):
				t.Fatal("EstimateSchedule did not return")
			}
			if est.TotalMatches != 0 || est.PlayWeeks != 0 || est.TotalWeeks != 0 || est.Rounds != 0 {
				t.Fatalf("expected empty counts, got %+v", est)
			}
			if est.TeamCount != tt.teams || est.TotalTables != 4 {
				t.Errorf("expected team and table totals to be kept, got %+v", est)
			}
		})
	}
}

func TestEstimateScheduleCountsBreaksArithmetically(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MatchesPerWeek = 1
	cfg.TimesPlayEachOther = MaxTimesPlayEachOther
	cfg.BreakWeeks = []int{30000, 19802, 1, 19800, -2, 1}

	est := EstimateSchedule(cfg, makeTeams(100, 0))
	if est.TotalMatches != 19800 || est.PlayWeeks != 19800 {
		t.Fatalf("TotalMatches = %d PlayWeeks = %d, want 19800 each", est.TotalMatches, est.PlayWeeks)
	}
	if est.BreakWeeks != 3 || est.TotalWeeks != 19803 {
		t.Fatalf("BreakWeeks = %d TotalWeeks = %d, want 3 and 19803", est.BreakWeeks, est.TotalWeeks)
	}
	if got, want := est.LastWeekDate.String(), cfg.WeekDate(19803).String(); got != want {
		t.Errorf("LastWeekDate = %s, want %s", got, want)
	}
}

func TestEstimateMatchesGenerateAtFullRounds(t *testing.T) {
	for _, teamCount := range []int{2, 3, 4, 5, 8, 9} {
		for repeats := 1; repeats <= 3; repeats++ {
			t.Run(fmt.Sprintf("%d teams x%d", teamCount, repeats), func(t *testing.T) {
				cfg := baseConfig(t)
				cfg.MatchesPerWeek = MatchesPerRound(teamCount)
				cfg.TimesPlayEachOther = repeats
				teams := makeTeams(teamCount, 0)

				sched, err := Generate(cfg, teams)
				if err != nil {
					t.Fatalf("Generate: %v", err)
				}
				est := EstimateSchedule(cfg, teams)
				summary := sched.Summary()
				if summary.PlayWeeks != est.PlayWeeks {
					t.Errorf("generated %d play weeks, estimated %d", summary.PlayWeeks, est.PlayWeeks)
				}
				if summary.Matches != est.TotalMatches {
					t.Errorf("generated %d matches, estimated %d", summary.Matches, est.TotalMatches)
				}
			})
		}
	}
}

func TestGenerateRoundRobin(t *testing.T) {
	cfg := baseConfig(t)
	teams := makeTeams(4, 0)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sched.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(sched.Weeks))
	}

	seen := make(map[string]int)
	for i, week := range sched.Weeks {
		if week.Number != i+1 {
			t.Errorf("week %d numbered %d", i+1, week.Number)
		}
		if want := cfg.StartDate.AddWeeks(i); !week.Date.Equal(want.Time) {
			t.Errorf("week %d date %s, want %s", week.Number, week.Date, want)
		}
		if len(week.Matches) != 2 {
			t.Errorf("week %d has %d matches, want 2", week.Number, len(week.Matches))
		}
		for _, match := range week.Matches {
			if err := match.Validate(); err != nil {
				t.Errorf("week %d: %v", week.Number, err)
			}
			lo, hi := match.HomeTeamID, match.AwayTeamID
			if lo > hi {
				lo, hi = hi, lo
			}
			seen[fmt.Sprintf("%d-%d", lo, hi)]++
		}
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct pairings, got %d", len(seen))
	}
	for pair, count := range seen {
		if count != 1 {
			t.Errorf("pair %s played %d times", pair, count)
		}
	}
	if warnings := Warnings(sched, cfg, teams); len(warnings) != 0 {
		t.Errorf("expected clean schedule, got %+v", warnings)
	}
}

func TestGenerateWithoutAlternationKeepsOrientation(t *testing.T) {
	cfg := baseConfig(t)
	cfg.TimesPlayEachOther = 2
	teams := makeTeams(4, 0)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	orientation := make(map[string]int)
	for _, week := range sched.Weeks {
		for _, match := range week.Matches {
			if match.AwayTeamID == 1 {
				t.Errorf("week %d: team 1 away without alternation: %+v", week.Number, match)
			}
			orientation[fmt.Sprintf("%d-%d", match.HomeTeamID, match.AwayTeamID)]++
		}
	}
	if len(orientation) != 6 {
		t.Fatalf("expected 6 oriented pairings, got %v", orientation)
	}
	for pair, count := range orientation {
		if count != 2 {
			t.Errorf("pairing %s played %d times with the same home team, want 2", pair, count)
		}
	}
}

func TestGenerateOddTeamsGivesByes(t *testing.T) {
	cfg := baseConfig(t)
	teams := makeTeams(5, 0)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	summary := sched.Summary()
	if summary.PlayWeeks != 5 || summary.Matches != 10 || summary.Byes != 5 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	for _, load := range sched.TeamLoads() {
		if load.Home+load.Away != 4 || load.Byes != 1 {
			t.Errorf("team %d load %+v, want 4 matches and 1 bye", load.TeamID, load)
		}
	}
	for _, week := range sched.Weeks {
		for _, match := range week.Matches {
			if match.IsBye && (match.AwayTeamID != 0 || match.VenueID != 0) {
				t.Errorf("week %d bye carries opponent or venue: %+v", week.Number, match)
			}
		}
	}
}

func TestGenerateBreakWeeks(t *testing.T) {
	cfg := baseConfig(t)
	cfg.BreakWeeks = []int{2, 10}

	sched, err := Generate(cfg, makeTeams(4, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sched.Weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(sched.Weeks))
	}
	second := sched.Weeks[1]
	if !second.IsBreak || len(second.Matches) != 0 {
		t.Fatalf("week 2 should be an empty break, got %+v", second)
	}
	if got := sched.Weeks[3].Date.String(); got != "2024-01-22" {
		t.Errorf("week 4 date = %s, want 2024-01-22", got)
	}
}

func TestGenerateDoubleRoundRobinAlternates(t *testing.T) {
	cfg := baseConfig(t)
	cfg.TimesPlayEachOther = 2
	cfg.AlternateHomeAway = true
	teams := makeTeams(4, 0)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	fixtures := make(map[[2]int64]int)
	for _, week := range sched.Weeks {
		for _, match := range week.Matches {
			fixtures[[2]int64{match.HomeTeamID, match.AwayTeamID}]++
		}
	}
	if len(fixtures) != 12 {
		t.Fatalf("expected every ordered pairing once, got %d fixtures", len(fixtures))
	}
	for fixture, count := range fixtures {
		if count != 1 {
			t.Errorf("fixture %v scheduled %d times", fixture, count)
		}
	}

	var homeRun []bool
	for _, week := range sched.Weeks[:3] {
		for _, match := range week.Matches {
			if match.HomeTeamID == 1 {
				homeRun = append(homeRun, true)
			} else if match.AwayTeamID == 1 {
				homeRun = append(homeRun, false)
			}
		}
	}
	for i := 1; i < len(homeRun); i++ {
		if homeRun[i] == homeRun[i-1] {
			t.Fatalf("team 1 does not alternate in the first cycle: %v", homeRun)
		}
	}
}

func TestGenerateSingleMatchPerWeek(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MatchesPerWeek = 1
	teams := makeTeams(6, 0)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sched.Weeks) != 15 {
		t.Fatalf("expected 15 weeks, got %d", len(sched.Weeks))
	}
	if est := EstimateSchedule(cfg, teams); est.PlayWeeks != 15 {
		t.Errorf("estimate PlayWeeks = %d, want 15", est.PlayWeeks)
	}
}

func TestGenerateVenueAssignment(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Venues = []VenueCapacity{
		{VenueID: 10, Name: "Main Hall", TableCount: 1},
		{VenueID: 20, Name: "Annex", TableCount: 1},
	}
	teams := makeTeams(4, 10)

	sched, err := Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, week := range sched.Weeks {
		if week.Matches[0].VenueID != 10 || week.Matches[1].VenueID != 20 {
			t.Errorf("week %d venues = %d, %d; want 10, 20", week.Number, week.Matches[0].VenueID, week.Matches[1].VenueID)
		}
	}
	if warnings := Warnings(sched, cfg, teams); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", warnings)
	}

	cfg.Venues = cfg.Venues[:1]
	sched, err = Generate(cfg, teams)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	warnings := Warnings(sched, cfg, teams)
	if len(warnings) != 3 {
		t.Fatalf("expected one venue conflict per week, got %+v", warnings)
	}
	for _, w := range warnings {
		if w.Kind != KindVenueConflict || w.Severity != SeverityWarning || w.VenueID != 10 {
			t.Errorf("unexpected warning %+v", w)
		}
	}
	if HasErrors(warnings) {
		t.Error("venue conflicts should not block saving")
	}
}

func TestGenerateRejectsInvalidConfiguration(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MatchesPerWeek = 5
	if _, err := Generate(cfg, makeTeams(4, 0)); !hasField(err, "matchesPerWeek") {
		t.Fatalf("expected matchesPerWeek error, got %v", err)
	}
}

func TestWarnings(t *testing.T) {
	cfg := baseConfig(t)
	cfg.EndDate = mustDate(t, "2024-01-08")
	cfg.Venues[0].TableCount = 1
	teams := makeTeams(4, 0)

	sched := Schedule{Weeks: []Week{
		{Number: 1, Date: mustDate(t, "2024-01-01"), Matches: []Match{
			{HomeTeamID: 1, AwayTeamID: 2, VenueID: 10},
			{HomeTeamID: 1, AwayTeamID: 3, VenueID: 10},
		}},
		{Number: 2, Date: mustDate(t, "2024-01-08"), IsBreak: true, Matches: []Match{
			{HomeTeamID: 3, AwayTeamID: 4, VenueID: 10},
		}},
		{Number: 3, Date: mustDate(t, "2024-01-15"), Matches: []Match{
			{HomeTeamID: 2, AwayTeamID: 2, VenueID: 10},
			{HomeTeamID: 99, AwayTeamID: 4, VenueID: 77},
		}},
	}}

	warnings := Warnings(sched, cfg, teams)
	want := []struct {
		week     int
		kind     WarningKind
		severity Severity
	}{
		{1, KindTeamConflict, SeverityWarning},
		{1, KindVenueConflict, SeverityWarning},
		{2, KindBreakWeekNotEmpty, SeverityError},
		{3, KindInvalidMatch, SeverityError},
		{3, KindUnknownTeam, SeverityError},
		{3, KindUnknownVenue, SeverityError},
		{3, KindTeamConflict, SeverityWarning},
		{3, KindSeasonOverflow, SeverityWarning},
	}
	if len(warnings) != len(want) {
		t.Fatalf("expected %d warnings, got %d: %+v", len(want), len(warnings), warnings)
	}
	for i, w := range want {
		got := warnings[i]
		if got.WeekNumber != w.week || got.Kind != w.kind || got.Severity != w.severity {
			t.Errorf("warning %d = week %d %s/%s, want week %d %s/%s", i, got.WeekNumber, got.Kind, got.Severity, w.week, w.kind, w.severity)
		}
	}
	if !HasErrors(warnings) {
		t.Error("expected blocking errors")
	}
	if !strings.Contains(warnings[0].Message, "Team 1") {
		t.Errorf("expected team name in message, got %q", warnings[0].Message)
	}
}

func sampleSchedule(t *testing.T) Schedule {
	t.Helper()
	return Schedule{Weeks: []Week{
		{Number: 1, Date: mustDate(t, "2024-01-01"), Matches: []Match{
			{HomeTeamID: 1, AwayTeamID: 2, VenueID: 10},
			{HomeTeamID: 3, IsBye: true},
		}},
		{Number: 2, Date: mustDate(t, "2024-01-08"), IsBreak: true, Matches: []Match{}},
		{Number: 3, Date: mustDate(t, "2024-01-15"), Matches: []Match{}},
	}}
}

func TestUpdateMatchMovesWeeks(t *testing.T) {
	original := sampleSchedule(t)

	edited, err := original.UpdateMatch(1, 0, MatchEdit{HomeTeamID: 2, AwayTeamID: 1, VenueID: 10, WeekNumber: 3})
	if err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}
	if len(edited.Weeks[0].Matches) != 1 || len(edited.Weeks[2].Matches) != 1 {
		t.Fatalf("match not moved: %+v", edited.Weeks)
	}
	if got := edited.Weeks[2].Matches[0]; got.HomeTeamID != 2 || got.AwayTeamID != 1 {
		t.Errorf("moved match = %+v", got)
	}
	if len(original.Weeks[0].Matches) != 2 || len(original.Weeks[2].Matches) != 0 {
		t.Error("original schedule was modified")
	}
}

func TestEditErrors(t *testing.T) {
	sched := sampleSchedule(t)

	tests := []struct {
		name string
		edit func() error
		want error
	}{
		{"move into break week", func() error {
			_, err := sched.UpdateMatch(1, 0, MatchEdit{HomeTeamID: 1, AwayTeamID: 2, VenueID: 10, WeekNumber: 2})
			return err
		}, ErrBreakWeek},
		{"team plays itself", func() error {
			_, err := sched.UpdateMatch(1, 0, MatchEdit{HomeTeamID: 1, AwayTeamID: 1, VenueID: 10})
			return err
		}, ErrSameTeam},
		{"bye with venue", func() error {
			_, err := sched.AddMatch(3, Match{HomeTeamID: 4, IsBye: true, VenueID: 10})
			return err
		}, ErrByeHasVenue},
		{"add to break week", func() error {
			_, err := sched.AddMatch(2, Match{HomeTeamID: 1, AwayTeamID: 2, VenueID: 10})
			return err
		}, ErrBreakWeek},
		{"swap bye", func() error {
			_, err := sched.SwapHomeAway(1, 1)
			return err
		}, ErrSwapBye},
		{"missing match", func() error {
			_, err := sched.RemoveMatch(1, 5)
			return err
		}, ErrMatchNotFound},
		{"missing week", func() error {
			_, err := sched.RemoveMatch(9, 0)
			return err
		}, ErrWeekNotFound},
		{"break week with matches", func() error {
			_, err := sched.SetBreakWeek(1, true)
			return err
		}, ErrWeekNotEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.edit(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSwapRemoveAndWeekEdits(t *testing.T) {
	sched := sampleSchedule(t)

	swapped, err := sched.SwapHomeAway(1, 0)
	if err != nil {
		t.Fatalf("SwapHomeAway: %v", err)
	}
	if m := swapped.Weeks[0].Matches[0]; m.HomeTeamID != 2 || m.AwayTeamID != 1 {
		t.Errorf("swap result %+v", m)
	}

	removed, err := swapped.RemoveMatch(1, 1)
	if err != nil {
		t.Fatalf("RemoveMatch: %v", err)
	}
	if len(removed.Weeks[0].Matches) != 1 || len(swapped.Weeks[0].Matches) != 2 {
		t.Errorf("remove should only affect the copy")
	}

	unbroken, err := removed.SetBreakWeek(2, false)
	if err != nil {
		t.Fatalf("SetBreakWeek: %v", err)
	}
	if unbroken.Weeks[1].IsBreak {
		t.Error("week 2 should be a play week")
	}

	moved, err := unbroken.SetWeekDate(3, mustDate(t, "2024-01-17"))
	if err != nil {
		t.Fatalf("SetWeekDate: %v", err)
	}
	if got := moved.Weeks[2].Date.String(); got != "2024-01-17" {
		t.Errorf("week 3 date = %s", got)
	}

	extended := moved.AppendWeek()
	last := extended.Weeks[len(extended.Weeks)-1]
	if last.Number != 4 || last.Date.String() != "2024-01-24" {
		t.Errorf("appended week = %d on %s", last.Number, last.Date)
	}
}
