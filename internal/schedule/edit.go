package schedule

import (
	"errors"
	"fmt"

	"github.com/codr1/leaguedesk/internal/models"
)

var (
	ErrWeekNotFound  = errors.New("week not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrBreakWeek     = errors.New("break weeks cannot hold matches")
	ErrWeekNotEmpty  = errors.New("week still has matches")
	ErrSwapBye       = errors.New("a bye has no away team to swap")
)

// MatchEdit replaces a match. WeekNumber moves the match to another week
// when it is non-zero and differs from the current one.
type MatchEdit struct {
	HomeTeamID int64 `json:"homeTeamId"`
	AwayTeamID int64 `json:"awayTeamId"`
	VenueID    int64 `json:"venueId"`
	IsBye      bool  `json:"isBye"`
	WeekNumber int   `json:"weekNumber"`
}

func (e MatchEdit) match() Match {
	return Match{HomeTeamID: e.HomeTeamID, AwayTeamID: e.AwayTeamID, VenueID: e.VenueID, IsBye: e.IsBye}
}

// All edit methods return a modified copy; the receiver is never changed.

func (s Schedule) locate(week, index int) (int, error) {
	wi, err := s.weekIndex(week)
	if err != nil {
		return -1, err
	}
	if index < 0 || index >= len(s.Weeks[wi].Matches) {
		return -1, fmt.Errorf("%w: week %d index %d", ErrMatchNotFound, week, index)
	}
	return wi, nil
}

func (s Schedule) UpdateMatch(week, index int, edit MatchEdit) (Schedule, error) {
	wi, err := s.locate(week, index)
	if err != nil {
		return s, err
	}
	match := edit.match()
	if err := match.Validate(); err != nil {
		return s, err
	}

	target := wi
	if edit.WeekNumber != 0 && edit.WeekNumber != week {
		target, err = s.weekIndex(edit.WeekNumber)
		if err != nil {
			return s, err
		}
	}
	if s.Weeks[target].IsBreak {
		return s, fmt.Errorf("%w: week %d", ErrBreakWeek, s.Weeks[target].Number)
	}

	out := s.Clone()
	if target == wi {
		out.Weeks[wi].Matches[index] = match
		return out, nil
	}
	out.Weeks[wi].Matches = removeAt(out.Weeks[wi].Matches, index)
	out.Weeks[target].Matches = append(out.Weeks[target].Matches, match)
	return out, nil
}

func (s Schedule) SwapHomeAway(week, index int) (Schedule, error) {
	wi, err := s.locate(week, index)
	if err != nil {
		return s, err
	}
	if s.Weeks[wi].Matches[index].IsBye {
		return s, ErrSwapBye
	}
	out := s.Clone()
	m := &out.Weeks[wi].Matches[index]
	m.HomeTeamID, m.AwayTeamID = m.AwayTeamID, m.HomeTeamID
	return out, nil
}

func (s Schedule) AddMatch(week int, match Match) (Schedule, error) {
	wi, err := s.weekIndex(week)
	if err != nil {
		return s, err
	}
	if s.Weeks[wi].IsBreak {
		return s, fmt.Errorf("%w: week %d", ErrBreakWeek, week)
	}
	if err := match.Validate(); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Weeks[wi].Matches = append(out.Weeks[wi].Matches, match)
	return out, nil
}

func (s Schedule) RemoveMatch(week, index int) (Schedule, error) {
	wi, err := s.locate(week, index)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	out.Weeks[wi].Matches = removeAt(out.Weeks[wi].Matches, index)
	return out, nil
}

func (s Schedule) SetWeekDate(week int, date models.Date) (Schedule, error) {
	wi, err := s.weekIndex(week)
	if err != nil {
		return s, err
	}
	if date.IsZero() {
		return s, errors.New("date is required")
	}
	out := s.Clone()
	out.Weeks[wi].Date = date
	return out, nil
}

// SetBreakWeek marks a week as a break or play week. Only an empty week can
// become a break.
func (s Schedule) SetBreakWeek(week int, isBreak bool) (Schedule, error) {
	wi, err := s.weekIndex(week)
	if err != nil {
		return s, err
	}
	if isBreak && len(s.Weeks[wi].Matches) > 0 {
		return s, fmt.Errorf("%w: week %d has %d", ErrWeekNotEmpty, week, len(s.Weeks[wi].Matches))
	}
	out := s.Clone()
	out.Weeks[wi].IsBreak = isBreak
	return out, nil
}

// AppendWeek adds an empty play week one week after the last one.
func (s Schedule) AppendWeek() Schedule {
	out := s.Clone()
	next := Week{Number: 1, Matches: []Match{}}
	if n := len(out.Weeks); n > 0 {
		last := out.Weeks[n-1]
		next.Number = last.Number + 1
		next.Date = last.Date.AddWeeks(1)
	}
	out.Weeks = append(out.Weeks, next)
	return out
}

func removeAt(matches []Match, index int) []Match {
	return append(matches[:index], matches[index+1:]...)
}
