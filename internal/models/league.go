// internal/models/league.go
package models

import "time"

const (
	SeasonStatusDraft     = "draft"
	SeasonStatusActive    = "active"
	SeasonStatusCompleted = "completed"

	MatchStatusScheduled = "scheduled"
	MatchStatusCompleted = "completed"
	MatchStatusCancelled = "cancelled"
)

type League struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sport       string    `json:"sport,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Season struct {
	ID        int64  `json:"id"`
	LeagueID  int64  `json:"leagueId"`
	Name      string `json:"name"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Status    string `json:"status"`
}

type Team struct {
	ID          int64  `json:"id"`
	SeasonID    int64  `json:"seasonId,omitempty"`
	Name        string `json:"name"`
	CaptainID   *int64 `json:"captainId,omitempty"`
	HomeVenueID *int64 `json:"homeVenueId,omitempty"`
}

type Player struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TeamID    *int64 `json:"teamId,omitempty"`
}

// FullName joins the first and last name.
func (p Player) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// SeasonParticipation links a player to a team for one season.
type SeasonParticipation struct {
	ID       int64     `json:"id"`
	SeasonID int64     `json:"seasonId"`
	TeamID   int64     `json:"teamId"`
	PlayerID int64     `json:"playerId"`
	Status   string    `json:"status,omitempty"`
	JoinedAt time.Time `json:"joinedAt,omitempty"`
}

type Match struct {
	ID            int64  `json:"id"`
	SeasonID      int64  `json:"seasonId"`
	WeekNumber    int    `json:"weekNumber"`
	ScheduledDate Date   `json:"scheduledDate"`
	HomeTeamID    int64  `json:"homeTeamId"`
	AwayTeamID    int64  `json:"awayTeamId"`
	VenueID       *int64 `json:"venueId,omitempty"`
	HomeScore     *int   `json:"homeScore,omitempty"`
	AwayScore     *int   `json:"awayScore,omitempty"`
	Status        string `json:"status"`
}

// Completed reports whether the match has a final score.
func (m Match) Completed() bool {
	return m.Status == MatchStatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}

type Venue struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	TableCount int    `json:"tableCount"`
}

type PlayerStats struct {
	PlayerID      int64   `json:"playerId"`
	SeasonID      int64   `json:"seasonId"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
}
