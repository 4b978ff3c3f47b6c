package standings

import (
	"testing"

	"github.com/codr1/leaguedesk/internal/models"
)

func score(v int) *int { return &v }

func completed(id, home, away int64, homeScore, awayScore int) models.Match {
	return models.Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  score(homeScore),
		AwayScore:  score(awayScore),
		Status:     models.MatchStatusCompleted,
	}
}

func TestCalculateHeadToHeadBreaksTie(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Aces"}, {ID: 2, Name: "Breakers"}, {ID: 3, Name: "Cues"}}
	matches := []models.Match{
		completed(1, 2, 1, 5, 3), // Breakers beat Aces
		completed(2, 1, 3, 9, 1), // Aces crush Cues
		completed(3, 3, 2, 6, 4), // Cues beat Breakers
		completed(4, 2, 3, 7, 0), // Breakers beat Cues
		{ID: 5, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled},
	}

	got, err := Calculate(teams, matches)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	wantOrder := []int64{2, 1, 3}
	for i, id := range wantOrder {
		if got[i].TeamID != id || got[i].Rank != i+1 {
			t.Fatalf("position %d = team %d rank %d, want team %d", i, got[i].TeamID, got[i].Rank, id)
		}
	}
	if got[0].Wins != 2 || got[0].Losses != 1 || got[0].MatchesPlayed != 3 {
		t.Errorf("Breakers record = %+v", got[0])
	}
	if got[1].PointDifferential != 6 {
		t.Errorf("Aces differential = %d, want 6", got[1].PointDifferential)
	}
}

func TestCalculateTiedGroupUsesHeadToHead(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Aces"}, {ID: 2, Name: "Breakers"}}
	matches := []models.Match{
		completed(1, 1, 2, 2, 3), // Breakers win the meeting
		completed(2, 1, 2, 4, 4), // draw
	}

	got, err := Calculate(teams, matches)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got[0].TeamID != 2 {
		t.Fatalf("expected Breakers first, got %+v", got)
	}
	if got[0].Draws != 1 || got[1].Draws != 1 {
		t.Errorf("expected one draw each, got %d and %d", got[0].Draws, got[1].Draws)
	}
}

func TestCalculateNameOrderWithoutResults(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Cues"}, {ID: 2, Name: "Aces"}}
	got, err := Calculate(teams, nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got[0].TeamName != "Aces" || got[1].TeamName != "Cues" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestCalculateRejectsUnknownTeam(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "Aces"}}
	if _, err := Calculate(teams, []models.Match{completed(9, 1, 7, 1, 0)}); err == nil {
		t.Fatal("expected error for unknown team")
	}
}
