// Package drafts persists schedule previews between edits until they are
// saved to the backend or expire.
package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codr1/leaguedesk/internal/db"
	dbgen "github.com/codr1/leaguedesk/internal/db/generated"
	"github.com/codr1/leaguedesk/internal/schedule"
)

const (
	SourceLocal  = "local"
	SourceServer = "server"
)

var (
	ErrNotFound = errors.New("draft not found")
	// ErrConflict is returned when the draft changed since the caller read it.
	ErrConflict = errors.New("draft was modified by another request")
)

type Draft struct {
	ID            string                 `json:"id"`
	SeasonID      int64                  `json:"seasonId"`
	Source        string                 `json:"source"`
	Configuration schedule.Configuration `json:"configuration"`
	Teams         []schedule.Team        `json:"teams"`
	Schedule      schedule.Schedule      `json:"schedule"`
	Revision      int64                  `json:"revision"`
	SavedAt       *time.Time             `json:"savedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type Store struct {
	db  *db.DB
	now func() time.Time
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) Create(ctx context.Context, seasonID int64, source string, cfg schedule.Configuration, teams []schedule.Team, sched schedule.Schedule) (Draft, error) {
	if seasonID <= 0 {
		return Draft{}, errors.New("season ID is required")
	}
	if source != SourceLocal && source != SourceServer {
		return Draft{}, fmt.Errorf("unknown draft source %q", source)
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Draft{}, fmt.Errorf("encode configuration: %w", err)
	}
	teamsJSON, err := json.Marshal(teams)
	if err != nil {
		return Draft{}, fmt.Errorf("encode teams: %w", err)
	}
	weeksJSON, err := encodeWeeks(sched)
	if err != nil {
		return Draft{}, err
	}

	row, err := s.db.Queries.CreateDraft(ctx, dbgen.CreateDraftParams{
		ID:            uuid.NewString(),
		SeasonID:      seasonID,
		Source:        source,
		Configuration: string(cfgJSON),
		Teams:         string(teamsJSON),
		Weeks:         weeksJSON,
		Now:           s.now(),
	})
	if err != nil {
		return Draft{}, fmt.Errorf("create draft: %w", err)
	}
	return fromRow(row)
}

func (s *Store) Get(ctx context.Context, id string) (Draft, error) {
	row, err := s.db.Queries.GetDraft(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, fmt.Errorf("get draft: %w", err)
	}
	return fromRow(row)
}

func (s *Store) ListBySeason(ctx context.Context, seasonID int64) ([]Draft, error) {
	rows, err := s.db.Queries.ListDraftsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	result := make([]Draft, 0, len(rows))
	for _, row := range rows {
		draft, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, draft)
	}
	return result, nil
}

// Edit applies fn to the stored schedule inside a transaction. A positive
// expectedRevision must match the stored revision or ErrConflict is returned.
// An edited draft no longer matches the backend and is marked unsaved.
func (s *Store) Edit(ctx context.Context, id string, expectedRevision int64, fn func(schedule.Schedule) (schedule.Schedule, error)) (Draft, error) {
	var updated Draft
	err := s.db.RunInTx(ctx, func(tx *db.DB) error {
		row, err := tx.Queries.GetDraft(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get draft: %w", err)
		}
		if expectedRevision > 0 && row.Revision != expectedRevision {
			return ErrConflict
		}
		current, err := fromRow(row)
		if err != nil {
			return err
		}

		next, err := fn(current.Schedule)
		if err != nil {
			return err
		}
		weeksJSON, err := encodeWeeks(next)
		if err != nil {
			return err
		}

		row, err = tx.Queries.UpdateDraftWeeks(ctx, dbgen.UpdateDraftWeeksParams{
			Weeks:    weeksJSON,
			Now:      s.now(),
			ID:       id,
			Revision: row.Revision,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			return fmt.Errorf("update draft: %w", err)
		}
		updated, err = fromRow(row)
		return err
	})
	return updated, err
}

func (s *Store) MarkSaved(ctx context.Context, id string) (Draft, error) {
	row, err := s.db.Queries.MarkDraftSaved(ctx, dbgen.MarkDraftSavedParams{Now: s.now(), ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, fmt.Errorf("mark draft saved: %w", err)
	}
	return fromRow(row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	affected, err := s.db.Queries.DeleteDraft(ctx, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneStale removes unsaved drafts untouched for longer than ttl.
func (s *Store) PruneStale(ctx context.Context, ttl time.Duration) (int64, error) {
	removed, err := s.db.Queries.DeleteStaleDrafts(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("prune drafts: %w", err)
	}
	return removed, nil
}

func encodeWeeks(sched schedule.Schedule) (string, error) {
	weeks := sched.Weeks
	if weeks == nil {
		weeks = []schedule.Week{}
	}
	data, err := json.Marshal(weeks)
	if err != nil {
		return "", fmt.Errorf("encode weeks: %w", err)
	}
	return string(data), nil
}

func fromRow(row dbgen.ScheduleDraft) (Draft, error) {
	draft := Draft{
		ID:        row.ID,
		SeasonID:  row.SeasonID,
		Source:    row.Source,
		Revision:  row.Revision,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.SavedAt.Valid {
		savedAt := row.SavedAt.Time
		draft.SavedAt = &savedAt
	}
	if err := json.Unmarshal([]byte(row.Configuration), &draft.Configuration); err != nil {
		return Draft{}, fmt.Errorf("decode draft %s configuration: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Teams), &draft.Teams); err != nil {
		return Draft{}, fmt.Errorf("decode draft %s teams: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Weeks), &draft.Schedule.Weeks); err != nil {
		return Draft{}, fmt.Errorf("decode draft %s weeks: %w", row.ID, err)
	}
	return draft, nil
}
