package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	PruneDraftsJobName  = "prune_schedule_drafts"
	RefreshTokenJobName = "refresh_api_token"

	jobTimeout = 2 * time.Minute
)

// DraftPruner deletes unsaved drafts older than a TTL.
type DraftPruner interface {
	PruneStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// TokenRefresher renews the backend access token before it expires.
type TokenRefresher interface {
	RefreshIfExpiring(ctx context.Context, skew time.Duration) (bool, error)
}

// RegisterDraftPruneJob removes schedule drafts nobody saved or touched
// within ttl.
func RegisterDraftPruneJob(pruner DraftPruner, cronExpr string, ttl time.Duration) error {
	if pruner == nil {
		return fmt.Errorf("draft prune job requires a draft store")
	}

	jobLogger := log.With().
		Str("component", "schedule_drafts_job").
		Str("job_name", PruneDraftsJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(PruneDraftsJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		pruneDrafts(jobLogger.WithContext(ctx), pruner, ttl)
	})
	if err != nil {
		return fmt.Errorf("add draft prune job: %w", err)
	}

	jobLogger.Info().Dur("ttl", ttl).Msg("Draft prune job registered")
	return nil
}

// RegisterTokenRefreshJob renews the backend access token while the service
// is idle.
func RegisterTokenRefreshJob(refresher TokenRefresher, cronExpr string, skew time.Duration) error {
	if refresher == nil {
		return fmt.Errorf("token refresh job requires an API client")
	}

	jobLogger := log.With().
		Str("component", "api_token_job").
		Str("job_name", RefreshTokenJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(RefreshTokenJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		refreshToken(jobLogger.WithContext(ctx), refresher, skew)
	})
	if err != nil {
		return fmt.Errorf("add token refresh job: %w", err)
	}

	jobLogger.Info().Dur("skew", skew).Msg("Token refresh job registered")
	return nil
}

func pruneDrafts(ctx context.Context, pruner DraftPruner, ttl time.Duration) {
	logger := zerolog.Ctx(ctx)
	removed, err := pruner.PruneStale(ctx, ttl)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prune schedule drafts")
		return
	}
	if removed > 0 {
		logger.Info().Int64("removed", removed).Msg("Pruned stale schedule drafts")
	}
}

func refreshToken(ctx context.Context, refresher TokenRefresher, skew time.Duration) {
	logger := zerolog.Ctx(ctx)
	refreshed, err := refresher.RefreshIfExpiring(ctx, skew)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to refresh API token")
		return
	}
	if refreshed {
		logger.Info().Msg("API token refreshed")
	}
}
