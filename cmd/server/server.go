// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leaguedesk/internal/api"
	"github.com/codr1/leaguedesk/internal/api/apiutil"
	"github.com/codr1/leaguedesk/internal/api/schedules"
	"github.com/codr1/leaguedesk/internal/apiclient"
	"github.com/codr1/leaguedesk/internal/config"
	"github.com/codr1/leaguedesk/internal/db"
	"github.com/codr1/leaguedesk/internal/drafts"
	"github.com/codr1/leaguedesk/internal/leagueapi"
	"github.com/codr1/leaguedesk/internal/ratelimit"
	"github.com/codr1/leaguedesk/internal/scheduler"
)

type app struct {
	database *db.DB
	limiter  *ratelimit.Limiter
}

// newApp opens the draft store, connects to the league backend and starts the
// maintenance jobs. Handlers are initialized before it returns.
func newApp(cfg *config.Config) (*app, error) {
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("open draft database: %w", err)
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL:     cfg.API.BaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.APITimeout()},
		Tokens:      apiclient.NewMemoryTokenStore(apiclient.Tokens{AccessToken: cfg.Secrets.AccessToken, RefreshToken: cfg.Secrets.RefreshToken}),
		RefreshPath: cfg.API.RefreshPath,
		UserAgent:   cfg.API.UserAgent,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("create API client: %w", err)
	}

	store := drafts.NewStore(database)
	limiter := ratelimit.New(&ratelimit.Config{
		SaveCooldown:       ratelimit.DefaultConfig().SaveCooldown,
		SaveMaxPerHour:     cfg.Limits.SaveMaxPerHour,
		GenerateMaxPerHour: cfg.Limits.GenerateMaxPerHour,
	})

	schedules.InitHandlers(schedules.Deps{
		Store:      store,
		Backend:    leagueapi.New(client, cfg.API.DefaultPhoneRegion),
		Limiter:    limiter,
		TrustProxy: cfg.Limits.TrustProxy,
	})

	a := &app{database: database, limiter: limiter}
	if err := startScheduler(cfg, store, client); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func startScheduler(cfg *config.Config, store *drafts.Store, client *apiclient.Client) error {
	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if err := scheduler.RegisterDraftPruneJob(store, cfg.Drafts.PruneCron, cfg.DraftTTL()); err != nil {
		return err
	}
	if err := scheduler.RegisterTokenRefreshJob(client, cfg.Tokens.RefreshCron, cfg.RefreshSkew()); err != nil {
		return err
	}
	return scheduler.Start()
}

func (a *app) Close() {
	if a == nil {
		return
	}
	if err := scheduler.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop scheduler")
	}
	if a.limiter != nil {
		a.limiter.Close()
		a.limiter = nil
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close draft database")
		}
		a.database = nil
	}
}

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithJSONOnly,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Schedule planning routes
	schedules.RegisterRoutes(mux)
}
