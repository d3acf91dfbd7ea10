// @title         Sembet Agent API
// @version       0.1.0
// @description   Local facial authentication agent

package main

import (
	"context"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/config"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
	phttp "github.com/DeboraAmaral/sprint04-iot/internal/platform/net/http"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/store"

	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/repokit"

	"github.com/DeboraAmaral/sprint04-iot/internal/services/api"
)

func main() {
	// service-scoped config (SEMBET_*)
	root := config.New()
	cfg := root.Prefix("SEMBET_")
	dbCfg := cfg.Prefix("SQLITE_")

	// bring up logging early
	l := logger.Get()

	// open the platform store (embedded sqlite)
	st, err := store.Open(
		context.Background(),
		store.Config{
			SQLite: store.SQLiteConfig{
				Enabled:     true,
				Path:        dbCfg.MayString("PATH", "sembet.db"),
				BusyTimeout: dbCfg.MayDuration("BUSY_TIMEOUT", 0),
				MaxConns:    dbCfg.MayInt("MAX_CONNS", 4),
				SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
				LogSQL:      dbCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when the sqlite seam is not answering
	repokit.MustGuard(context.Background(), st)

	// http server (reads SEMBET_AGENT_PORT)
	srv := phttp.NewServer(cfg)

	// mount the agent API
	teardown, err := api.Mount(
		context.Background(),
		srv.Router(),
		api.Options{
			Config:         cfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  cfg.MayBool("SWAGGER", true),
			EnableProfiler: cfg.MayBool("PROFILER", true),
		},
	)
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}
	defer teardown()

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
