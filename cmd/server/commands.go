package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"habitserver/internal/api"
	"habitserver/internal/config"
	"habitserver/internal/database"
	"habitserver/internal/database/seed"
	"habitserver/internal/logger"
	"habitserver/internal/social"
	"habitserver/internal/store"
	"habitserver/internal/utils/utils_auth"
)

// App is shared by every command.
type App struct {
	Config *config.Config
}

func newApp(path string) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	err = logger.Init(logger.Config{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON || cfg.IsProduction(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "init logger")
	}
	return &App{Config: cfg}, nil
}

func (a *App) connect(ctx context.Context) (*sqlx.DB, error) {
	if a.Config.Database.DSN == "" {
		return nil, config.ErrMissingDSN
	}
	return database.Connect(ctx, a.Config.Database)
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(app *App) error {
	ctx := context.Background()
	db, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = database.NewRunner(db).Apply(ctx, logger.Info)
	return err
}

type SeedCmd struct{}

func (cmd *SeedCmd) Run(app *App) error {
	ctx := context.Background()
	db, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := database.NewRunner(db).Apply(ctx, logger.Info); err != nil {
		return err
	}
	_, err = seed.Run(ctx, store.New(db), logger.Info)
	return err
}

type ServeCmd struct {
	Seed bool `help:"Load badges and challenges before serving."`
}

func (cmd *ServeCmd) Run(app *App) error {
	cfg := app.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return errors.Wrapf(err, "app.timezone %q", cfg.App.Timezone)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := database.NewRunner(db).Apply(ctx, logger.Info); err != nil {
		return err
	}

	st := store.New(db)
	if cmd.Seed {
		if _, err := seed.Run(ctx, st, logger.Info); err != nil {
			return err
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Options{
		Service: social.New(st, social.Options{
			Location:  loc,
			FeedLimit: cfg.App.FeedLimit,
			UploadDir: cfg.Uploads.Dir,
		}),
		Issuer:         utils_auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		CORSOrigins:    cfg.Server.CORSOrigins,
		UploadDir:      cfg.Uploads.Dir,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
