package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweep/internal/config"
	"github.com/vancomm/minesweep/internal/database"
	"github.com/vancomm/minesweep/internal/middleware"
	"github.com/vancomm/minesweep/internal/repository"
)

type App struct {
	cfg        *config.App
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	repo       *repository.Queries
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

// Start connects the store, runs migrations, wires routes and serves until
// ctx is cancelled, then drains the server.
func (a *App) Start(ctx context.Context) error {
	cfg, err := config.NewApp()
	if err != nil {
		return err
	}
	a.cfg = cfg

	db, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.repo = repository.New(db)

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Logging(a.logger),
			middleware.Cors(cfg.AllowedOrigins),
			middleware.Auth(cookies),
		),
	}

	a.logger.Info("server listening", slog.String("addr", cfg.Addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), time.Second*30,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
