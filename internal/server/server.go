// Package server exposes the board over HTTP/JSON.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abhigyani/rankboard/internal/board"
	apperrors "github.com/abhigyani/rankboard/internal/errors"
	"github.com/abhigyani/rankboard/internal/platform/config"
	"github.com/abhigyani/rankboard/internal/platform/correlation"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	store     board.Store
	repo      *board.ArticleRepository
	ledger    *board.VoteLedger
	groups    *board.GroupIndex
	listing   *board.ListingService
	startTime time.Time
}

func NewServer(cfg *config.Config, store board.Store, repo *board.ArticleRepository, ledger *board.VoteLedger, groups *board.GroupIndex, listing *board.ListingService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		store:     store,
		repo:      repo,
		ledger:    ledger,
		groups:    groups,
		listing:   listing,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// correlationMiddleware tags every request context with a correlation ID so
// log lines across a request can be joined up.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func (s *Server) Start() error {
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
