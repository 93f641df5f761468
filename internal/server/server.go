// Package server exposes account views over a read-only HTTP JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/presentation"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

// Server serves account views. Each request gets its own coordinator so
// concurrent callers never observe each other's selection.
type Server struct {
	fetcher     gateway.Fetcher
	logger      zerolog.Logger
	waitTimeout time.Duration
}

// New creates a Server backed by fetcher.
func New(fetcher gateway.Fetcher, waitTimeout time.Duration, logger zerolog.Logger) *Server {
	return &Server{
		fetcher:     fetcher,
		logger:      logger,
		waitTimeout: waitTimeout,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(LoggingMiddleware(s.logger))
	router.Use(gin.CustomRecovery(HandlePanics(s.logger)))

	router.GET("/healthz", s.health)
	apiV1 := router.Group("api/v1")
	{
		apiV1.GET("/accounts/:account", s.getAccountView)
	}
	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getAccountView answers GET /api/v1/accounts/:account?repo=&page=.
func (s *Server) getAccountView(c *gin.Context) {
	account := strings.TrimSpace(c.Param("account"))
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account is required"})
		return
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return
		}
		page = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.waitTimeout)
	defer cancel()

	coordinator := usecase.NewCoordinator(s.fetcher, s.logger)
	coordinator.SetAccount(ctx, account)
	if err := coordinator.SelectRepository(ctx, c.Query("repo")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := coordinator.Wait(ctx); err != nil {
		status := http.StatusGatewayTimeout
		if !errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, presentation.NewViewDTO(coordinator.Snapshot()))
		return
	}
	coordinator.SetPage(page)

	view := coordinator.Snapshot()
	if view.Err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": view.Err.Error()})
		return
	}
	c.JSON(http.StatusOK, presentation.NewViewDTO(view))
}
