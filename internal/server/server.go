// Package server exposes the HTTP API consumed by the CRM browser extension
// and the dashboard.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitegentech/atendo/internal/classify"
	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/forecast"
	"github.com/sitegentech/atendo/internal/gamify"
	"github.com/sitegentech/atendo/internal/report"
	"github.com/sitegentech/atendo/internal/service"
)

// Server wires the HTTP handlers to the application services.
type Server struct {
	now       func() time.Time
	storage   service.Storage
	engine    *classify.Engine
	ranking   *gamify.Syncer
	forecasts *forecast.Generator
	reporter  *report.Reporter
	loc       *time.Location
}

// NewServer creates a server. The reporter may be nil when mail delivery is
// not configured.
func NewServer(storage service.Storage, engine *classify.Engine, ranking *gamify.Syncer, forecasts *forecast.Generator, reporter *report.Reporter, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		now:       time.Now,
		storage:   storage,
		engine:    engine,
		ranking:   ranking,
		forecasts: forecasts,
		reporter:  reporter,
		loc:       loc,
	}
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	{
		api.POST("/attendance/start", s.handleAttendanceStart)
		api.POST("/attendance/end", s.handleAttendanceEnd)
		api.POST("/attendance/transfer", s.handleAttendanceTransfer)

		api.POST("/agents/heartbeat", s.handleHeartbeat)
		api.GET("/monitor/live", s.handleMonitorLive)

		api.GET("/gamification/ranking", s.handleRankingGet)
		api.POST("/gamification/refresh", s.handleRankingRefresh)

		api.GET("/clients/ranking", s.handleClientRanking)
		api.GET("/forecast/demand", s.handleForecast)

		api.POST("/classify", s.handleClassify)
		api.POST("/feedback/classification", s.handleFeedback)

		api.GET("/report/test", s.handleReportTest)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// requestLogger logs each request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func internalError(c *gin.Context, err error) {
	slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro interno"})
}

// respondError surfaces a UserError's message as a 400; anything else is an
// opaque 500 so internals never leak to the extension.
func respondError(c *gin.Context, err error) {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": userErr.UserMessage})
		return
	}
	internalError(c, err)
}
