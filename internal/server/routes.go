package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Articles
	s.echo.POST("/api/articles", s.handleCreateArticle)
	s.echo.GET("/api/articles", s.handleListArticles)
	s.echo.GET("/api/articles/:id", s.handleGetArticle)

	// Votes
	s.echo.POST("/api/articles/:id/upvote", s.handleUpVote)
	s.echo.POST("/api/articles/:id/downvote", s.handleDownVote)

	// Groups
	s.echo.POST("/api/articles/:id/groups", s.handleUpdateGroups)
	s.echo.GET("/api/groups/:group/articles", s.handleListGroupArticles)
}
