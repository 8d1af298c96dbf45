package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abhigyani/rankboard/internal/domain"
	apperrors "github.com/abhigyani/rankboard/internal/errors"
)

type createArticleRequest struct {
	User  string `json:"user"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

type voteRequest struct {
	User string `json:"user"`
}

type updateGroupsRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

type voteResponse struct {
	Outcome domain.VoteOutcome `json:"outcome"`
}

func (s *Server) handleCreateArticle(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.User == "" || req.Title == "" || req.Link == "" {
		return apperrors.ValidationError("user, title and link are required")
	}

	id, err := s.repo.CreateArticle(c.Request().Context(), req.User, req.Title, req.Link)
	if err != nil {
		return apperrors.UnavailableError("failed to create article", err)
	}

	return writeJSON(c, 201, map[string]int64{"id": id})
}

func (s *Server) handleGetArticle(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := s.repo.GetArticle(c.Request().Context(), id)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return apperrors.NotFoundError("article not found").WithField("article_id", id)
	}
	if err != nil {
		return apperrors.UnavailableError("failed to load article", err).WithField("article_id", id)
	}

	return writeJSON(c, 200, domain.RankedArticle{ID: id, Article: article})
}

func (s *Server) handleUpVote(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.User == "" {
		return apperrors.ValidationError("user is required")
	}

	outcome, err := s.ledger.UpVote(c.Request().Context(), id, req.User)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return apperrors.NotFoundError("article not found").WithField("article_id", id)
	}
	if err != nil {
		return apperrors.UnavailableError("failed to apply vote", err).WithField("article_id", id)
	}

	// AlreadyVoted and Expired are ordinary outcomes, not failures.
	return writeJSON(c, 200, voteResponse{Outcome: outcome})
}

func (s *Server) handleDownVote(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	outcome, err := s.ledger.DownVote(c.Request().Context(), id)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return apperrors.NotFoundError("article not found").WithField("article_id", id)
	}
	if err != nil {
		return apperrors.UnavailableError("failed to apply vote", err).WithField("article_id", id)
	}

	return writeJSON(c, 200, voteResponse{Outcome: outcome})
}

func (s *Server) handleUpdateGroups(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req updateGroupsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	ctx := c.Request().Context()
	if err := s.groups.AddToGroups(ctx, id, req.Add...); err != nil {
		return apperrors.UnavailableError("failed to update groups", err).WithField("article_id", id)
	}
	if err := s.groups.RemoveFromGroups(ctx, id, req.Remove...); err != nil {
		return apperrors.UnavailableError("failed to update groups", err).WithField("article_id", id)
	}

	return c.NoContent(204)
}

func (s *Server) handleListArticles(c echo.Context) error {
	page, order, err := listingParams(c)
	if err != nil {
		return err
	}

	articles, err := s.listing.ListArticles(c.Request().Context(), page, order)
	if err != nil {
		return apperrors.UnavailableError("failed to list articles", err)
	}

	return writeJSON(c, 200, articles)
}

func (s *Server) handleListGroupArticles(c echo.Context) error {
	page, order, err := listingParams(c)
	if err != nil {
		return err
	}
	group := c.Param("group")

	articles, err := s.listing.ListGroupArticles(c.Request().Context(), group, page, order)
	if err != nil {
		return apperrors.UnavailableError("failed to list group articles", err).WithField("group", group)
	}

	return writeJSON(c, 200, articles)
}

func articleID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid article id").WithField("id", c.Param("id"))
	}
	return id, nil
}

func listingParams(c echo.Context) (int64, domain.Order, error) {
	page := int64(1)
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return 0, "", apperrors.ValidationError("page must be a positive integer").WithField("page", raw)
		}
		page = parsed
	}

	order, err := domain.ParseOrder(c.QueryParam("order"))
	if err != nil {
		return 0, "", apperrors.ValidationError("order must be \"score\" or \"time\"").WithField("order", c.QueryParam("order"))
	}

	return page, order, nil
}

func writeJSON(c echo.Context, status int, body any) error {
	if err := c.JSON(status, body); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
