package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/seoforge/seo-api/config"
	"github.com/seoforge/seo-api/database"
	"github.com/seoforge/seo-api/shared"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleStore is the persistence used by the article routes.
type ArticleStore interface {
	CreateArticle(ctx context.Context, data shared.ArticlePayload) (*shared.ArticleDocument, error)
	GetArticleByID(ctx context.Context, id primitive.ObjectID) (*shared.ArticleDocument, error)
	ListArticles(ctx context.Context, f shared.ArticleFilter) ([]shared.ArticleDocument, error)
	ReplaceArticle(ctx context.Context, id primitive.ObjectID, data shared.ArticlePayload) (*shared.ArticleDocument, error)
	PatchArticle(ctx context.Context, id primitive.ObjectID, patch shared.ArticlePatch) (*shared.ArticleDocument, error)
	DeleteArticle(ctx context.Context, id primitive.ObjectID) error
}

// StoreFunc resolves the store per request. It fails with
// database.ErrNotConnected while no database is available.
type StoreFunc func() (ArticleStore, error)

// ConnectionStore serves the articles collection of conn once it is connected.
func ConnectionStore(conn *database.Connection) StoreFunc {
	return func() (ArticleStore, error) {
		articles, err := conn.Articles()
		if err != nil {
			return nil, err
		}
		return articles, nil
	}
}

// Articles is the collaborator mounted on /api/articles.
type Articles struct {
	cfg   config.Config
	conn  *database.Connection
	store StoreFunc
}

func NewArticles(cfg config.Config, conn *database.Connection) *Articles {
	return &Articles{cfg: cfg, conn: conn, store: ConnectionStore(conn)}
}

func (h *Articles) Mount(g *echo.Group) {
	// Static routes are registered before :id so they are not shadowed.
	g.GET("/status", h.GetStatus)
	g.GET("", h.ListArticles)
	g.POST("", h.CreateArticle)
	g.GET("/:id", h.GetArticle)
	g.PUT("/:id", h.ReplaceArticle)
	g.PATCH("/:id", h.PatchArticle)
	g.DELETE("/:id", h.DeleteArticle)
}

// ListArticles handles GET /api/articles?status=&keyword=&limit=&skip=
func (h *Articles) ListArticles(c echo.Context) error {
	filter := shared.ArticleFilter{
		Status:  shared.ArticleStatus(strings.TrimSpace(c.QueryParam("status"))),
		Keyword: strings.TrimSpace(c.QueryParam("keyword")),
		Limit:   database.DefaultListLimit,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "status must be draft or published",
		})
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > database.MaxListLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "limit must be between 1 and 100",
			})
		}
		filter.Limit = n
	}
	if raw := c.QueryParam("skip"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "skip must be a non-negative integer",
			})
		}
		filter.Skip = n
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	articles, err := store.ListArticles(c.Request().Context(), filter)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"articles": articles,
		"count":    len(articles),
	})
}

// CreateArticle handles POST /api/articles
func (h *Articles) CreateArticle(c echo.Context) error {
	var payload shared.ArticlePayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	payload.Normalize()
	if msg := validatePayload(payload); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	article, err := store.CreateArticle(c.Request().Context(), payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":   article.ID.Hex(),
		"slug": article.Slug,
	})
}

// GetArticle handles GET /api/articles/:id
func (h *Articles) GetArticle(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return invalidID(c)
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	article, err := store.GetArticleByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

// ReplaceArticle handles PUT /api/articles/:id
func (h *Articles) ReplaceArticle(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return invalidID(c)
	}

	var payload shared.ArticlePayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	payload.Normalize()
	if msg := validatePayload(payload); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	article, err := store.ReplaceArticle(c.Request().Context(), id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

// PatchArticle handles PATCH /api/articles/:id
func (h *Articles) PatchArticle(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return invalidID(c)
	}

	var patch shared.ArticlePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if msg := validatePatch(&patch); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	article, err := store.PatchArticle(c.Request().Context(), id, patch)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/articles/:id
func (h *Articles) DeleteArticle(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return invalidID(c)
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	if err := store.DeleteArticle(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}

func validatePayload(p shared.ArticlePayload) string {
	switch {
	case p.Title == "":
		return "title is required"
	case strings.TrimSpace(p.Content) == "":
		return "content is required"
	case !p.Status.Valid():
		return "status must be draft or published"
	}
	return ""
}

// validatePatch trims the provided fields in place and checks them.
func validatePatch(p *shared.ArticlePatch) string {
	if p.Empty() {
		return "no fields to update"
	}
	for _, f := range []*string{p.Title, p.Slug, p.Keyword, p.MetaDescription} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	switch {
	case p.Title != nil && *p.Title == "":
		return "title cannot be empty"
	case p.Content != nil && strings.TrimSpace(*p.Content) == "":
		return "content cannot be empty"
	case p.Slug != nil && shared.Slugify(*p.Slug) == "":
		return "slug must contain letters or digits"
	case p.Status != nil && !p.Status.Valid():
		return "status must be draft or published"
	}
	return ""
}

func parseArticleID(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "Invalid article ID",
	})
}

func databaseUnavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{
		"error": "Database is not connected",
	})
}

// storeError maps persistence errors to responses without leaking internals.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, database.ErrArticleNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Article not found",
		})
	case errors.Is(err, database.ErrDuplicateSlug):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "An article with this slug already exists",
		})
	case errors.Is(err, database.ErrNotConnected):
		return databaseUnavailable(c)
	}
	c.Logger().Errorf("article store failure on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
	})
}
