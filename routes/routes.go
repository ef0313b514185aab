package routes

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RootMessage is served on GET / regardless of database state.
const RootMessage = "SEO article generation API is running"

const (
	ArticlesPrefix = "/api/articles"
	SEOPrefix      = "/api/seo"
)

// Module is a group of handlers mounted under one path prefix.
type Module interface {
	Mount(g *echo.Group)
}

// ConfigureMiddleware registers everything that runs after CORS and before
// routing. Body parsing is last so only admitted requests are read.
func ConfigureMiddleware(e *echo.Echo, bodyLimit string) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(JSONBody())
}

// RegisterRoutes defines all application routes
func RegisterRoutes(e *echo.Echo, articles, seo Module) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, RootMessage)
	})

	articles.Mount(e.Group(ArticlesPrefix))
	seo.Mount(e.Group(SEOPrefix))
}
