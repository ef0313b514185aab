package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ErrPolicyViolation is returned for origins outside the allow list.
var ErrPolicyViolation = errors.New("CORS policy violation")

// allowedOriginMarkers are matched as plain substrings anywhere in the
// origin, not as hosts: "https://evil.com/localhost" is allowed.
var allowedOriginMarkers = []string{
	"localhost",
	"127.0.0.1",
	"netlify.app",
}

var (
	allowedMethods = []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPut,
		http.MethodPatch,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders = []string{
		echo.HeaderContentType,
		echo.HeaderAuthorization,
		echo.HeaderXRequestedWith,
	}
)

// Decision is the outcome of evaluating one request origin.
type Decision struct {
	Allowed bool
	Err     error
}

// EvaluateOrigin decides whether a request with the given Origin header may
// proceed. An empty origin (header absent) is always allowed.
func EvaluateOrigin(origin string) Decision {
	if origin == "" {
		return Decision{Allowed: true}
	}
	for _, marker := range allowedOriginMarkers {
		if strings.Contains(origin, marker) {
			return Decision{Allowed: true}
		}
	}
	return Decision{Err: ErrPolicyViolation}
}

// ConfigureCORS sets up the origin policy. It must be the first middleware
// so preflight requests are answered before anything else runs.
func ConfigureCORS(e *echo.Echo) {
	e.Use(preflightWithoutOrigin)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc:  allowOrigin,
		AllowMethods:     allowedMethods,
		AllowHeaders:     allowedHeaders,
		AllowCredentials: true,
	}))
}

// allowOrigin adapts EvaluateOrigin to echo. A denial becomes a 403 for
// this request only.
func allowOrigin(origin string) (bool, error) {
	d := EvaluateOrigin(origin)
	if d.Err != nil {
		log.Printf("⚠️  Rejected origin %q: %v", origin, d.Err)
		return false, echo.NewHTTPError(http.StatusForbidden, d.Err.Error()).SetInternal(d.Err)
	}
	return d.Allowed, nil
}

// preflightWithoutOrigin answers OPTIONS requests that carry no Origin.
// echo's CORS middleware passes those through without any CORS fields, yet an
// absent origin is allowed.
func preflightWithoutOrigin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodOptions || req.Header.Get(echo.HeaderOrigin) != "" {
			return next(c)
		}
		h := c.Response().Header()
		h.Add(echo.HeaderVary, echo.HeaderOrigin)
		h.Set(echo.HeaderAccessControlAllowCredentials, "true")
		h.Set(echo.HeaderAccessControlAllowMethods, strings.Join(allowedMethods, ","))
		h.Set(echo.HeaderAccessControlAllowHeaders, strings.Join(allowedHeaders, ","))
		return c.NoContent(http.StatusNoContent)
	}
}
