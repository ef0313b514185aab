package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyKey is the echo context key holding the parsed JSON body.
const BodyKey = "jsonBody"

// JSONBody parses JSON request bodies before routing. Only requests that
// declare a JSON content type are inspected; an empty body counts as no
// body. The top-level value must be an object or an array. The raw bytes
// are put back so handlers can bind them again.
func JSONBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody || !isJSONContentType(req.Header.Get(echo.HeaderContentType)) {
				return next(c)
			}

			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return err
			}
			_ = req.Body.Close()

			trimmed := bytes.TrimSpace(raw)
			if len(trimmed) == 0 {
				req.Body = http.NoBody
				req.ContentLength = 0
				return next(c)
			}
			if !json.Valid(trimmed) {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
			}
			if trimmed[0] != '{' && trimmed[0] != '[' {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body: top-level value must be an object or array")
			}

			var parsed any
			req.Body = io.NopCloser(bytes.NewReader(raw))
			if err := c.Echo().JSONSerializer.Deserialize(c, &parsed); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body").SetInternal(err)
			}

			c.Set(BodyKey, parsed)
			req.Body = io.NopCloser(bytes.NewReader(raw))
			return next(c)
		}
	}
}

func isJSONContentType(v string) bool {
	if v == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	return mt == echo.MIMEApplicationJSON || strings.HasSuffix(mt, "+json")
}
