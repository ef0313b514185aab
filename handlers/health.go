package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "seo-api"

// StatusResponse reports service and persistence status.
type StatusResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Env         string `json:"env"`
	Version     string `json:"version"`
	Database    string `json:"database"`
	ClusterHost string `json:"clusterHost,omitempty"`
	ServerTime  string `json:"serverTime"`
}

// GetStatus handles GET /api/articles/status
// Always 200; the database field carries the connection state.
func (h *Articles) GetStatus(c echo.Context) error {
	version := h.cfg.GitCommitSha
	if version == "" {
		version = "unknown"
	}

	state := h.conn.State()
	serverTime := time.Now().UTC().Format(time.RFC3339)
	env := mapNodeEnvToDeployEnv(h.cfg.NodeEnv)

	c.Logger().Infof(
		"[STATUS_CHECK] env=%s version=%s database=%s timestamp=%s",
		env, version, state, serverTime,
	)

	return c.JSON(http.StatusOK, StatusResponse{
		Status:      "ok",
		Service:     serviceName,
		Env:         env,
		Version:     version,
		Database:    state.String(),
		ClusterHost: h.conn.ClusterHost(),
		ServerTime:  serverTime,
	})
}

// mapNodeEnvToDeployEnv maps NODE_ENV to deployment environment name
// production -> prod
// staging -> staging
// (empty or anything else) -> local
func mapNodeEnvToDeployEnv(nodeEnv string) string {
	switch strings.ToLower(strings.TrimSpace(nodeEnv)) {
	case "production":
		return "prod"
	case "staging":
		return "staging"
	default:
		return "local"
	}
}
