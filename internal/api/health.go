package api

import (
	"context"
	"errors"
	"net/http"
)

// HealthPath is the exchange's liveness endpoint.
const HealthPath = "/healthz"

// TestConnection checks that the exchange is reachable and healthy.
// It never returns an error: cancellation, timeouts, network failures and
// non-success statuses are logged and reported as false.
func (c *Client) TestConnection(ctx context.Context) bool {
	c.logger.Info("testing api connection", "base_url", c.baseURL)

	_, err := c.doRequest(ctx, http.MethodGet, HealthPath, nil)
	if err == nil {
		c.logger.Info("api connection successful")
		return true
	}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		c.logger.Warn("api health check failed", "status", apiErr.StatusCode)
	case errors.Is(err, context.Canceled):
		c.logger.Warn("api connection test was cancelled")
	case isTimeout(err):
		c.logger.Error("api connection test timed out", "error", err)
	default:
		c.logger.Error("failed to connect to api", "error", err)
	}
	return false
}
