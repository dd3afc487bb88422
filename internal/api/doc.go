// Package api provides the exchange REST client used to bootstrap a team.
//
// Endpoints:
//   - GET  /healthz      connectivity check, any 2xx is healthy
//   - POST /v1/register  team registration, returns the API key and initial cash
//
// After registration every request carries the X-Team-Id and X-Api-Key headers.
// JSON bodies use camelCase keys and are decoded case-insensitively.
package api
