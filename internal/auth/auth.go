// Package auth builds the header set that authenticates a team with the exchange.
package auth

import (
	"net/http"

	"github.com/rickgao/emoji-trader/internal/failure"
)

// Header names carried by every authenticated request.
const (
	HeaderTeamID = "X-Team-Id"
	HeaderAPIKey = "X-Api-Key"
)

// Identity is the pair of values the exchange checks on authenticated calls.
type Identity struct {
	TeamID string
	APIKey string
}

// NewIdentity validates that both values are present.
func NewIdentity(teamID, apiKey string) (Identity, error) {
	if teamID == "" {
		return Identity{}, failure.InvalidArgument("team id is required")
	}
	if apiKey == "" {
		return Identity{}, failure.InvalidArgument("api key is required")
	}
	return Identity{TeamID: teamID, APIKey: apiKey}, nil
}

// Headers returns the authentication headers for the identity.
func (id Identity) Headers() map[string]string {
	return map[string]string{
		HeaderTeamID: id.TeamID,
		HeaderAPIKey: id.APIKey,
	}
}

// Apply replaces any authentication headers in h with the identity's values.
// Repeated calls never leave more than one value per header.
func (id Identity) Apply(h http.Header) {
	for k, v := range id.Headers() {
		h.Set(k, v)
	}
}
