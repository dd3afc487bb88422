package api

import (
	"net/http"

	"github.com/rickgao/emoji-trader/internal/auth"
)

// SetAuthHeaders replaces the authentication headers sent with every later
// request. Calling it again swaps the values rather than adding to them.
// Requests already in flight keep the headers they started with.
func (c *Client) SetAuthHeaders(teamID, apiKey string) error {
	id, err := auth.NewIdentity(teamID, apiKey)
	if err != nil {
		return err
	}

	c.mu.Lock()
	id.Apply(c.headers)
	c.mu.Unlock()

	c.logger.Info("set authentication headers", "team_id", teamID)
	return nil
}

// Headers returns a copy of the default headers.
func (c *Client) Headers() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Clone()
}
