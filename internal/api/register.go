package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

// RegisterPath is the team registration endpoint.
const RegisterPath = "/v1/register"

// Register registers teamID with the exchange. The ID is sent as given; callers
// validate it with model.ValidateTeamID.
//
// Errors carry failure.CodeRegistrationFailed for transport failures and
// non-success statuses (the *APIError with status and body stays in the chain),
// failure.CodeDeserializationFailed for an unusable success body, and
// failure.CodeCancelled when ctx is cancelled.
func (c *Client) Register(ctx context.Context, teamID string) (*model.RegistrationResponse, error) {
	c.logger.Info("registering team", "team_id", teamID)

	body, err := c.doRequest(ctx, http.MethodPost, RegisterPath, model.RegistrationRequest{TeamID: teamID})
	if err != nil {
		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			c.logger.Error("registration failed",
				"team_id", teamID,
				"status", apiErr.StatusCode,
				"body", string(apiErr.Body),
			)
			return nil, failure.Wrap(err, failure.CodeRegistrationFailed,
				fmt.Sprintf("registration failed with status %d", apiErr.StatusCode))
		case errors.Is(err, context.Canceled):
			c.logger.Warn("registration was cancelled", "team_id", teamID)
			return nil, failure.Cancelled(err, "register team")
		default:
			c.logger.Error("registration request failed", "team_id", teamID, "error", err)
			return nil, failure.Wrap(err, failure.CodeRegistrationFailed, "register team")
		}
	}

	resp, err := decodeRegistration(body)
	if err != nil {
		c.logger.Error("failed to deserialize registration response", "team_id", teamID, "error", err)
		return nil, failure.Wrap(err, failure.CodeDeserializationFailed, "decode registration response")
	}

	c.logger.Info("successfully registered team",
		"team_id", resp.TeamID,
		"initial_cash", resp.InitialCash.String(),
	)
	return resp, nil
}

func decodeRegistration(body []byte) (*model.RegistrationResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("empty response body")
	}

	var resp model.RegistrationResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}
