package model

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// MaxTeamIDLength is the longest team ID the exchange accepts.
const MaxTeamIDLength = 50

var teamIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// ValidateTeamID reports whether id is an acceptable team identifier.
func ValidateTeamID(id string) error {
	if id == "" {
		return fmt.Errorf("team id is required")
	}
	if len(id) > MaxTeamIDLength {
		return fmt.Errorf("team id must be at most %d characters, got %d", MaxTeamIDLength, len(id))
	}
	if !teamIDPattern.MatchString(id) {
		return fmt.Errorf("team id %q must contain only letters, numbers, underscores, and hyphens", id)
	}
	return nil
}

// Cash is an exact monetary amount. It marshals as a bare JSON number.
type Cash struct {
	decimal.Decimal
}

// NewCash returns a Cash holding the whole-unit amount n.
func NewCash(n int64) Cash {
	return Cash{decimal.NewFromInt(n)}
}

// ParseCash parses a decimal string such as "100000.50".
func ParseCash(s string) (Cash, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Cash{}, err
	}
	return Cash{d}, nil
}

// MarshalJSON implements json.Marshaler.
func (c Cash) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Both 100 and "100" are accepted.
func (c *Cash) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		c.Decimal = decimal.Zero
		return nil
	}
	return c.Decimal.UnmarshalJSON(data)
}

// Equal reports whether both amounts are numerically equal.
func (c Cash) Equal(other Cash) bool {
	return c.Decimal.Equal(other.Decimal)
}

// RegistrationRequest is the body of POST /v1/register.
type RegistrationRequest struct {
	TeamID string `json:"teamId"`
}

// RegistrationResponse is returned by a successful registration.
type RegistrationResponse struct {
	TeamID      string `json:"teamId"`
	APIKey      string `json:"apiKey"`
	InitialCash Cash   `json:"initialCash"`
}

// Validate checks the fields the exchange is required to return.
func (r *RegistrationResponse) Validate() error {
	if r.TeamID == "" {
		return fmt.Errorf("teamId is missing")
	}
	if r.APIKey == "" {
		return fmt.Errorf("apiKey is missing")
	}
	if r.InitialCash.IsNegative() {
		return fmt.Errorf("initialCash must be >= 0, got %s", r.InitialCash.String())
	}
	return nil
}

// Credentials is the durable team identity. Field order is the on-disk order.
type Credentials struct {
	TeamID      string `json:"teamId"`
	APIKey      string `json:"apiKey"`
	InitialCash Cash   `json:"initialCash"`
}

// Valid reports whether the record can authenticate. Invalid records are treated as absent.
func (c *Credentials) Valid() bool {
	return c != nil && c.TeamID != "" && c.APIKey != ""
}

// Equal compares two records field by field.
func (c *Credentials) Equal(other *Credentials) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.TeamID == other.TeamID &&
		c.APIKey == other.APIKey &&
		c.InitialCash.Equal(other.InitialCash)
}

// MaskedAPIKey returns the key with all but the last four characters hidden.
func (c *Credentials) MaskedAPIKey() string {
	if len(c.APIKey) <= 4 {
		return "****"
	}
	return "****" + c.APIKey[len(c.APIKey)-4:]
}
