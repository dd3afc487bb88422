package credentials

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

// Serialization is fixed: two-space indented JSON, keys in the order teamId,
// apiKey, initialCash, a trailing newline, and case-insensitive key matching on
// decode (encoding/json's default).
const indent = "  "

var (
	ErrEmptyRecord   = errors.New("credential record is empty")
	ErrCorruptRecord = errors.New("credential record is not valid json")
	ErrInvalidRecord = errors.New("credential record is missing teamId or apiKey")
)

// Encode renders credentials in the on-disk format.
func Encode(c *model.Credentials) ([]byte, error) {
	if c == nil {
		return nil, failure.InvalidArgument("credentials are required")
	}
	data, err := json.MarshalIndent(c, "", indent)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a stored record. Whitespace-only input yields ErrEmptyRecord,
// malformed JSON ErrCorruptRecord, and a record that cannot authenticate
// ErrInvalidRecord.
func Decode(data []byte) (*model.Credentials, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyRecord
	}

	var c model.Credentials
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if !c.Valid() {
		return nil, ErrInvalidRecord
	}
	return &c, nil
}

// FromRegistration maps a registration response onto a credential record.
func FromRegistration(resp *model.RegistrationResponse) (*model.Credentials, error) {
	if resp == nil {
		return nil, failure.InvalidArgument("registration response is required")
	}
	return &model.Credentials{
		TeamID:      resp.TeamID,
		APIKey:      resp.APIKey,
		InitialCash: resp.InitialCash,
	}, nil
}

// logDecodeFailure logs each decode outcome at its own level.
func logDecodeFailure(logger *slog.Logger, location string, err error) {
	switch {
	case errors.Is(err, ErrEmptyRecord):
		logger.Warn("credentials record is empty", "location", location)
	case errors.Is(err, ErrCorruptRecord):
		logger.Error("invalid json format in credentials record", "location", location, "error", err)
	case errors.Is(err, ErrInvalidRecord):
		logger.Warn("invalid credentials in record", "location", location)
	default:
		logger.Error("unexpected error decoding credentials", "location", location, "error", err)
	}
}
