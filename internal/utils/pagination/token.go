package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// ErrInvalidToken is returned for any cursor that cannot be decoded.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor is the keyset position of the last row returned: rows strictly after it
// in (timestamp DESC, id DESC) order form the next page.
type Cursor struct {
	Timestamp time.Time
	ID        string
}

// EncodeCursor creates an opaque token for the given position.
func EncodeCursor(c Cursor) string {
	tokenStr := c.Timestamp.UTC().Format(timeFormat) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor. An empty token yields a nil cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w (base64 decode): %v", ErrInvalidToken, err)
	}
	ts, id, ok := strings.Cut(string(decoded), "|")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w (split)", ErrInvalidToken)
	}
	parsed, err := time.Parse(timeFormat, ts)
	if err != nil {
		return nil, fmt.Errorf("%w (timestamp parse): %v", ErrInvalidToken, err)
	}
	return &Cursor{Timestamp: parsed, ID: id}, nil
}

// ClampLimit bounds a requested page size to [1, max], using def for non-positive input.
func ClampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}
