package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	in := Cursor{
		Timestamp: time.Date(2024, 3, 10, 14, 30, 45, 123456789, time.UTC),
		ID:        "3f1c2d9e-0000-4000-8000-000000000001",
	}

	token := EncodeCursor(in)
	assert.NotEmpty(t, token)

	out, err := DecodeCursor(token)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
	assert.Equal(t, in.ID, out.ID)
}

func TestEncodeCursor_NormalizesZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local := time.Date(2024, 3, 10, 1, 0, 0, 0, ny)

	out, err := DecodeCursor(EncodeCursor(Cursor{Timestamp: local, ID: "a"}))
	require.NoError(t, err)
	assert.True(t, local.Equal(out.Timestamp))
	assert.Equal(t, time.UTC, out.Timestamp.Location())
}

func TestDecodeCursor_Empty(t *testing.T) {
	out, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestDecodeCursor_Errors(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2024-03-10T00:00:00Z"))
	_, err = DecodeCursor(noSeparator)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "split")

	badTime := base64.RawURLEncoding.EncodeToString([]byte("notadate|abc"))
	_, err = DecodeCursor(badTime)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
	assert.Equal(t, 100, ClampLimit(1000, 20, 100))
}
