package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", "civic-tracker", time.Hour)

	signed, err := tokens.Generate("3f1c")
	require.NoError(t, err)

	sid, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "3f1c", sid)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	signed, err := NewTokenManager("other", "civic-tracker", time.Hour).Generate("3f1c")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "civic-tracker", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsWrongIssuer(t *testing.T) {
	signed, err := NewTokenManager("secret", "someone-else", time.Hour).Generate("3f1c")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "civic-tracker", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpires(t *testing.T) {
	tokens := NewTokenManager("secret", "civic-tracker", time.Minute)
	issued := time.Date(2024, 4, 15, 9, 30, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	signed, err := tokens.Generate("3f1c")
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", "civic-tracker", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
