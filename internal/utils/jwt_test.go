package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "sess-42", 30)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), tok.Exp, 5*time.Second)

	sid, err := ParseSessionID("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sid)
}

func TestParseSessionIDRejectsBadTokens(t *testing.T) {
	tok, err := NewSessionToken("secret", "sess-42", 30)
	require.NoError(t, err)

	_, err = ParseSessionID("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSessionID("secret", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewSessionToken("secret", "sess-42", -1)
	require.NoError(t, err)
	_, err = ParseSessionID("secret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
