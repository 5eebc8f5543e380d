package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	token, err := s.Issue(Identity{UserID: 12, Name: "Sam"})
	require.NoError(t, err)

	id, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 12, Name: "Sam"}, id)
}

func TestTokenRejections(t *testing.T) {
	s := NewTokenService("secret", time.Hour)
	token, err := s.Issue(Identity{UserID: 12})
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewTokenService("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 12}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := s.Issue(Identity{})
	require.NoError(t, err)
	_, err = s.Verify(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
