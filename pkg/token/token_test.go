package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.VerifyAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	userID, err := svc.VerifyRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewService("different-secret", "refresh-secret", time.Hour, time.Hour)

	tok, err := other.IssueAccessToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Minute, time.Hour)

	tok, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
