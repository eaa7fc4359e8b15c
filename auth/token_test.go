package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	userID, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -1*time.Minute)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)
	other := NewIssuer("other-secret", 30*time.Minute)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
