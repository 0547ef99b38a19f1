package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestRoundTrip(t *testing.T) {
	m := NewManager(secret, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateToken(userID, "a@b.c", "Ana", "STAFF", []string{"product:view"}, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "v1", claims.TokenVersion)
	assert.Equal(t, []string{"product:view"}, claims.Privileges)
}

func TestRejectsOtherSecretAndExpiry(t *testing.T) {
	m := NewManager(secret, time.Hour)
	token, err := m.GenerateToken(uuid.New(), "a@b.c", "Ana", "STAFF", nil, "v1")
	require.NoError(t, err)

	_, err = NewManager("another-secret-another-secret-xx", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewManager(secret, time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
