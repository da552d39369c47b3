package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worthy-waste/domain"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret", TokenTTL)

	token := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := NewJWTServiceWithSecret("secret", -time.Minute)

	_, _, err := svc.GetUserIDByToken(svc.GenerateTokenUser("user-1", domain.RoleUser))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token := NewJWTServiceWithSecret("one", TokenTTL).GenerateTokenUser("user-1", domain.RoleUser)

	_, _, err := NewJWTServiceWithSecret("two", TokenTTL).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	_, _, err := NewJWTServiceWithSecret("secret", TokenTTL).GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
