package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "club-test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("trainer-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "trainer-pass", hashed)

	assert.True(t, CheckPassword(hashed, "trainer-pass"))
	assert.False(t, CheckPassword(hashed, "other"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestGenerateTokens_RoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokens(42, "coach@club.de", RoleTrainer, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "coach@club.de", claims.Email)
	assert.Equal(t, RoleTrainer, claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)

	refreshClaims, err := RefreshAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, refreshClaims.UserID)
}

func TestGenerateTokens_EmptySecret(t *testing.T) {
	_, _, err := GenerateTokens(1, "a@b.de", RoleAdmin, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	access, err := GenerateAccessToken(1, "a@b.de", RoleAdmin, testSecret)
	require.NoError(t, err)

	_, err = RefreshAccessToken(access, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateToken_Failures(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@b.de", RoleAdmin, testSecret)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ValidateToken(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:    1,
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(expired, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestActor(t *testing.T) {
	admin := Actor{UserID: 1, Role: RoleAdmin}
	trainer := Actor{UserID: 2, Role: RoleTrainer}

	assert.True(t, admin.CanAccess(2))
	assert.True(t, trainer.CanAccess(2))
	assert.False(t, trainer.CanAccess(3))
}
