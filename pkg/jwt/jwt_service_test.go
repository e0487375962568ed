package jwt

import (
	"Lost-Found-Registry/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, secret string, lifetime time.Duration) JWTService {
	t.Helper()
	svc, err := NewJWTServiceWithSecret(secret, lifetime)
	require.NoError(t, err)
	return svc
}

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := newService(t, "secret", time.Hour)

	token, err := svc.GenerateTokenAdmin("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	id, role, err := svc.GetAdminIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestAdminTokenRejected(t *testing.T) {
	svc := newService(t, "secret", time.Hour)
	token, err := svc.GenerateTokenAdmin("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	other := newService(t, "another", time.Hour)
	_, _, err = other.GetAdminIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = svc.GetAdminIDByToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := newService(t, "secret", -time.Minute)
	token, err = expired.GenerateTokenAdmin("admin-1", domain.RoleAdmin)
	require.NoError(t, err)
	_, _, err = svc.GetAdminIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestEmptySecretRefused(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		svc, err := NewJWTServiceWithSecret(secret, time.Hour)
		assert.ErrorIs(t, err, domain.ErrJWTSecretMissing)
		assert.Nil(t, svc)
	}

	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTService()
	assert.ErrorIs(t, err, domain.ErrJWTSecretMissing)
}

func TestTokenSignedWithEmptyKeyRejected(t *testing.T) {
	svc := newService(t, "secret", time.Hour)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtAdminClaim{
		AdminID: "attacker",
		Role:    domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    defaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, _, err = svc.GetAdminIDByToken(forged)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
