package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/monitor/internal/shared/config"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate("alice", []string{"provider"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.HasScope("provider"))
	assert.False(t, claims.HasScope("admin"))
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTService("other-secret").Generate("alice", nil, time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.Generate("alice", nil, -time.Minute)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := svc.Generate("", []string{"provider"}, time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewJWTServiceFromConfig_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "jwt-key.pub")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	svc, err := NewJWTServiceFromConfig(config.JWTConfig{PublicKeyPath: path})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		Scopes: []string{"provider"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bob",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(key)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)

	// HS256 tokens are refused once a public key is configured
	hsToken, err := NewJWTService("secret").Generate("bob", nil, time.Hour)
	require.NoError(t, err)
	_, err = svc.Verify(hsToken)
	assert.Error(t, err)

	_, err = svc.Generate("bob", nil, time.Hour)
	assert.Error(t, err)
}
