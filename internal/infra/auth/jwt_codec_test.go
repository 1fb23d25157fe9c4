package auth

import (
	"strings"
	"testing"
	"time"

	"habitly/config"
	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodecConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test_signing_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour * 7,
	}

	return cfg
}

func TestJWTCodec_MintAndParse(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	encoded, err := codec.Mint(service.CategoryAccess, "alice", entity.RoleUser, codec.AccessTokenTTL())
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
	assert.Len(t, strings.Split(encoded, "."), 3)

	claims, err := codec.Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, service.CategoryAccess, claims.Category)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, codec.AccessTokenTTL(), claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWTCodec_RefreshOutlivesAccess(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	access, err := codec.Mint(service.CategoryAccess, "alice", entity.RoleUser, codec.AccessTokenTTL())
	require.NoError(t, err)
	refresh, err := codec.Mint(service.CategoryRefresh, "alice", entity.RoleUser, codec.RefreshTokenTTL())
	require.NoError(t, err)

	accessClaims, err := codec.Parse(access)
	require.NoError(t, err)
	refreshClaims, err := codec.Parse(refresh)
	require.NoError(t, err)

	assert.Greater(t,
		refreshClaims.ExpiresAt.Sub(refreshClaims.IssuedAt),
		accessClaims.ExpiresAt.Sub(accessClaims.IssuedAt))
}

func TestJWTCodec_ExpiredTokenStillParses(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	encoded, err := codec.Mint(service.CategoryRefresh, "alice", entity.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	// Parse verifies signature only; expiry is the caller's check.
	claims, err := codec.Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	expired, err := codec.IsExpired(encoded)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestJWTCodec_FreshTokenNotExpired(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	encoded, err := codec.Mint(service.CategoryAccess, "alice", entity.RoleUser, codec.AccessTokenTTL())
	require.NoError(t, err)

	expired, err := codec.IsExpired(encoded)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestJWTCodec_MalformedToken(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	for name, encoded := range map[string]string{
		"garbage":   "clearly-not-a-jwt-token-format",
		"truncated": "eyJhbGciOiJIUzI1NiJ9",
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := codec.Parse(encoded)
			assert.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
		})
	}
}

func TestJWTCodec_TamperedSignature(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	encoded, err := codec.Mint(service.CategoryAccess, "alice", entity.RoleUser, codec.AccessTokenTTL())
	require.NoError(t, err)

	tampered := encoded[:len(encoded)-2] + "xx"
	claims, err := codec.Parse(tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	otherCfg := testCodecConfig()
	otherCfg.SecretKey.Signing = "a_completely_different_signing_secret"
	other, err := NewJWTCodec(otherCfg)
	require.NoError(t, err)

	encoded, err := other.Mint(service.CategoryAccess, "alice", entity.RoleUser, time.Minute)
	require.NoError(t, err)

	_, err = codec.Parse(encoded)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
}

func TestJWTCodec_ClaimAccessors(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig())
	require.NoError(t, err)

	encoded, err := codec.Mint(service.CategoryRefresh, "bob", entity.RoleAdmin, time.Hour)
	require.NoError(t, err)

	category, err := codec.Category(encoded)
	require.NoError(t, err)
	assert.Equal(t, service.CategoryRefresh, category)

	subject, err := codec.Subject(encoded)
	require.NoError(t, err)
	assert.Equal(t, "bob", subject)

	role, err := codec.Role(encoded)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)

	// Accessors on a malformed token fail the same way Parse does.
	_, err = codec.Category("not-a-token")
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedToken))
}

func TestJWTCodec_ConfigValidation(t *testing.T) {
	cfg := testCodecConfig()
	cfg.SecretKey.Signing = ""
	codec, err := NewJWTCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
	assert.Contains(t, err.Error(), "signing secret")

	cfg = testCodecConfig()
	cfg.Auth.RefreshTokenTTL = cfg.Auth.AccessTokenTTL
	codec, err = NewJWTCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
}
