package main

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, jwt.MapClaims{"role": "admin"}, time.Hour)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])

	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Equal(t, float64(3600), exp-iat)
}

func TestTokenExpiry(t *testing.T) {
	// Still inside its ttl: verifies.
	token, err := GenerateToken(testSecret, jwt.MapClaims{"role": "admin"}, 2*time.Second)
	require.NoError(t, err)
	_, err = ValidateToken(testSecret, token)
	assert.NoError(t, err)

	// Already past its ttl: rejected.
	expired, err := GenerateToken(testSecret, jwt.MapClaims{"role": "admin"}, -time.Second)
	require.NoError(t, err)
	_, err = ValidateToken(testSecret, expired)
	assert.Error(t, err)
}

func TestTokenTampering(t *testing.T) {
	token, err := GenerateToken(testSecret, jwt.MapClaims{"role": "admin"}, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	// Payload tamper invalidates the signature check.
	tampered := strings.Join([]string{parts[0], flip(parts[1]), parts[2]}, ".")
	_, err = ValidateToken(testSecret, tampered)
	assert.Error(t, err)

	// So does a signature tamper.
	tampered = strings.Join([]string{parts[0], parts[1], flip(parts[2])}, ".")
	_, err = ValidateToken(testSecret, tampered)
	assert.Error(t, err)

	// And verifying with a different secret.
	_, err = ValidateToken([]byte("some-other-secret"), token)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := ValidateToken(testSecret, tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestCheckPassword(t *testing.T) {
	salt := "pepper"
	password := "hunter2"
	sum := sha256.Sum256([]byte(salt + password))
	hash := hex.EncodeToString(sum[:])

	assert.True(t, CheckPassword(salt, hash, password))
	assert.False(t, CheckPassword(salt, hash, "wrong"))
	assert.False(t, CheckPassword("other-salt", hash, password))
	assert.False(t, CheckPassword(salt, hash, ""))
}
