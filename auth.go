package main

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues an HS256-signed token carrying the supplied claims
// plus issued-at and expiry instants. Tokens cannot be revoked; rotating the
// secret invalidates everything outstanding.
func GenerateToken(secret []byte, claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := time.Now()

	all := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range claims {
		all[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, all)
	return token.SignedString(secret)
}

// ValidateToken verifies the signature and expiry of a token and returns its
// claims. The signature check inside the library is constant-time; expiry is
// enforced here, not by any server-side session state.
func ValidateToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// CheckPassword reports whether password matches the configured credential:
// hex(sha256(salt + password)) == hash. The comparison is constant-time so a
// wrong guess takes as long as a near-miss.
func CheckPassword(salt, hash, password string) bool {
	sum := sha256.Sum256([]byte(salt + password))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
