// Package token issues and checks the signed credentials used by the API.
//
// Two token classes exist: short-lived access tokens and long-lived refresh
// tokens, signed with distinct secrets. Verify performs the full cryptographic
// check; Decode only extracts claims. The access middleware verifies once at
// the edge and handlers then Decode the same request's token to read identity.
// Decode never re-checks signature or expiry, so it must not be used on any
// request that did not pass Verify first. Known hardening gap: nothing ties
// the decoded token to the verified one beyond both living in one request.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the iss claim stamped into every token.
const Issuer = "skillsage"

// Claims are the identity fields embedded in both token classes.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Config holds the signing material for both token classes.
type Config struct {
	AccessKey  []byte
	RefreshKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Issue creates a signed HS256 token carrying the given identity,
// expiring after ttl.
func Issue(secret []byte, userID, username string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// IssuePair creates an access token and a refresh token for the same identity,
// each signed with its own secret.
func IssuePair(cfg Config, userID, username string) (accessToken, refreshToken string, err error) {
	accessToken, err = Issue(cfg.AccessKey, userID, username, cfg.AccessTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err = Issue(cfg.RefreshKey, userID, username, cfg.RefreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Verify validates signature and expiry against the given secret and returns
// the embedded claims. A token of one class never verifies against the other
// class's secret.
func Verify(secret []byte, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// Decode extracts claims WITHOUT verifying signature or expiry. Only call it
// on tokens already gated by Verify within the same request.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}
