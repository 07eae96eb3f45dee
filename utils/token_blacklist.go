package utils

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt"
)

const blacklistPrefix = "token:blacklist:"

// BlacklistToken records a revoked token in Redis until its natural expiry.
func BlacklistToken(tokenString string) error {
	ttl := 24 * time.Hour
	if token, err := ValidateToken(tokenString); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
					ttl = remaining
				}
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return GetCacheClient().Set(ctx, blacklistPrefix+tokenString, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was revoked by a logout.
func IsTokenBlacklisted(tokenString string) bool {
	if CacheClient == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := CacheClient.Exists(ctx, blacklistPrefix+tokenString).Result()
	return err == nil && n > 0
}
