package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// The client never verifies token signatures (the signing key lives on the
// backend). It only inspects claims of tokens the backend already issued,
// to decide whether a persisted session is worth reusing.

// TokenExpired reports whether the token's exp claim is in the past.
// Malformed tokens are treated as expired.
func TokenExpired(tokenString string) bool {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return true
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

// ExtractIDFromToken extracts the subject claim from a token string.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	parser := &jwt.Parser{}
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
