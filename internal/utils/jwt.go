package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySubject is returned when an access token carries no subject.
var ErrEmptySubject = errors.New("empty subject error")

// ParseUserIDFromJWT returns the subject claim of tokenString without
// verifying its signature. The remote dataset verifies the token; the client
// only needs the subject to scope user-owned rows.
func ParseUserIDFromJWT(tokenString string) (string, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return "", err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return "", ErrEmptySubject
	}

	return sub, nil
}

// TokenExpired reports whether tokenString carries an exp claim that lies
// before now. Tokens without exp never expire.
func TokenExpired(tokenString string, now time.Time) (bool, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return false, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("error occurred during getting expiration from token: %w", err)
	}
	if exp == nil {
		return false, nil
	}

	return exp.Before(now), nil
}

func parseUnverified(tokenString string) (jwt.MapClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("error occurred parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
