package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"ai-interview-coach-backend/internal/model"
)

// ErrInvalidToken means the bearer token failed verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService verifies bearer tokens from the identity provider. Token
// issuance lives outside this service; only the shared secret is needed
// here.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates an auth service with the shared signing secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
	}
}

// ValidateToken verifies an HS256 JWT and returns the identity claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
