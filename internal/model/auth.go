package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims carried by tokens from the identity
// provider. UID and Email identify the caller; Name is optional and only
// used when lazily creating a profile.
type UserClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
