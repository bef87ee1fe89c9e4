package model

import "github.com/golang-jwt/jwt/v5"

// Identity is the signed-in user as seen by the pages.
type Identity struct {
	Email string
	Name  string
}

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (c SessionClaims) Identity() Identity {
	return Identity{Email: c.Email, Name: c.Name}
}
