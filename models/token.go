package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued to an API caller (a CI job, a developer).
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] for standard claim access. Subject names the caller
// and is recorded on every plan it creates.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Caller returns the "sub" claim, or an empty string when it is missing.
func (t *Token) Caller() string {
	sub, err := t.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
