package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every issued token.
//
// It embeds [jwt.RegisteredClaims] for the standard fields (sub, iss, iat,
// exp) and adds the account role as a private claim. The role is a snapshot
// taken at issuance time: it is trusted for the token's whole validity
// window and is not re-derived from the store on each request.
type TokenClaims struct {
	// Role is the privilege class bound to the token at issuance.
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or
// response bodies. UserID and Role are parsed copies of the "sub" and "role"
// claims, populated during issuance or verification so that callers never
// re-parse the claim set.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Only the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`

	// Role is the privilege snapshot extracted from the "role" claim.
	Role string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
