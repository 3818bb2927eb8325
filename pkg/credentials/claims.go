package credentials

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the claims embedded in issued access tokens:
// registered claims plus the user's email and display name.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
