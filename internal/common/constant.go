// Package common contains shared constants and sentinel errors used across
// UserKeeper components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on requests and on the
	// login response.
	AuthorizationHeaderName = "Authorization"

	// TokenPrefix precedes the token inside the Authorization header.
	TokenPrefix = "Bearer "

	// UserIDHeaderName carries the public id of the user who just logged in.
	UserIDHeaderName = "UserID"

	// PublicIDLength is the length of generated public user ids.
	PublicIDLength = 30
)
