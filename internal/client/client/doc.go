// Package client talks to the userkeeper HTTP API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI. HTTPClient is
// the JSON-over-HTTP implementation: it keeps the bearer token returned by
// Login and attaches it to every protected call.
//
// # Error Handling
//
// Response status codes are mapped to sentinel errors that callers can match
// with errors.Is: ErrUnauthorized (401), ErrNotFound (404), ErrConflict (409),
// ErrValidation (400), ErrRateLimited (429). Transport failures and 5xx
// responses wrap ErrUnavailable. The server's message is kept in the error
// text.
//
// Calls that need a token fail with ErrNotLoggedIn before any request is
// sent when no session exists.
package client
