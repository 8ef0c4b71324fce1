// Package client is the network layer of the app: a GraphQL client for the
// backend's auth and discovery operations.
//
// # Overview
//
// Every outgoing request passes through an http.RoundTripper that reads the
// session credential from the secret store and, when one exists, attaches it
// as a bearer token. The credential is read per request, so a login or logout
// takes effect on the very next call without rebuilding the client.
//
// Read-only business searches are cached in the key-value cache instance with
// a time-to-live; ClearStore drops that cache on logout.
//
// # Error Handling
//
// Errors reported by the backend in the GraphQL errors array are returned as
// *ServerError and their text is available through ServerMessage. HTTP 401/403
// map to common.ErrUnauthorized; transport failures and 5xx responses map to
// common.ErrUnavailable.
package client
