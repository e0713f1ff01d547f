// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: Validates the X-Api-Key header against the configured key so the
//     sync trigger endpoints cannot be hit by arbitrary callers.
//   - RayID: Assigns a unique request identifier (RayID) to every incoming
//     request, reusing one supplied by the caller, and exposes it through the
//     request locals and the response headers for log correlation.
//
// Both are registered globally in the main application setup, before the
// feature routes are mounted.
package middleware
