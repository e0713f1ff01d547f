// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, ensuring that all logs related to a specific request can be
// correlated. Sync runs triggered over HTTP therefore carry the ray_id of the
// request that started them.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
