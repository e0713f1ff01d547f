// Package utils provides small type-coercion helpers shared across the
// synchronization features. The converters are deliberately lossy: any value
// the upstream CRM sends in an unexpected shape collapses to the zero value
// instead of propagating a parse error into the store.
package utils
