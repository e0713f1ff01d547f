// Package sequence mints synthetic identifiers for records the CRM does not
// assign ids to, backed by an atomic counter table in Postgres.
package sequence
