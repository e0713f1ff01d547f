// Package models defines the database rows the sync feature mirrors CRM
// records into, plus the upsert helpers that keep editor-curated columns
// from being overwritten on every run.
package models
