// Package sync mirrors CRM records into the site's PostgreSQL database.
//
// Five entities are kept in sync, each as a mark -> sync -> sweep pass driven
// by core/reconcile: cities, project statuses, project attributes, mega
// projects and commercial projects with their typologies. The first four are
// independent and run in parallel; projects depend on all of them and run
// after a barrier.
//
// The feature exposes the batch over HTTP (POST /sync) and per entity
// (POST /sync/:task), plus a health check and a service identity endpoint.
// Every run returns a structured Spanish-language report consumed by the
// downstream scheduler.
package sync
