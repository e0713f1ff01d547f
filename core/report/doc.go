// Package report defines the structured run report returned by every
// reconciliation, and the batch aggregate that wraps one report per entity.
//
// The JSON field names (tarea/metricas/erroresDetallados and the Spanish state
// values) are a wire contract with the scheduler that consumes the trigger
// endpoint; they must not be renamed.
package report
