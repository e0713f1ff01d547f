package report

import "sync"

// State is the terminal status of one sync task.
type State string

const (
	// StatePending marks a report whose run has not finished yet.
	StatePending State = "pendiente"
	// StateSuccess marks a run with zero failed records.
	StateSuccess State = "exitoso"
	// StatePartialFailure marks a run where some records failed but the run
	// completed, including the sweep.
	StatePartialFailure State = "finalizado_con_errores"
	// StateCriticalFailure marks a run aborted by a transport or sweep error.
	// No sweep is trusted to have happened.
	StateCriticalFailure State = "error_critico"
)

// Metrics accumulates per-run counters. Field names on the wire follow the
// reporting contract consumed by the downstream scheduler.
type Metrics struct {
	// Fetched is the number of raw records read from the source, duplicates
	// included.
	Fetched int `json:"obtenidos"`
	// Processed is the number of unique keys that will be upserted.
	Processed int `json:"procesados"`
	// Succeeded is the number of rows written successfully.
	Succeeded int `json:"exitosos"`
	// Failed is the number of records skipped due to per-record errors.
	Failed int `json:"fallidos"`
	// Deleted is the number of obsolete rows removed by the sweep.
	Deleted int `json:"eliminados"`
}

// Error describes one per-record failure.
type Error struct {
	Reference string `json:"referencia"`
	Reason    string `json:"motivo"`
}

// Report is the outcome of a single reconciliation run. It is created at run
// start, mutated through the run, and must be treated as immutable once
// Finalize has been called. All mutators are safe for concurrent use so the
// sync phase may fan out across records.
type Report struct {
	Task    string  `json:"task"`
	State   State   `json:"state"`
	Metrics Metrics `json:"metricas"`
	Errors  []Error `json:"erroresDetallados"`

	mu       sync.Mutex
	critical bool
}

// New returns a pending report for the named task.
func New(task string) *Report {
	return &Report{
		Task:   task,
		State:  StatePending,
		Errors: []Error{},
	}
}

// AddFetched records raw records seen during the mark phase.
func (r *Report) AddFetched(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics.Fetched += n
}

// SetProcessed records the unique-key count computed by the identity index.
func (r *Report) SetProcessed(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics.Processed = n
}

// Success counts one successfully written record.
func (r *Report) Success() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics.Succeeded++
}

// Failure counts one failed record and keeps its structured detail.
func (r *Report) Failure(reference, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics.Failed++
	r.Errors = append(r.Errors, Error{Reference: reference, Reason: reason})
}

// AddDeleted records rows removed by the sweep.
func (r *Report) AddDeleted(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics.Deleted += n
}

// Critical aborts the run: the report is finalized immediately with
// StateCriticalFailure and the given terminal error.
func (r *Report) Critical(reference, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.critical = true
	r.State = StateCriticalFailure
	r.Errors = append(r.Errors, Error{Reference: reference, Reason: reason})
}

// Finalize computes the overall state from the metrics. A report already
// marked critical keeps that state.
func (r *Report) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.critical {
		return
	}
	if r.Metrics.Failed > 0 {
		r.State = StatePartialFailure
	} else {
		r.State = StateSuccess
	}
}

// OK reports whether the run finished without any failure.
func (r *Report) OK() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.State == StateSuccess
}

// IsCritical reports whether the run was aborted.
func (r *Report) IsCritical() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.critical
}
