package report

import "time"

// Batch aggregates the reports of one full synchronization pass so the caller
// sees every entity's outcome even when some of them failed.
type Batch struct {
	OverallState string    `json:"estadoGeneral"`
	StartedAt    time.Time `json:"fechaInicio"`
	FinishedAt   time.Time `json:"fechaFin"`
	Seconds      float64   `json:"duracionSegundos"`
	Tasks        []*Report `json:"resumenDeTareas"`
}

const (
	overallSuccess = "Exitoso"
	overallErrors  = "Finalizado con errores"
)

// NewBatch starts an aggregate for a batch beginning now.
func NewBatch() *Batch {
	return &Batch{StartedAt: time.Now().UTC(), Tasks: []*Report{}}
}

// Add appends one task report to the aggregate.
func (b *Batch) Add(r *Report) {
	b.Tasks = append(b.Tasks, r)
}

// Close stamps the end time and derives the overall state: success only when
// every task succeeded.
func (b *Batch) Close() {
	b.FinishedAt = time.Now().UTC()
	b.Seconds = b.FinishedAt.Sub(b.StartedAt).Seconds()

	b.OverallState = overallSuccess
	for _, t := range b.Tasks {
		if t.State != StateSuccess {
			b.OverallState = overallErrors
			return
		}
	}
}
