package reconcile

// Config holds run policies shared by every entity engine.
type Config struct {
	// WipeOnEmpty controls the empty-source sweep policy. When false (the
	// default) a run whose active set came out empty skips the sweep and is
	// reported as finished-with-errors: a source outage must not be able to
	// empty the mirror. When true the original delete-all behavior applies.
	WipeOnEmpty bool `mapstructure:"wipe_on_empty" default:"false"`
	// PhaseTimeoutSeconds bounds each phase (mark, sync, sweep) separately.
	// Zero disables the deadline.
	PhaseTimeoutSeconds int `mapstructure:"phase_timeout_seconds" default:"600"`
	// Workers caps concurrent sub-resource fetches during prepare/sync.
	Workers int `mapstructure:"workers" default:"4"`
}
