package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/report"
)

// Engine runs one entity's reconciliation as a mark -> sync -> sweep pass.
//
// Mark drains the source and folds every record into the identity index; sync
// upserts each unique record, isolating per-record failures; sweep issues one
// bulk delete for keys that fell out of the active set. Mark must complete
// before sync, and sync before sweep: the active set is only trustworthy once
// every page has been seen. Any transport error aborts the run before the
// sweep so that an incomplete active set can never trigger a mass deletion.
type Engine struct {
	strategy Strategy
	source   Source
	cfg      Config
	logger   *zap.Logger
}

// New builds an engine for one entity.
func New(strategy Strategy, source Source, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{strategy: strategy, source: source, cfg: cfg, logger: logger}
}

// Run executes the full pass and always returns a report, even on critical
// failure.
func (e *Engine) Run(ctx context.Context) *report.Report {
	task := e.strategy.Task()
	rep := report.New(task)
	log := e.logger.With(zap.String("task", task))
	log.Info("sync task started")

	idx := NewIndex()

	// MARK
	if err := e.mark(ctx, idx, rep); err != nil {
		log.Error("mark phase failed", zap.Error(err))
		rep.Critical(task, "fallo al recopilar registros de la fuente: "+err.Error())
		return rep
	}
	rep.SetProcessed(idx.Len())
	log.Info("mark phase complete",
		zap.Int("fetched", rep.Metrics.Fetched),
		zap.Int("unique", idx.Len()))

	// PREPARE (optional, parent/child entities)
	if p, ok := e.strategy.(Preparer); ok {
		pctx, cancel := e.phaseContext(ctx)
		err := p.Prepare(pctx, idx.Records(), rep)
		cancel()
		if err != nil {
			log.Error("prepare phase failed", zap.Error(err))
			rep.Critical(task, "fallo al preparar registros dependientes: "+err.Error())
			return rep
		}
	}

	// SYNC
	if err := e.sync(ctx, idx, rep); err != nil {
		log.Error("sync phase aborted", zap.Error(err))
		rep.Critical(task, "fase de sincronización interrumpida: "+err.Error())
		return rep
	}

	// SWEEP
	active := idx.Keys()
	if len(active) == 0 && !e.cfg.WipeOnEmpty {
		log.Warn("source returned no active records; sweep skipped by policy")
		rep.Failure(task, "la fuente no devolvió registros; barrido omitido (wipe_on_empty deshabilitado)")
		rep.Finalize()
		return rep
	}

	wctx, cancel := e.phaseContext(ctx)
	defer cancel()
	deleted, err := e.strategy.Sweep(wctx, active)
	if err != nil {
		log.Error("sweep phase failed", zap.Error(err))
		rep.Critical(task, "fallo el barrido de registros obsoletos: "+err.Error())
		return rep
	}
	rep.AddDeleted(int(deleted))

	rep.Finalize()
	log.Info("sync task finished",
		zap.String("state", string(rep.State)),
		zap.Int("succeeded", rep.Metrics.Succeeded),
		zap.Int("failed", rep.Metrics.Failed),
		zap.Int("deleted", rep.Metrics.Deleted))
	return rep
}

func (e *Engine) mark(ctx context.Context, idx *Index, rep *report.Report) error {
	mctx, cancel := e.phaseContext(ctx)
	defer cancel()

	return e.source.Each(mctx, func(rec crm.Record) error {
		rep.AddFetched(1)
		idx.Add(e.strategy.NaturalKey(rec), rec)
		return nil
	})
}

func (e *Engine) sync(ctx context.Context, idx *Index, rep *report.Report) error {
	sctx, cancel := e.phaseContext(ctx)
	defer cancel()

	for _, rec := range idx.Records() {
		// A dead context means nothing further can be written; per-record
		// isolation does not apply to cancellation.
		if err := sctx.Err(); err != nil {
			return err
		}
		if err := e.strategy.Upsert(sctx, rec, rep); err != nil {
			rep.Failure(e.reference(rec), err.Error())
			continue
		}
		rep.Success()
	}
	return nil
}

func (e *Engine) reference(rec crm.Record) string {
	if r, ok := e.strategy.(Referencer); ok {
		return r.Reference(rec)
	}
	return e.strategy.NaturalKey(rec)
}

func (e *Engine) phaseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.PhaseTimeoutSeconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(e.cfg.PhaseTimeoutSeconds)*time.Second)
}
