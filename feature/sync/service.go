package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/reconcile"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/core/sequence"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/attributes"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/cities"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/megaprojects"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/projects"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/statuses"
)

// task is one runnable entity sync bound to its engine. key is the URL-safe
// identifier used to address the task over HTTP; the report carries the full
// Spanish task name.
type task struct {
	key    string
	name   string
	engine *reconcile.Engine
}

// Service owns the per-entity reconciliation engines and runs them in
// dependency order: cities, statuses, attributes and mega projects are
// independent and run in parallel; projects reference all four and run after
// the barrier.
type Service struct {
	db     *gorm.DB
	client *crm.Client
	logger *zap.Logger

	phase1 []task
	phase2 task
}

// NewService wires every entity strategy to its source and engine.
func NewService(db *gorm.DB, client *crm.Client, cfg reconcile.Config, crmCfg crm.Config, logger *zap.Logger) *Service {
	pager := func(sel string) *crm.Pager {
		return &crm.Pager{Client: client, Select: sel, PageSize: crmCfg.PageSize}
	}
	seq := sequence.New(db)

	s := &Service{db: db, client: client, logger: logger}
	s.phase1 = []task{
		{
			key:    "cities",
			name:   cities.Task,
			engine: reconcile.New(cities.New(db, logger), pager(cities.Select), cfg, logger),
		},
		{
			key:    "statuses",
			name:   statuses.Task,
			engine: reconcile.New(statuses.New(db, seq, logger), pager(statuses.Select), cfg, logger),
		},
		{
			key:    "attributes",
			name:   attributes.Task,
			engine: reconcile.New(attributes.New(db, logger), pager(attributes.Select), cfg, logger),
		},
		{
			key:    "megaprojects",
			name:   megaprojects.Task,
			engine: reconcile.New(megaprojects.New(db, client, logger), pager(megaprojects.Select), cfg, logger),
		},
	}
	s.phase2 = task{
		key:    "projects",
		name:   projects.Task,
		engine: reconcile.New(projects.New(db, client, cfg, logger), pager(projects.Select), cfg, logger),
	}
	return s
}

// RunAll executes the full batch and always returns a closed aggregate.
//
// Projects are skipped when any dependency run ended critically: their rows
// embed city names, status ids and attribute ids, and writing them against
// half-synced dependencies would persist dangling references.
func (s *Service) RunAll(ctx context.Context) *report.Batch {
	batch := report.NewBatch()
	s.logger.Info("full synchronization started")

	reports := make([]*report.Report, len(s.phase1))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range s.phase1 {
		i, t := i, t
		g.Go(func() error {
			reports[i] = t.engine.Run(gctx)
			return nil
		})
	}
	_ = g.Wait()

	dependencyFailed := false
	for _, rep := range reports {
		batch.Add(rep)
		if rep.IsCritical() {
			dependencyFailed = true
		}
	}

	if dependencyFailed {
		rep := report.New(s.phase2.name)
		rep.Critical(s.phase2.name,
			"tarea omitida: una sincronización dependiente terminó en error crítico")
		batch.Add(rep)
		s.logger.Error("projects sync skipped, dependency ended critical")
	} else {
		batch.Add(s.phase2.engine.Run(ctx))
	}

	batch.Close()
	s.logger.Info("full synchronization finished",
		zap.String("state", batch.OverallState),
		zap.Float64("seconds", batch.Seconds))
	return batch
}

// RunTask executes one task addressed by its key, in isolation. The projects
// task runs without the dependency barrier; the caller asked for exactly that
// task.
func (s *Service) RunTask(ctx context.Context, key string) (*report.Report, error) {
	for _, t := range s.tasks() {
		if t.key == key {
			return t.engine.Run(ctx), nil
		}
	}
	return nil, fmt.Errorf("tarea desconocida: %q", key)
}

// TaskKeys lists the runnable task keys in execution order.
func (s *Service) TaskKeys() []string {
	keys := make([]string, 0, len(s.phase1)+1)
	for _, t := range s.tasks() {
		keys = append(keys, t.key)
	}
	return keys
}

// Health verifies both backends: the database answers with its clock and the
// CRM token endpoint mints a valid access token.
func (s *Service) Health(ctx context.Context) (time.Time, error) {
	now, err := database.Ping(ctx, s.db)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := s.client.Token(); err != nil {
		return time.Time{}, fmt.Errorf("crm no disponible: %w", err)
	}
	return now, nil
}

func (s *Service) tasks() []task {
	return append(append([]task(nil), s.phase1...), s.phase2)
}
