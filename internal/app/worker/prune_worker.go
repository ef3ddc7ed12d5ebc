package worker

import (
	"context"

	"authd/internal/app/service"
	"authd/internal/platform/logging"

	"github.com/robfig/cron/v3"
)

// PruneWorker periodically sweeps expired sessions in the background, in
// addition to the lazy pruning done during request handling.
type PruneWorker struct {
	sessions *service.SessionService
	schedule string
	log      logging.Logger
	cron     *cron.Cron
}

func NewPruneWorker(sessions *service.SessionService, schedule string, log logging.Logger) *PruneWorker {
	return &PruneWorker{sessions: sessions, schedule: schedule, log: log}
}

// Start registers the sweep on the configured cron schedule. ctx bounds the
// individual sweep runs, not the scheduler itself; use Stop for that.
func (w *PruneWorker) Start(ctx context.Context) error {
	w.cron = cron.New()
	_, err := w.cron.AddFunc(w.schedule, func() {
		deleted, err := w.sessions.Prune(ctx)
		if err != nil {
			w.log.Error(ctx, "session prune sweep failed", "error", err)
			return
		}
		w.log.Info(ctx, "session prune sweep finished", "deleted", deleted)
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (w *PruneWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}
