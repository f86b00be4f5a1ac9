package tasks

import (
	"context"

	"slotfinder-api/core/config"
	"slotfinder-api/core/logger"

	"github.com/hibiken/asynq"
)

// Worker bundles the asynq server and scheduler behind one lifecycle. Handlers
// register on the mux, periodic tasks on the scheduler, then Start launches
// both against the shared redis backend.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// NewWorker creates a new background worker
func NewWorker(redisCfg config.RedisConfig, concurrency int) *Worker {
	opt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})

	return &Worker{
		server:    server,
		scheduler: asynq.NewScheduler(opt, nil),
		mux:       asynq.NewServeMux(),
	}
}

// RegisterHandler binds a task type to its handler
func (w *Worker) RegisterHandler(taskType string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(taskType, handler)
}

// RegisterPeriodic enqueues a task on a cron schedule
func (w *Worker) RegisterPeriodic(cronSpec string, taskType string) error {
	entryID, err := w.scheduler.Register(cronSpec, asynq.NewTask(taskType, nil))
	if err != nil {
		return err
	}
	logger.Info("Worker:RegisterPeriodic", "task", taskType, "spec", cronSpec, "entry", entryID)
	return nil
}

// Start launches the task server and scheduler. Both are non-blocking.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}
	return nil
}

// Shutdown stops the scheduler and drains in-flight tasks
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
