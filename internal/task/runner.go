package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// periodicSource produces a fresh task instance on every tick.
type periodicSource struct {
	interval time.Duration
	factory  func() Task
}

// Runner manages background task processing with a fixed worker pool and
// optional periodic task sources.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
	sources    []periodicSource
	started    bool
	mu         sync.Mutex
}

// NewRunner creates a new Runner
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// SchedulePeriodic registers a task factory to be invoked on a fixed
// interval once the runner starts. Must be called before Start.
func (r *Runner) SchedulePeriodic(interval time.Duration, factory func() Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("cannot schedule periodic task after runner start")
	}
	if interval <= 0 {
		return fmt.Errorf("periodic interval must be positive")
	}

	r.sources = append(r.sources, periodicSource{interval: interval, factory: factory})
	return nil
}

// Submit adds a new task to the queue
func (r *Runner) Submit(task Task) error {
	select {
	case r.taskChan <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start initializes the worker pool and the periodic schedulers
func (r *Runner) Start() {
	r.mu.Lock()
	r.started = true
	sources := r.sources
	r.mu.Unlock()

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	for _, source := range sources {
		r.wg.Add(1)
		go r.schedule(source)
	}
}

// Stop gracefully shuts down the task runner
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	close(r.taskChan)
}

// schedule submits a fresh task from the source on every tick.
func (r *Runner) schedule(source periodicSource) {
	defer r.wg.Done()

	ticker := time.NewTicker(source.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			task := source.factory()
			if err := r.Submit(task); err != nil {
				r.logger.Error("failed to submit periodic task",
					"task_type", task.Type(),
					"error", err)
			}
		}
	}
}

// worker processes tasks from the queue
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.taskChan:
			if !ok {
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *Runner) processTask(task Task, workerID int) {
	log := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	log.Info("processing task")

	if err := task.Execute(r.ctx); err != nil {
		log.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	log.Info("task completed successfully")
}
