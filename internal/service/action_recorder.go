package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

type actionStore interface {
	Create(ctx context.Context, action *models.RegistrationAction) error
}

// RecorderConfig configures the audit writer pool.
type RecorderConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// ActionRecorder persists registration actions asynchronously so the commit
// and drop paths never block on the audit store. A full buffer drops the
// action with a warning rather than stalling the caller.
type ActionRecorder struct {
	store  actionStore
	logger *zap.Logger

	workers    int
	maxRetries int
	retryDelay time.Duration

	pending chan recordedAction
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

type recordedAction struct {
	action  models.RegistrationAction
	attempt int
}

// NewActionRecorder builds a recorder over the given store.
func NewActionRecorder(store actionStore, cfg RecorderConfig, logger *zap.Logger) *ActionRecorder {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionRecorder{
		store:      store,
		logger:     logger,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		pending:    make(chan recordedAction, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (r *ActionRecorder) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	r.started = true
	r.logger.Sugar().Infow("action recorder started", "workers", r.workers)
}

// Stop cancels workers and waits for them to exit.
func (r *ActionRecorder) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Sugar().Infow("action recorder stopped")
}

// Record queues an action for persistence. Never blocks.
func (r *ActionRecorder) Record(action models.RegistrationAction) {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		r.logger.Sugar().Warnw("action recorder not started, dropping action",
			"action", action.Action, "course_id", action.CourseID)
		return
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}

	select {
	case r.pending <- recordedAction{action: action}:
	default:
		r.logger.Sugar().Warnw("action buffer full, dropping action",
			"action", action.Action, "course_id", action.CourseID)
	}
}

func (r *ActionRecorder) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			r.drain()
			return
		case item := <-r.pending:
			r.persist(item)
		}
	}
}

// drain flushes whatever is buffered at shutdown without retrying.
func (r *ActionRecorder) drain() {
	for {
		select {
		case item := <-r.pending:
			if err := r.store.Create(context.Background(), &item.action); err != nil {
				r.logger.Sugar().Errorw("failed to flush action at shutdown", "error", err)
			}
		default:
			return
		}
	}
}

func (r *ActionRecorder) persist(item recordedAction) {
	if err := r.store.Create(r.ctx, &item.action); err != nil {
		r.handleFailure(item, err)
	}
}

func (r *ActionRecorder) handleFailure(item recordedAction, err error) {
	item.attempt++
	if item.attempt > r.maxRetries {
		r.logger.Sugar().Errorw("action exceeded retries",
			"action", item.action.Action, "course_id", item.action.CourseID, "error", err)
		return
	}
	r.logger.Sugar().Warnw("action persist failed, retrying",
		"action", item.action.Action, "attempt", item.attempt, "error", err)

	go func(a recordedAction) {
		timer := time.NewTimer(r.retryDelay)
		defer timer.Stop()
		select {
		case <-r.ctx.Done():
			return
		case <-timer.C:
			select {
			case r.pending <- a:
			default:
				r.logger.Sugar().Errorw("failed to requeue action, buffer full")
			}
		}
	}(item)
}
