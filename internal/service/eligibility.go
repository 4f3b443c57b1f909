package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

type eligibilityClient interface {
	CheckEligibility(ctx context.Context, courseID string) (*models.EligibilityVerdict, error)
}

type eligibilityObserver interface {
	ObserveEligibilityLookup(hit bool)
}

type inflightCheck struct {
	done    chan struct{}
	verdict models.EligibilityVerdict
}

// EligibilityCache memoises prerequisite verdicts per course for the
// lifetime of one registration session. A failed upstream query yields an
// eligible verdict without caching it: the check is a courtesy gate and the
// authoritative enforcement happens server-side at commit time.
type EligibilityCache struct {
	mu       sync.Mutex
	verdicts map[string]models.EligibilityVerdict
	inflight map[string]*inflightCheck

	client  eligibilityClient
	metrics eligibilityObserver
	logger  *zap.Logger
}

// NewEligibilityCache constructs an empty cache bound to the upstream
// eligibility endpoint.
func NewEligibilityCache(client eligibilityClient, metrics eligibilityObserver, logger *zap.Logger) *EligibilityCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityCache{
		verdicts: make(map[string]models.EligibilityVerdict),
		inflight: make(map[string]*inflightCheck),
		client:   client,
		metrics:  metrics,
		logger:   logger,
	}
}

// Check returns the verdict for a course, querying the upstream at most once
// per course id. Concurrent calls for the same id share a single query and
// observe the same eventual verdict.
func (c *EligibilityCache) Check(ctx context.Context, courseID string) models.EligibilityVerdict {
	c.mu.Lock()
	if verdict, ok := c.verdicts[courseID]; ok {
		c.mu.Unlock()
		c.observe(true)
		return verdict
	}
	if call, ok := c.inflight[courseID]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.verdict
		case <-ctx.Done():
			return models.EligibilityVerdict{Eligible: true}
		}
	}
	call := &inflightCheck{done: make(chan struct{})}
	c.inflight[courseID] = call
	c.mu.Unlock()

	c.observe(false)
	verdict, cacheable := c.query(ctx, courseID)
	call.verdict = verdict

	c.mu.Lock()
	if cacheable {
		c.verdicts[courseID] = verdict
	}
	delete(c.inflight, courseID)
	c.mu.Unlock()
	close(call.done)

	return verdict
}

// Peek returns the cached verdict without triggering a query.
func (c *EligibilityCache) Peek(courseID string) (models.EligibilityVerdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	verdict, ok := c.verdicts[courseID]
	return verdict, ok
}

func (c *EligibilityCache) query(ctx context.Context, courseID string) (models.EligibilityVerdict, bool) {
	verdict, err := c.client.CheckEligibility(ctx, courseID)
	if err != nil {
		c.logger.Warn("eligibility check failed, defaulting to eligible",
			zap.String("course_id", courseID), zap.Error(err))
		return models.EligibilityVerdict{Eligible: true}, false
	}
	return *verdict, true
}

func (c *EligibilityCache) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.ObserveEligibilityLookup(hit)
	}
}
