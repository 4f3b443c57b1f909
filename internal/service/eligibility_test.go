package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

type mockEligibilityClient struct {
	calls   int64
	release chan struct{}
	verdict *models.EligibilityVerdict
	err     error
}

func (m *mockEligibilityClient) CheckEligibility(ctx context.Context, courseID string) (*models.EligibilityVerdict, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.verdict != nil {
		return m.verdict, nil
	}
	return &models.EligibilityVerdict{Eligible: true}, nil
}

func TestEligibilityCacheReusesVerdict(t *testing.T) {
	client := &mockEligibilityClient{verdict: &models.EligibilityVerdict{
		Eligible:             false,
		MissingPrerequisites: []string{"CS101"},
	}}
	cache := NewEligibilityCache(client, nil, nil)

	first := cache.Check(context.Background(), "c1")
	second := cache.Check(context.Background(), "c1")

	assert.False(t, first.Eligible)
	assert.Equal(t, []string{"CS101"}, second.MissingPrerequisites)
	assert.EqualValues(t, 1, atomic.LoadInt64(&client.calls))
}

func TestEligibilityCacheDeduplicatesConcurrentChecks(t *testing.T) {
	client := &mockEligibilityClient{release: make(chan struct{})}
	cache := NewEligibilityCache(client, nil, nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]models.EligibilityVerdict, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Check(context.Background(), "c1")
		}(i)
	}

	close(client.release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt64(&client.calls))
	for _, verdict := range results {
		assert.True(t, verdict.Eligible)
	}
}

func TestEligibilityCacheDefaultsEligibleOnFailure(t *testing.T) {
	client := &mockEligibilityClient{err: errors.New("boom")}
	cache := NewEligibilityCache(client, nil, nil)

	verdict := cache.Check(context.Background(), "c1")
	assert.True(t, verdict.Eligible)
	assert.Empty(t, verdict.MissingPrerequisites)

	// failed lookups are not memoised: the next check queries again
	_, cached := cache.Peek("c1")
	assert.False(t, cached)
	cache.Check(context.Background(), "c1")
	assert.EqualValues(t, 2, atomic.LoadInt64(&client.calls))
}

func TestEligibilityCacheDistinctCoursesQuerySeparately(t *testing.T) {
	client := &mockEligibilityClient{}
	cache := NewEligibilityCache(client, nil, nil)

	cache.Check(context.Background(), "c1")
	cache.Check(context.Background(), "c2")
	assert.EqualValues(t, 2, atomic.LoadInt64(&client.calls))

	verdict, cached := cache.Peek("c1")
	require.True(t, cached)
	assert.True(t, verdict.Eligible)
}
