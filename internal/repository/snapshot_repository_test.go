package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

func TestSnapshotRepositoryNilClientDegradesToNoop(t *testing.T) {
	repo := NewSnapshotRepository(nil, zap.NewNop())

	var dest []string
	err := repo.Get(context.Background(), "catalog:pool", &dest)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCacheMiss.Code, appErrors.FromError(err).Code)
	assert.Empty(t, dest)

	assert.NoError(t, repo.Set(context.Background(), "catalog:pool", []string{"c1"}, time.Minute))
	assert.NoError(t, repo.Invalidate(context.Background(), "catalog:*"))
	assert.NoError(t, repo.Close())
}
