package repository

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedQuestionRepo(t *testing.T) (*questionRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return NewQuestionRepository(nil, client).(*questionRepository), srv
}

func TestFindActiveServesFromCache(t *testing.T) {
	repo, srv := newCachedQuestionRepo(t)

	repo.writeCache([]model.QuizQuestion{{
		ID:            1,
		Dimension:     model.DimensionPace,
		OptionAText:   "Ship it today",
		OptionBText:   "Polish it first",
		OptionADeltas: model.DeltaMap{model.DimensionPace: 6},
		OptionBDeltas: model.DeltaMap{model.DimensionPace: -6},
		Active:        true,
	}})
	require.True(t, srv.Exists(activeQuestionsCacheKey))

	// The repository was built with a nil database handle: a cache hit must
	// answer without touching it at all.
	got, err := repo.FindActive()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, model.DimensionPace, got[0].Dimension)
	assert.InDelta(t, 6, got[0].OptionADeltas[model.DimensionPace], 1e-9)
}

func TestCacheInvalidation(t *testing.T) {
	repo, srv := newCachedQuestionRepo(t)

	repo.writeCache([]model.QuizQuestion{{ID: 1, Active: true}})
	require.True(t, srv.Exists(activeQuestionsCacheKey))

	repo.invalidateCache()
	assert.False(t, srv.Exists(activeQuestionsCacheKey))
}

func TestCorruptCacheEntryIsDropped(t *testing.T) {
	repo, srv := newCachedQuestionRepo(t)

	require.NoError(t, srv.Set(activeQuestionsCacheKey, "not json"))
	cached, ok := repo.readCache()
	assert.False(t, ok)
	assert.Nil(t, cached)
	assert.False(t, srv.Exists(activeQuestionsCacheKey), "corrupt entries are evicted")
}

func TestNilClientDisablesCaching(t *testing.T) {
	repo := &questionRepository{}

	_, ok := repo.readCache()
	assert.False(t, ok)
	// Writes and invalidations must be no-ops, not panics.
	repo.writeCache([]model.QuizQuestion{{ID: 1}})
	repo.invalidateCache()
}
