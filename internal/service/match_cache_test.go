package service

import (
	"context"
	"testing"
	"time"

	"pokesoul/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestAnswersHash(t *testing.T) {
	t.Run("StableAcrossCalls", func(t *testing.T) {
		answers := map[string]string{"q1": "a", "q2": "b"}
		assert.Equal(t, AnswersHash(answers), AnswersHash(answers))
	})

	t.Run("IndependentOfInsertionOrder", func(t *testing.T) {
		first := map[string]string{"q1": "a", "q2": "b", "q3": "c"}
		second := map[string]string{"q3": "c", "q1": "a", "q2": "b"}
		assert.Equal(t, AnswersHash(first), AnswersHash(second))
	})

	t.Run("DifferentContentDiffers", func(t *testing.T) {
		assert.NotEqual(t,
			AnswersHash(map[string]string{"q1": "a"}),
			AnswersHash(map[string]string{"q1": "b"}),
		)
		assert.NotEqual(t,
			AnswersHash(map[string]string{"q1": "a"}),
			AnswersHash(map[string]string{"q2": "a"}),
		)
	})

	t.Run("Is64HexChars", func(t *testing.T) {
		assert.Len(t, AnswersHash(map[string]string{"q1": "a"}), 64)
	})
}

func TestMatchCacheService(t *testing.T) {
	ctx := context.Background()
	hash := AnswersHash(map[string]string{"q1": "a"})

	t.Run("MissReturnsNilNil", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss)

		svc := NewMatchCacheService(cache, time.Hour)
		cached, err := svc.Get(ctx, hash)

		assert.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("BackendErrorIsSurfaced", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, mock.Anything).Return("", domain.CacheError("connection refused"))

		svc := NewMatchCacheService(cache, time.Hour)
		cached, err := svc.Get(ctx, hash)

		assert.Error(t, err)
		assert.Nil(t, cached)
	})

	t.Run("MalformedPayloadIsAMiss", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, mock.Anything).Return("{broken", nil)

		svc := NewMatchCacheService(cache, time.Hour)
		cached, err := svc.Get(ctx, hash)

		assert.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("PayloadWithoutPokemonIDIsAMiss", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, mock.Anything).Return(`{"score": 0.5}`, nil)

		svc := NewMatchCacheService(cache, time.Hour)
		cached, err := svc.Get(ctx, hash)

		assert.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("PutThenGetRoundTrips", func(t *testing.T) {
		var stored string
		cache := new(MockCache)
		cache.On("Set", ctx, mock.Anything, mock.Anything, time.Hour).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(nil)

		svc := NewMatchCacheService(cache, time.Hour)
		assert.NoError(t, svc.Put(ctx, hash, "poke-1", 0.75))

		cache.On("Get", ctx, mock.Anything).Return(stored, nil)
		cached, err := svc.Get(ctx, hash)

		assert.NoError(t, err)
		assert.Equal(t, "poke-1", cached.PokemonID)
		assert.Equal(t, 0.75, cached.Score)
	})

	t.Run("NilCacheYieldsNoop", func(t *testing.T) {
		svc := NewMatchCacheService(nil, time.Hour)

		cached, err := svc.Get(ctx, hash)
		assert.NoError(t, err)
		assert.Nil(t, cached)

		assert.NoError(t, svc.Put(ctx, hash, "poke-1", 0.5))
	})
}
