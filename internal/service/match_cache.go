package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"pokesoul/internal/cache"
	"pokesoul/internal/domain"
	"pokesoul/internal/logger"

	"go.uber.org/zap"
)

// DefaultMatchCacheTTL is used when no TTL is configured.
const DefaultMatchCacheTTL = 1 * time.Hour

// CachedMatch is the memoized outcome of one scoring run, keyed by the
// canonical answer-set hash.
type CachedMatch struct {
	PokemonID string    `json:"pokemon_id"`
	Score     float64   `json:"score"`
	CachedAt  time.Time `json:"cached_at"`
}

// MatchCacheService memoizes match results by answers hash. It is an
// optimization only: every failure mode degrades to a miss, never an abort.
type MatchCacheService interface {
	// Get returns nil, nil on a miss (including malformed cached payloads).
	Get(ctx context.Context, answersHash string) (*CachedMatch, error)
	Put(ctx context.Context, answersHash string, pokemonID string, score float64) error
}

// AnswersHash computes the canonical sha256 hash of an answer record: the
// key-sorted pairs are JSON encoded so the hash is invariant to map
// iteration order.
func AnswersHash(answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, [2]string{key, answers[key]})
	}

	encoded, _ := json.Marshal(pairs)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

// matchCacheServiceImpl implements MatchCacheService using a generic cache.
type matchCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewMatchCacheService creates a new MatchCacheService. A nil cache yields a
// no-op implementation so an unreachable backend never breaks matching.
func NewMatchCacheService(cache domain.Cache, ttl time.Duration) MatchCacheService {
	if cache == nil {
		logger.Get().Warn("MatchCacheService initialized with nil cache. Service will be no-op.")
		return &noopMatchCacheService{}
	}
	if ttl <= 0 {
		ttl = DefaultMatchCacheTTL
	}
	return &matchCacheServiceImpl{cache: cache, ttl: ttl}
}

func (s *matchCacheServiceImpl) generateKey(answersHash string) string {
	return cache.GenerateCacheKey("matcher", "result", answersHash)
}

// Get retrieves a memoized match result.
func (s *matchCacheServiceImpl) Get(ctx context.Context, answersHash string) (*CachedMatch, error) {
	key := s.generateKey(answersHash)

	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Match cache miss", zap.String("key", key))
			return nil, nil
		}
		logger.Get().Warn("Match cache lookup failed, treating as miss",
			zap.Error(err), zap.String("key", key))
		return nil, err
	}

	var cached CachedMatch
	if err := json.Unmarshal([]byte(dataString), &cached); err != nil {
		logger.Get().Warn("Malformed cached match payload, treating as miss",
			zap.Error(err), zap.String("key", key))
		return nil, nil
	}
	if cached.PokemonID == "" {
		logger.Get().Warn("Cached match payload missing pokemon id, treating as miss",
			zap.String("key", key))
		return nil, nil
	}

	logger.Get().Debug("Match cache hit",
		zap.String("key", key), zap.String("pokemonID", cached.PokemonID))
	return &cached, nil
}

// Put memoizes a freshly computed match result with the configured TTL.
func (s *matchCacheServiceImpl) Put(ctx context.Context, answersHash string, pokemonID string, score float64) error {
	key := s.generateKey(answersHash)
	entry := CachedMatch{
		PokemonID: pokemonID,
		Score:     score,
		CachedAt:  time.Now(),
	}

	dataBytes, err := json.Marshal(entry)
	if err != nil {
		return domain.NewInternalError("failed to marshal match result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Warn("Failed to cache match result",
			zap.Error(err), zap.String("key", key))
		return err
	}

	logger.Get().Debug("Cached match result",
		zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// noopMatchCacheService is used when the cache backend is unavailable.
type noopMatchCacheService struct{}

func (s *noopMatchCacheService) Get(ctx context.Context, answersHash string) (*CachedMatch, error) {
	return nil, nil
}

func (s *noopMatchCacheService) Put(ctx context.Context, answersHash string, pokemonID string, score float64) error {
	return nil
}
