package service

import (
	"context"
	"fmt"

	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/logger"
	"pokesoul/internal/util"

	"go.uber.org/zap"
)

// MatchService defines the interface for the matching engine.
type MatchService interface {
	// FindAndSaveMatch scores every catalog candidate against the profile's
	// derived preferences, persists the winner as an append-only match
	// result and returns it.
	FindAndSaveMatch(ctx context.Context, userProfileID string) (*dto.MatchResponse, error)

	// GetMatchHistory returns the profile's prior match result rows.
	GetMatchHistory(ctx context.Context, userProfileID string) (*dto.MatchHistoryResponse, error)
}

// matchService implements MatchService
type matchService struct {
	pokemons   domain.PokemonRepository
	profiles   domain.UserProfileRepository
	results    domain.MatchResultRepository
	extractor  *PreferenceExtractor
	matchCache MatchCacheService
}

// NewMatchService creates a new instance of matchService. The cache service
// is injected explicitly; pass a no-op implementation to disable memoization.
func NewMatchService(
	pokemons domain.PokemonRepository,
	profiles domain.UserProfileRepository,
	results domain.MatchResultRepository,
	extractor *PreferenceExtractor,
	matchCache MatchCacheService,
) MatchService {
	return &matchService{
		pokemons:   pokemons,
		profiles:   profiles,
		results:    results,
		extractor:  extractor,
		matchCache: matchCache,
	}
}

// FindAndSaveMatch implements MatchService
func (s *matchService) FindAndSaveMatch(ctx context.Context, userProfileID string) (*dto.MatchResponse, error) {
	profile, err := s.profiles.GetByID(ctx, userProfileID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user profile", err)
	}
	if profile == nil {
		return nil, domain.NewProfileNotFoundError(userProfileID)
	}
	if len(profile.Answers) == 0 {
		return nil, domain.NewNoAnswersError(userProfileID)
	}

	answersHash := AnswersHash(profile.Answers)

	// 1. Cache lookup. Hits are verified against the candidate store before
	// being trusted; any failure falls through to fresh scoring.
	if cached, errCache := s.matchCache.Get(ctx, answersHash); errCache == nil && cached != nil {
		pokemon, errResolve := s.pokemons.GetByID(ctx, cached.PokemonID)
		if errResolve == nil && pokemon != nil {
			logger.Get().Info("Using cached match result",
				zap.String("userProfileID", userProfileID),
				zap.String("pokemon", pokemon.Name),
				zap.Float64("score", cached.Score),
			)
			return s.persistAndRespond(ctx, profile, pokemon, cached.Score)
		}
		logger.Get().Warn("Cached pokemon no longer resolvable, performing full matching",
			zap.String("pokemonID", cached.PokemonID),
			zap.Error(errResolve),
		)
	} else if errCache != nil {
		logger.Get().Warn("Match cache lookup error, performing full matching",
			zap.Error(errCache),
			zap.String("userProfileID", userProfileID),
		)
	}

	// 2. Full matching.
	matchProfile := s.extractor.BuildMatchProfile(ctx, profile.Answers)

	candidates, err := s.pokemons.GetAllOrderedByPopularity(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load pokemon candidates", err)
	}

	best, bestScore := s.findBestMatch(candidates, matchProfile)
	if best == nil {
		logger.Get().Info("No suitable match found",
			zap.String("userProfileID", userProfileID),
			zap.Int("candidates", len(candidates)),
		)
		return nil, domain.NewNoMatchFoundError()
	}

	logger.Get().Info("Best match found",
		zap.String("userProfileID", userProfileID),
		zap.String("pokemon", best.Name),
		zap.Float64("score", bestScore),
	)

	// 3. Write-through before persisting; a cache failure is logged only.
	if errPut := s.matchCache.Put(ctx, answersHash, best.ID, bestScore); errPut != nil {
		logger.Get().Warn("Failed to write match result to cache",
			zap.Error(errPut),
			zap.String("pokemonID", best.ID),
		)
	}

	// 4. Persist the result row.
	return s.persistAndRespond(ctx, profile, best, bestScore)
}

// findBestMatch scores every candidate and selects the strictly-highest
// score. Exact ties resolve lexicographically by name so the outcome does
// not depend on store iteration order.
func (s *matchService) findBestMatch(candidates []*domain.Pokemon, profile *domain.MatchProfile) (*domain.Pokemon, float64) {
	var best *domain.Pokemon
	bestScore := 0.0

	for _, candidate := range candidates {
		score := s.safeScore(candidate, profile)
		if score > bestScore || (best != nil && score == bestScore && candidate.Name < best.Name) {
			best = candidate
			bestScore = score
		}
	}
	return best, bestScore
}

// safeScore computes one candidate's total score. A candidate with malformed
// fields must not abort the run: a panic during scoring degrades to a zero
// score and the loop continues.
func (s *matchService) safeScore(candidate *domain.Pokemon, profile *domain.MatchProfile) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Scoring candidate panicked, assigning zero score",
				zap.String("pokemon", candidate.Name),
				zap.Any("panic", r),
			)
			score = 0.0
		}
	}()
	return calculateMatchScore(candidate, profile)
}

// persistAndRespond appends a match result row and builds the API response.
// Persistence failure is fatal for the run.
func (s *matchService) persistAndRespond(ctx context.Context, profile *domain.UserProfile, pokemon *domain.Pokemon, score float64) (*dto.MatchResponse, error) {
	result := &domain.MatchResult{
		ID:            util.NewULID(),
		UserProfileID: profile.ID,
		PokemonID:     pokemon.ID,
		TotalScore:    score,
	}
	if err := s.results.Save(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to save match result", err)
	}

	return &dto.MatchResponse{
		UserProfileID: profile.ID,
		Pokemon:       toPokemonResponse(pokemon),
		MatchScore:    score,
		Message:       fmt.Sprintf("Your Pokemon: %s! %s", pokemon.Name, pokemon.FlavorText),
	}, nil
}

// GetMatchHistory implements MatchService
func (s *matchService) GetMatchHistory(ctx context.Context, userProfileID string) (*dto.MatchHistoryResponse, error) {
	profile, err := s.profiles.GetByID(ctx, userProfileID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user profile", err)
	}
	if profile == nil {
		return nil, domain.NewProfileNotFoundError(userProfileID)
	}

	results, err := s.results.GetByUserProfileID(ctx, userProfileID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load match history", err)
	}

	items := make([]dto.MatchHistoryItem, 0, len(results))
	for _, result := range results {
		item := dto.MatchHistoryItem{
			PokemonID:  result.PokemonID,
			TotalScore: result.TotalScore,
			CreatedAt:  result.CreatedAt,
		}
		if pokemon, errResolve := s.pokemons.GetByID(ctx, result.PokemonID); errResolve == nil && pokemon != nil {
			item.PokemonName = pokemon.Name
		}
		items = append(items, item)
	}

	return &dto.MatchHistoryResponse{
		UserProfileID: userProfileID,
		Results:       items,
	}, nil
}

// toPokemonResponse maps a domain candidate to its public representation.
func toPokemonResponse(p *domain.Pokemon) dto.PokemonResponse {
	return dto.PokemonResponse{
		ID:         p.ID,
		Name:       p.Name,
		Types:      p.Types,
		Color:      p.Color,
		Habitat:    p.Habitat,
		Abilities:  p.Abilities,
		FlavorText: p.FlavorText,
		BaseStats: dto.BaseStatsResponse{
			HP:             p.HP,
			Attack:         p.Attack,
			Defense:        p.Defense,
			SpecialAttack:  p.SpecialAttack,
			SpecialDefense: p.SpecialDefense,
			Speed:          p.Speed,
		},
		ImageURL: p.ImageURL,
		CriesURL: p.CriesURL,
	}
}
