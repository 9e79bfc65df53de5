package service

import (
	"strings"

	"pokesoul/internal/domain"
	"pokesoul/internal/util"
)

// The scoring functions below are pure and deterministic. Each returns a
// value in [0.0, 1.0] except scoreBaseStats, which can exceed 1.0 if a
// candidate's stats exceed the assumed per-stat maximum.

// scoreTypes scores type overlap. A candidate whose types fully cover the
// preferred set scores 1.0 regardless of extra types; a partial overlap
// scores the covered fraction of the preferred set.
func scoreTypes(pokemonTypes, preferredTypes []string) float64 {
	if len(preferredTypes) == 0 {
		return 0.0
	}

	pokemonTypeSet := make(map[string]struct{}, len(pokemonTypes))
	for _, t := range pokemonTypes {
		pokemonTypeSet[t] = struct{}{}
	}

	preferredSet := make(map[string]struct{}, len(preferredTypes))
	intersection := 0
	for _, t := range preferredTypes {
		if _, seen := preferredSet[t]; seen {
			continue
		}
		preferredSet[t] = struct{}{}
		if _, ok := pokemonTypeSet[t]; ok {
			intersection++
		}
	}

	if intersection == len(preferredSet) {
		return 1.0
	}
	if intersection > 0 {
		return float64(intersection) / float64(len(preferredSet))
	}
	return 0.0
}

// scoreColor scores color affinity via case-insensitive string similarity.
func scoreColor(pokemonColor, preferredColor string) float64 {
	if pokemonColor == "" || preferredColor == "" {
		return 0.0
	}
	return util.SimilarityRatio(strings.ToLower(pokemonColor), strings.ToLower(preferredColor))
}

// scoreHabitat scores habitat affinity via case-insensitive string similarity.
func scoreHabitat(pokemonHabitat, preferredHabitat string) float64 {
	if pokemonHabitat == "" || preferredHabitat == "" {
		return 0.0
	}
	return util.SimilarityRatio(strings.ToLower(pokemonHabitat), strings.ToLower(preferredHabitat))
}

// scoreAbilities averages pairwise string similarity across the full cross
// product of candidate abilities and preferred ability keywords.
func scoreAbilities(pokemonAbilities, preferredAbilities []string) float64 {
	if len(pokemonAbilities) == 0 || len(preferredAbilities) == 0 {
		return 0.0
	}

	total := 0.0
	for _, ability := range pokemonAbilities {
		for _, preferred := range preferredAbilities {
			total += util.SimilarityRatio(strings.ToLower(ability), strings.ToLower(preferred))
		}
	}
	return total / float64(len(pokemonAbilities)*len(preferredAbilities))
}

// scoreBaseStats sums the candidate's values for the stats relevant to the
// profile's personality tags and normalizes by count * maxStatValue.
func scoreBaseStats(pokemon *domain.Pokemon, personalityTags []string) float64 {
	relevantStats := make(map[string]struct{})
	for _, tag := range personalityTags {
		for _, stat := range archetypeStats[tag] {
			relevantStats[stat] = struct{}{}
		}
	}

	if len(relevantStats) == 0 {
		return 0.0
	}

	total := 0
	for stat := range relevantStats {
		total += pokemon.Stat(stat)
	}
	return float64(total) / float64(len(relevantStats)*maxStatValue)
}

// scorePersonality scores the candidate's flavor text against the
// space-joined personality tags.
func scorePersonality(pokemon *domain.Pokemon, personalityTags []string) float64 {
	if pokemon.FlavorText == "" || len(personalityTags) == 0 {
		return 0.0
	}
	personalityText := strings.Join(personalityTags, " ")
	return util.SimilarityRatio(strings.ToLower(pokemon.FlavorText), strings.ToLower(personalityText))
}

// calculateMatchScore computes the fixed-weight total score of one candidate
// against a match profile.
func calculateMatchScore(pokemon *domain.Pokemon, profile *domain.MatchProfile) float64 {
	typeScore := scoreTypes(pokemon.Types, profile.Types)
	colorScore := scoreColor(pokemon.Color, profile.Color)
	habitatScore := scoreHabitat(pokemon.Habitat, profile.Habitat)
	abilityScore := scoreAbilities(pokemon.Abilities, profile.AbilityKeywords)
	statsScore := scoreBaseStats(pokemon, profile.PersonalityTags)
	personalityScore := scorePersonality(pokemon, profile.PersonalityTags)

	return WeightTypes*typeScore +
		WeightColor*colorScore +
		WeightHabitat*habitatScore +
		WeightAbilities*abilityScore +
		WeightBaseStats*statsScore +
		WeightFlavorText*personalityScore
}
