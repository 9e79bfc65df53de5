package service

import (
	"context"
	"encoding/json"
	"sort"

	"pokesoul/internal/domain"
	"pokesoul/internal/logger"

	"go.uber.org/zap"
)

// optionValue is the decoded semantic tag payload of an answer option.
// Every tag is optional; unknown keys are ignored.
type optionValue struct {
	Type    string `json:"type"`
	Color   string `json:"color"`
	Habitat string `json:"habitat"`
	Ability string `json:"ability"`
	Stat    string `json:"stat"`
	Shape   string `json:"shape"`
}

// decodeOptionValue parses an answer option's value payload. The payload must
// be a JSON object; anything else is an error the caller treats as a skip.
func decodeOptionValue(raw string) (*optionValue, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, err
	}
	var value optionValue
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return &value, nil
}

// PreferenceExtractor turns a raw answer record into a structured preference
// set and a derived personality archetype.
type PreferenceExtractor struct {
	questions domain.QuestionRepository
}

// NewPreferenceExtractor creates a new PreferenceExtractor
func NewPreferenceExtractor(questions domain.QuestionRepository) *PreferenceExtractor {
	return &PreferenceExtractor{questions: questions}
}

// ExtractPreferences extracts preferences from an answer record. A single bad
// entry (unresolvable option, malformed payload) is skipped, never fatal.
// Entries are processed in sorted question-identifier order so the extracted
// lists are deterministic regardless of map iteration order.
func (e *PreferenceExtractor) ExtractPreferences(ctx context.Context, answers map[string]string) *domain.UserPreferences {
	preferences := domain.NewUserPreferences()

	questionIDs := make([]string, 0, len(answers))
	for questionID := range answers {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)

	for _, questionID := range questionIDs {
		optionID := answers[questionID]

		option, err := e.questions.GetOptionByID(ctx, optionID)
		if err != nil || option == nil {
			logger.Get().Debug("Skipping unresolvable answer",
				zap.String("question", questionID),
				zap.String("option", optionID),
				zap.Error(err),
			)
			continue
		}

		value, err := decodeOptionValue(option.Value)
		if err != nil {
			logger.Get().Debug("Skipping answer with malformed option payload",
				zap.String("question", questionID),
				zap.String("option", optionID),
				zap.Error(err),
			)
			continue
		}

		applyOptionValue(value, preferences)
	}

	return preferences
}

// applyOptionValue folds one decoded payload into the preference set.
// List tags de-duplicate with insertion order preserved; stat tallies.
func applyOptionValue(value *optionValue, preferences *domain.UserPreferences) {
	if value.Type != "" {
		preferences.Types = appendUnique(preferences.Types, value.Type)
	}
	if value.Color != "" {
		preferences.Colors = appendUnique(preferences.Colors, value.Color)
	}
	if value.Habitat != "" {
		preferences.Habitats = appendUnique(preferences.Habitats, value.Habitat)
	}
	if value.Ability != "" {
		preferences.Abilities = appendUnique(preferences.Abilities, value.Ability)
	}
	if value.Stat != "" {
		preferences.StatPreferences[value.Stat]++
	}
	if value.Shape != "" {
		preferences.PersonalityTags = appendUnique(preferences.PersonalityTags, value.Shape)
	}
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// DeriveArchetype determines the personality archetype from the aggregated
// type and stat signal. Each observed type strengthens two archetypes by one;
// each stat tally strengthens two archetypes by its count. The archetype with
// the highest accumulator wins; ties resolve to the earliest archetype in the
// fixed enumeration order.
func (e *PreferenceExtractor) DeriveArchetype(preferences *domain.UserPreferences) string {
	scores := make(map[string]int, len(archetypeOrder))
	for _, archetype := range archetypeOrder {
		scores[archetype] = 0
	}

	for _, pokemonType := range preferences.Types {
		if pair, ok := typeArchetypes[pokemonType]; ok {
			scores[pair[0]]++
			scores[pair[1]]++
		}
	}

	for stat, count := range preferences.StatPreferences {
		if pair, ok := statArchetypes[stat]; ok {
			scores[pair[0]] += count
			scores[pair[1]] += count
		}
	}

	best := archetypeOrder[0]
	for _, archetype := range archetypeOrder[1:] {
		if scores[archetype] > scores[best] {
			best = archetype
		}
	}
	return best
}

// BuildMatchProfile extracts preferences, derives the archetype and projects
// both into the matching-ready profile. The archetype tag is always appended
// to the personality tags.
func (e *PreferenceExtractor) BuildMatchProfile(ctx context.Context, answers map[string]string) *domain.MatchProfile {
	preferences := e.ExtractPreferences(ctx, answers)
	archetype := e.DeriveArchetype(preferences)

	profile := &domain.MatchProfile{
		Types:           preferences.Types,
		AbilityKeywords: preferences.Abilities,
		PersonalityTags: append(append([]string{}, preferences.PersonalityTags...), archetype),
		StatPreferences: preferences.StatPreferences,
	}
	if len(preferences.Colors) > 0 {
		profile.Color = preferences.Colors[0]
	}
	if len(preferences.Habitats) > 0 {
		profile.Habitat = preferences.Habitats[0]
	}
	return profile
}
