package service

import (
	"context"
	"testing"

	"pokesoul/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func option(id, questionID, value string) *domain.AnswerOption {
	return &domain.AnswerOption{ID: id, QuestionID: questionID, Text: id, Value: value}
}

func TestExtractPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("CollectsAllTagKinds", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, "opt-1").Return(option("opt-1", "q1", `{"type": "fire", "color": "red"}`), nil)
		questions.On("GetOptionByID", ctx, "opt-2").Return(option("opt-2", "q2", `{"habitat": "mountain", "ability": "blaze"}`), nil)
		questions.On("GetOptionByID", ctx, "opt-3").Return(option("opt-3", "q3", `{"stat": "attack", "shape": "upright"}`), nil)

		extractor := NewPreferenceExtractor(questions)
		prefs := extractor.ExtractPreferences(ctx, map[string]string{
			"q1": "opt-1",
			"q2": "opt-2",
			"q3": "opt-3",
		})

		assert.Equal(t, []string{"fire"}, prefs.Types)
		assert.Equal(t, []string{"red"}, prefs.Colors)
		assert.Equal(t, []string{"mountain"}, prefs.Habitats)
		assert.Equal(t, []string{"blaze"}, prefs.Abilities)
		assert.Equal(t, []string{"upright"}, prefs.PersonalityTags)
		assert.Equal(t, map[string]int{"attack": 1}, prefs.StatPreferences)
	})

	t.Run("DeduplicatesListsAndTalliesStats", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, "opt-1").Return(option("opt-1", "q1", `{"type": "fire", "stat": "speed"}`), nil)
		questions.On("GetOptionByID", ctx, "opt-2").Return(option("opt-2", "q2", `{"type": "fire", "stat": "speed"}`), nil)

		extractor := NewPreferenceExtractor(questions)
		prefs := extractor.ExtractPreferences(ctx, map[string]string{"q1": "opt-1", "q2": "opt-2"})

		assert.Equal(t, []string{"fire"}, prefs.Types)
		assert.Equal(t, 2, prefs.StatPreferences["speed"])
	})

	t.Run("SkipsUnresolvableAndMalformedEntries", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, "missing").Return(nil, nil)
		questions.On("GetOptionByID", ctx, "broken").Return(option("broken", "q2", `not-json`), nil)
		questions.On("GetOptionByID", ctx, "scalar").Return(option("scalar", "q3", `"fire"`), nil)
		questions.On("GetOptionByID", ctx, "good").Return(option("good", "q4", `{"type": "water"}`), nil)

		extractor := NewPreferenceExtractor(questions)
		prefs := extractor.ExtractPreferences(ctx, map[string]string{
			"q1": "missing",
			"q2": "broken",
			"q3": "scalar",
			"q4": "good",
		})

		assert.Equal(t, []string{"water"}, prefs.Types)
		assert.Empty(t, prefs.Colors)
	})

	t.Run("UnknownTagKeysAreIgnored", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, "opt-1").Return(option("opt-1", "q1", `{"type": "grass", "mood": "sleepy"}`), nil)

		extractor := NewPreferenceExtractor(questions)
		prefs := extractor.ExtractPreferences(ctx, map[string]string{"q1": "opt-1"})

		assert.Equal(t, []string{"grass"}, prefs.Types)
		assert.Empty(t, prefs.PersonalityTags)
	})
}

func TestDeriveArchetype(t *testing.T) {
	extractor := NewPreferenceExtractor(new(MockQuestionRepository))

	t.Run("EmptyPreferencesYieldFirstArchetype", func(t *testing.T) {
		assert.Equal(t, "adventurous", extractor.DeriveArchetype(domain.NewUserPreferences()))
	})

	t.Run("FireTypePushesIntense", func(t *testing.T) {
		prefs := domain.NewUserPreferences()
		prefs.Types = []string{"fire"}
		assert.Equal(t, "intense", extractor.DeriveArchetype(prefs))
	})

	t.Run("StatTalliesOutweighSingleType", func(t *testing.T) {
		prefs := domain.NewUserPreferences()
		prefs.Types = []string{"fire"}
		prefs.StatPreferences = map[string]int{"defense": 3}
		// defense x3 gives protective and calm 3 each, intense only 1.
		assert.Equal(t, "calm", extractor.DeriveArchetype(prefs))
	})

	t.Run("TiesResolveToEnumerationOrder", func(t *testing.T) {
		prefs := domain.NewUserPreferences()
		// water gives empathetic+calm 1 each; tie resolves to empathetic,
		// which precedes calm in the fixed order.
		prefs.Types = []string{"water"}
		assert.Equal(t, "empathetic", extractor.DeriveArchetype(prefs))
	})

	t.Run("UnmappedTypesContributeNothing", func(t *testing.T) {
		prefs := domain.NewUserPreferences()
		prefs.Types = []string{"bug", "normal"}
		assert.Equal(t, "adventurous", extractor.DeriveArchetype(prefs))
	})
}

func TestBuildMatchProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("ProjectsPreferencesAndAppendsArchetype", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, "opt-1").Return(option("opt-1", "q1", `{"type": "fire", "color": "red", "habitat": "mountain", "shape": "upright"}`), nil)

		extractor := NewPreferenceExtractor(questions)
		profile := extractor.BuildMatchProfile(ctx, map[string]string{"q1": "opt-1"})

		assert.Equal(t, []string{"fire"}, profile.Types)
		assert.Equal(t, "red", profile.Color)
		assert.Equal(t, "mountain", profile.Habitat)
		assert.Equal(t, []string{"upright", "intense"}, profile.PersonalityTags)
	})

	t.Run("EmptyAnswersStillCarryAnArchetype", func(t *testing.T) {
		extractor := NewPreferenceExtractor(new(MockQuestionRepository))
		profile := extractor.BuildMatchProfile(ctx, map[string]string{})

		assert.Equal(t, []string{"adventurous"}, profile.PersonalityTags)
		assert.Empty(t, profile.Types)
		assert.Empty(t, profile.Color)
	})

	t.Run("FirstColorAndHabitatWin", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("GetOptionByID", ctx, mock.Anything).Return(option("a", "q", `{"color": "red"}`), nil).Once()
		questions.On("GetOptionByID", ctx, mock.Anything).Return(option("b", "q", `{"color": "blue"}`), nil).Once()

		extractor := NewPreferenceExtractor(questions)
		profile := extractor.BuildMatchProfile(ctx, map[string]string{"q1": "a", "q2": "b"})

		assert.Equal(t, "red", profile.Color)
	})
}
