package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/handler"
	"pokesoul/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// --- Manual Mocks ---

// MockMatchService
type MockMatchService struct {
	FindAndSaveMatchFunc func(ctx context.Context, userProfileID string) (*dto.MatchResponse, error)
	GetMatchHistoryFunc  func(ctx context.Context, userProfileID string) (*dto.MatchHistoryResponse, error)
}

func (m *MockMatchService) FindAndSaveMatch(ctx context.Context, userProfileID string) (*dto.MatchResponse, error) {
	if m.FindAndSaveMatchFunc != nil {
		return m.FindAndSaveMatchFunc(ctx, userProfileID)
	}
	panic("MockMatchService.FindAndSaveMatchFunc not implemented")
}

func (m *MockMatchService) GetMatchHistory(ctx context.Context, userProfileID string) (*dto.MatchHistoryResponse, error) {
	if m.GetMatchHistoryFunc != nil {
		return m.GetMatchHistoryFunc(ctx, userProfileID)
	}
	panic("MockMatchService.GetMatchHistoryFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	GetQuestionnaireFunc func(ctx context.Context) (*dto.QuestionnaireResponse, error)
	SubmitAnswersFunc    func(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error)
}

func (m *MockQuizService) GetQuestionnaire(ctx context.Context) (*dto.QuestionnaireResponse, error) {
	if m.GetQuestionnaireFunc != nil {
		return m.GetQuestionnaireFunc(ctx)
	}
	panic("MockQuizService.GetQuestionnaireFunc not implemented")
}

func (m *MockQuizService) SubmitAnswers(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error) {
	if m.SubmitAnswersFunc != nil {
		return m.SubmitAnswersFunc(ctx, req)
	}
	panic("MockQuizService.SubmitAnswersFunc not implemented")
}

// MockCatalogService
type MockCatalogService struct {
	GetPokemonByNameFunc func(ctx context.Context, name string) (*dto.PokemonResponse, error)
	ImportPokemonFunc    func(ctx context.Context, nameOrID string) (string, error)
}

func (m *MockCatalogService) GetPokemonByName(ctx context.Context, name string) (*dto.PokemonResponse, error) {
	if m.GetPokemonByNameFunc != nil {
		return m.GetPokemonByNameFunc(ctx, name)
	}
	panic("MockCatalogService.GetPokemonByNameFunc not implemented")
}

func (m *MockCatalogService) ImportPokemon(ctx context.Context, nameOrID string) (string, error) {
	if m.ImportPokemonFunc != nil {
		return m.ImportPokemonFunc(ctx, nameOrID)
	}
	panic("MockCatalogService.ImportPokemonFunc not implemented")
}

// newTestApp wires the handlers under the same error middleware the server uses.
func newTestApp(match *MockMatchService, quiz *MockQuizService, catalog *MockCatalogService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	api := app.Group("/api")
	if match != nil {
		matchHandler := handler.NewMatchHandler(match)
		api.Post("/match", matchHandler.FindMatch)
		api.Get("/profiles/:id/results", matchHandler.GetMatchHistory)
	}
	if quiz != nil {
		quizHandler := handler.NewQuizHandler(quiz)
		api.Get("/questions", quizHandler.GetQuestionnaire)
		api.Post("/profiles", quizHandler.SubmitAnswers)
	}
	if catalog != nil {
		pokemonHandler := handler.NewPokemonHandler(catalog)
		api.Get("/pokemons/:name", pokemonHandler.GetPokemonByName)
	}
	return app
}

func TestFindMatchEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		match := &MockMatchService{
			FindAndSaveMatchFunc: func(ctx context.Context, userProfileID string) (*dto.MatchResponse, error) {
				assert.Equal(t, "profile-1", userProfileID)
				return &dto.MatchResponse{
					UserProfileID: userProfileID,
					Pokemon:       dto.PokemonResponse{Name: "charmander"},
					MatchScore:    0.87,
					Message:       "Your Pokemon: charmander!",
				}, nil
			},
		}
		app := newTestApp(match, nil, nil)

		body, _ := json.Marshal(dto.MatchRequest{UserProfileID: "profile-1"})
		req := httptest.NewRequest("POST", "/api/match", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result dto.MatchResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "charmander", result.Pokemon.Name)
		assert.Equal(t, 0.87, result.MatchScore)
	})

	t.Run("MissingProfileIDRejected", func(t *testing.T) {
		app := newTestApp(&MockMatchService{}, nil, nil)

		body, _ := json.Marshal(dto.MatchRequest{})
		req := httptest.NewRequest("POST", "/api/match", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ProfileNotFoundMapsTo404", func(t *testing.T) {
		match := &MockMatchService{
			FindAndSaveMatchFunc: func(ctx context.Context, userProfileID string) (*dto.MatchResponse, error) {
				return nil, domain.NewProfileNotFoundError(userProfileID)
			},
		}
		app := newTestApp(match, nil, nil)

		body, _ := json.Marshal(dto.MatchRequest{UserProfileID: "ghost"})
		req := httptest.NewRequest("POST", "/api/match", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), string(domain.CodeProfileNotFound))
	})

	t.Run("NoMatchFoundMapsTo404", func(t *testing.T) {
		match := &MockMatchService{
			FindAndSaveMatchFunc: func(ctx context.Context, userProfileID string) (*dto.MatchResponse, error) {
				return nil, domain.NewNoMatchFoundError()
			},
		}
		app := newTestApp(match, nil, nil)

		body, _ := json.Marshal(dto.MatchRequest{UserProfileID: "profile-1"})
		req := httptest.NewRequest("POST", "/api/match", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetMatchHistoryEndpoint(t *testing.T) {
	match := &MockMatchService{
		GetMatchHistoryFunc: func(ctx context.Context, userProfileID string) (*dto.MatchHistoryResponse, error) {
			return &dto.MatchHistoryResponse{
				UserProfileID: userProfileID,
				Results: []dto.MatchHistoryItem{
					{PokemonID: "poke-1", PokemonName: "charmander", TotalScore: 0.9},
				},
			}, nil
		},
	}
	app := newTestApp(match, nil, nil)

	req := httptest.NewRequest("GET", "/api/profiles/profile-1/results", nil)
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.MatchHistoryResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Len(t, result.Results, 1)
	assert.Equal(t, "charmander", result.Results[0].PokemonName)
}

func TestQuizEndpoints(t *testing.T) {
	t.Run("GetQuestionnaire", func(t *testing.T) {
		quiz := &MockQuizService{
			GetQuestionnaireFunc: func(ctx context.Context) (*dto.QuestionnaireResponse, error) {
				return &dto.QuestionnaireResponse{
					Questions: []dto.QuestionResponse{
						{ID: "q1", Identifier: "favorite_color", Text: "What is your favorite color?"},
					},
				}, nil
			},
		}
		app := newTestApp(nil, quiz, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/questions", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("SubmitAnswersReturns201", func(t *testing.T) {
		quiz := &MockQuizService{
			SubmitAnswersFunc: func(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error) {
				assert.Equal(t, "opt-1", req.Answers["favorite_color"])
				return &dto.UserProfileResponse{ID: "profile-1"}, nil
			},
		}
		app := newTestApp(nil, quiz, nil)

		body, _ := json.Marshal(dto.SubmitAnswersRequest{
			Answers: map[string]string{"favorite_color": "opt-1"},
		})
		req := httptest.NewRequest("POST", "/api/profiles", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("ValidationErrorMapsTo400", func(t *testing.T) {
		quiz := &MockQuizService{
			SubmitAnswersFunc: func(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error) {
				return nil, domain.NewValidationError("unknown question: bogus")
			},
		}
		app := newTestApp(nil, quiz, nil)

		body, _ := json.Marshal(dto.SubmitAnswersRequest{
			Answers: map[string]string{"bogus": "opt-1"},
		})
		req := httptest.NewRequest("POST", "/api/profiles", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPokemonEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		catalog := &MockCatalogService{
			GetPokemonByNameFunc: func(ctx context.Context, name string) (*dto.PokemonResponse, error) {
				return &dto.PokemonResponse{Name: name, Types: []string{"fire"}}, nil
			},
		}
		app := newTestApp(nil, nil, catalog)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/pokemons/charmander", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		catalog := &MockCatalogService{
			GetPokemonByNameFunc: func(ctx context.Context, name string) (*dto.PokemonResponse, error) {
				return nil, domain.NewPokemonNotFoundError(name)
			},
		}
		app := newTestApp(nil, nil, catalog)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/pokemons/missingno", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
