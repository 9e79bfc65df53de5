package service

import (
	"context"

	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/logger"
	"pokesoul/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for questionnaire delivery and answer
// record creation.
type QuizService interface {
	// GetQuestionnaire returns all questions with their options. Semantic
	// tag payloads are never exposed.
	GetQuestionnaire(ctx context.Context) (*dto.QuestionnaireResponse, error)

	// SubmitAnswers validates an answer set and creates an immutable answer
	// record.
	SubmitAnswers(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error)
}

// quizService implements QuizService
type quizService struct {
	questions domain.QuestionRepository
	profiles  domain.UserProfileRepository
}

// NewQuizService creates a new instance of quizService
func NewQuizService(questions domain.QuestionRepository, profiles domain.UserProfileRepository) QuizService {
	return &quizService{
		questions: questions,
		profiles:  profiles,
	}
}

// GetQuestionnaire implements QuizService
func (s *quizService) GetQuestionnaire(ctx context.Context) (*dto.QuestionnaireResponse, error) {
	questions, err := s.questions.GetAllQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questionnaire", err)
	}

	response := &dto.QuestionnaireResponse{
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
	}
	for _, question := range questions {
		item := dto.QuestionResponse{
			ID:         question.ID,
			Identifier: question.Identifier,
			Text:       question.Text,
			Options:    make([]dto.AnswerOptionResponse, 0, len(question.Options)),
		}
		for _, option := range question.Options {
			item.Options = append(item.Options, dto.AnswerOptionResponse{
				ID:   option.ID,
				Text: option.Text,
			})
		}
		response.Questions = append(response.Questions, item)
	}
	return response, nil
}

// SubmitAnswers implements QuizService. Answer keys must name existing
// questions and values must name options belonging to that question.
func (s *quizService) SubmitAnswers(ctx context.Context, req *dto.SubmitAnswersRequest) (*dto.UserProfileResponse, error) {
	if len(req.Answers) == 0 {
		return nil, domain.NewInvalidInputError("answers are required")
	}

	for identifier, optionID := range req.Answers {
		question, err := s.questions.GetQuestionByIdentifier(ctx, identifier)
		if err != nil {
			return nil, domain.NewInternalError("Failed to validate answers", err)
		}
		if question == nil {
			return nil, domain.NewValidationError("unknown question: " + identifier)
		}

		option, err := s.questions.GetOptionByID(ctx, optionID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to validate answers", err)
		}
		if option == nil || option.QuestionID != question.ID {
			return nil, domain.NewValidationError("invalid option for question: " + identifier)
		}
	}

	profile := domain.NewUserProfile(req.Answers)
	profile.ID = util.NewULID()

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, domain.NewInternalError("Failed to save user profile", err)
	}

	logger.Get().Info("Created user profile",
		zap.String("userProfileID", profile.ID),
		zap.Int("answers", len(profile.Answers)),
	)

	return &dto.UserProfileResponse{
		ID:        profile.ID,
		CreatedAt: profile.CreatedAt,
	}, nil
}
