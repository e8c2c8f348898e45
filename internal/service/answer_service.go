package service

import (
	"context"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository"
)

type AnswerService struct {
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
}

func NewAnswerService(answers repository.AnswerRepository, questions repository.QuestionRepository) *AnswerService {
	return &AnswerService{answers: answers, questions: questions}
}

// Add stores an answer. An unknown question id fails in the store.
func (s *AnswerService) Add(ctx context.Context, input domain.NewAnswer) (*domain.Answer, error) {
	if input.Content == "" || input.QuestionID == 0 {
		return nil, missingParameters("content", "question_id")
	}

	answer := &domain.Answer{
		Content:    input.Content,
		QuestionID: input.QuestionID,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// ListByQuestion returns the answers of an existing question ordered by id.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID domain.QuestionID) ([]*domain.Answer, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.answers.GetByQuestionID(ctx, questionID)
}
