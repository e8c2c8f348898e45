package service

import (
	"context"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository"
	"github.com/samber/oops"
)

type QuestionService struct {
	questions repository.QuestionRepository
}

func NewQuestionService(questions repository.QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

func (s *QuestionService) Add(ctx context.Context, input domain.NewQuestion) (*domain.Question, error) {
	if input.Title == "" || input.Content == "" {
		return nil, missingParameters("title", "content")
	}

	question := &domain.Question{
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// List returns questions ordered by id. A zero limit means the default page
// size.
func (s *QuestionService) List(ctx context.Context, page domain.Pagination) ([]*domain.Question, error) {
	if page.Offset < 0 || page.Limit < 0 {
		return nil, oops.Code("PARSE").
			With("offset", page.Offset).
			With("limit", page.Limit).
			Wrap(domain.ErrParse)
	}
	if page.Limit == 0 {
		page.Limit = domain.DefaultPageLimit
	}
	return s.questions.List(ctx, page.Offset, page.Limit)
}

func (s *QuestionService) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Update replaces title, content and tags of question id. The id in the
// payload is ignored.
func (s *QuestionService) Update(ctx context.Context, id domain.QuestionID, input domain.Question) (*domain.Question, error) {
	if input.Title == "" || input.Content == "" {
		return nil, missingParameters("title", "content")
	}

	input.ID = id
	if err := s.questions.Update(ctx, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

func (s *QuestionService) Delete(ctx context.Context, id domain.QuestionID) error {
	return s.questions.Delete(ctx, id)
}

func missingParameters(fields ...string) error {
	return oops.Code("MISSING_PARAMETERS").
		With("required", fields).
		Wrap(domain.ErrMissingParameters)
}
