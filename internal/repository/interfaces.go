package repository

import (
	"context"

	"github.com/dom/qna-service/internal/domain"
)

// AccountRepository is the only store capability the auth core needs.
// Email uniqueness is enforced by the implementation, not by callers.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	List(ctx context.Context, offset, limit int) ([]*domain.Question, error)
	GetByID(ctx context.Context, id domain.QuestionID) (*domain.Question, error)
	Update(ctx context.Context, question *domain.Question) error
	Delete(ctx context.Context, id domain.QuestionID) error
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *domain.Answer) error
	GetByQuestionID(ctx context.Context, questionID domain.QuestionID) ([]*domain.Answer, error)
}

type Repositories struct {
	Account  AccountRepository
	Question QuestionRepository
	Answer   AnswerRepository
}
