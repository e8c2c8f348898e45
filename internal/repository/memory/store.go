// Package memory provides map backed repositories with the same error
// contract as the postgres ones. Used by tests and by `serve --memory`.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository"
	"github.com/samber/oops"
)

var (
	// ErrRecordNotFound is the cause attached to lookups that find nothing.
	ErrRecordNotFound = errors.New("record not found")
	errDuplicateEmail = errors.New("duplicate key value violates unique constraint on email")
)

type store struct {
	mu sync.RWMutex

	accounts        map[domain.AccountID]*domain.Account
	accountsByEmail map[string]domain.AccountID
	nextAccountID   domain.AccountID

	questions      map[domain.QuestionID]*domain.Question
	nextQuestionID domain.QuestionID

	answers      map[domain.AnswerID]*domain.Answer
	nextAnswerID domain.AnswerID
}

func NewRepositories() *repository.Repositories {
	s := &store{
		accounts:        make(map[domain.AccountID]*domain.Account),
		accountsByEmail: make(map[string]domain.AccountID),
		questions:       make(map[domain.QuestionID]*domain.Question),
		answers:         make(map[domain.AnswerID]*domain.Answer),
	}
	return &repository.Repositories{
		Account:  &accountRepository{s},
		Question: &questionRepository{s},
		Answer:   &answerRepository{s},
	}
}

func queryError(op string, cause error) error {
	return oops.Code("DATABASE_QUERY").
		With("operation", op).
		Wrap(fmt.Errorf("%w: %w", domain.ErrDatabaseQuery, cause))
}

type accountRepository struct {
	s *store
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.accountsByEmail[account.Email]; exists {
		return queryError("create account", errDuplicateEmail)
	}

	r.s.nextAccountID++
	account.ID = r.s.nextAccountID
	stored := *account
	r.s.accounts[account.ID] = &stored
	r.s.accountsByEmail[account.Email] = account.ID
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.accountsByEmail[email]
	if !ok {
		return nil, queryError("get account by email", ErrRecordNotFound)
	}
	account := *r.s.accounts[id]
	return &account, nil
}

type questionRepository struct {
	s *store
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextQuestionID++
	question.ID = r.s.nextQuestionID
	r.s.questions[question.ID] = cloneQuestion(question)
	return nil
}

func (r *questionRepository) List(ctx context.Context, offset, limit int) ([]*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]domain.QuestionID, 0, len(r.s.questions))
	for id := range r.s.questions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	questions := make([]*domain.Question, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(questions) >= limit {
			break
		}
		questions = append(questions, cloneQuestion(r.s.questions[id]))
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := r.s.questions[id]
	if !ok {
		return nil, notFound("get question", id)
	}
	return cloneQuestion(q), nil
}

func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[question.ID]; !ok {
		return notFound("update question", question.ID)
	}
	r.s.questions[question.ID] = cloneQuestion(question)
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[id]; !ok {
		return notFound("delete question", id)
	}
	delete(r.s.questions, id)
	for aid, a := range r.s.answers {
		if a.QuestionID == id {
			delete(r.s.answers, aid)
		}
	}
	return nil
}

func notFound(op string, id domain.QuestionID) error {
	return oops.Code("QUESTION_NOT_FOUND").
		With("operation", op).
		With("question_id", id).
		Wrap(domain.ErrQuestionNotFound)
}

func cloneQuestion(q *domain.Question) *domain.Question {
	c := *q
	c.Tags = slices.Clone(q.Tags)
	return &c
}

type answerRepository struct {
	s *store
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[answer.QuestionID]; !ok {
		return queryError("create answer", fmt.Errorf("foreign key violation: question %d does not exist", answer.QuestionID))
	}

	r.s.nextAnswerID++
	answer.ID = r.s.nextAnswerID
	stored := *answer
	r.s.answers[answer.ID] = &stored
	return nil
}

func (r *answerRepository) GetByQuestionID(ctx context.Context, questionID domain.QuestionID) ([]*domain.Answer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	answers := make([]*domain.Answer, 0)
	for _, a := range r.s.answers {
		if a.QuestionID == questionID {
			c := *a
			answers = append(answers, &c)
		}
	}
	slices.SortFunc(answers, func(a, b *domain.Answer) int {
		return int(a.ID - b.ID)
	})
	return answers, nil
}
