package postgres

import (
	"context"

	"github.com/dom/qna-service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type answerRepository struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewAnswerRepository(db *gorm.DB, log logrus.FieldLogger) *answerRepository {
	return &answerRepository{db: db, log: log}
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	if err := r.db.WithContext(ctx).Omit("Question").Create(answer).Error; err != nil {
		return queryError(r.log, "create answer", err)
	}
	return nil
}

func (r *answerRepository) GetByQuestionID(ctx context.Context, questionID domain.QuestionID) ([]*domain.Answer, error) {
	answers := make([]*domain.Answer, 0)
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, queryError(r.log, "list answers", err)
	}
	return answers, nil
}
