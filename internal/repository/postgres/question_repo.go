package postgres

import (
	"context"
	"errors"

	"github.com/dom/qna-service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type questionRepository struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewQuestionRepository(db *gorm.DB, log logrus.FieldLogger) *questionRepository {
	return &questionRepository{db: db, log: log}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return queryError(r.log, "create question", err)
	}
	return nil
}

func (r *questionRepository) List(ctx context.Context, offset, limit int) ([]*domain.Question, error) {
	questions := make([]*domain.Question, 0)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, queryError(r.log, "list questions", err)
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	var question domain.Question
	err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, questionNotFound("get question", id)
		}
		return nil, queryError(r.log, "get question", err)
	}
	return &question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]any{
			"title":   question.Title,
			"content": question.Content,
			"tags":    question.Tags,
		})
	if res.Error != nil {
		return queryError(r.log, "update question", res.Error)
	}
	if res.RowsAffected == 0 {
		return questionNotFound("update question", question.ID)
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Question{}, "id = ?", id)
	if res.Error != nil {
		return queryError(r.log, "delete question", res.Error)
	}
	if res.RowsAffected == 0 {
		return questionNotFound("delete question", id)
	}
	return nil
}
