package postgres

import (
	"context"

	"github.com/dom/qna-service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type accountRepository struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewAccountRepository(db *gorm.DB, log logrus.FieldLogger) *accountRepository {
	return &accountRepository{db: db, log: log}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return queryError(r.log, "create account", err)
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error
	if err != nil {
		return nil, queryError(r.log, "get account by email", err)
	}
	return &account, nil
}
