package postgres

import (
	"time"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, maxConns int, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	return db, nil
}

// Migrate creates or updates the accounts, questions and answers tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Question{},
		&domain.Answer{},
	)
}

func NewRepositories(db *gorm.DB, log logrus.FieldLogger) *repository.Repositories {
	return &repository.Repositories{
		Account:  NewAccountRepository(db, log),
		Question: NewQuestionRepository(db, log),
		Answer:   NewAnswerRepository(db, log),
	}
}
