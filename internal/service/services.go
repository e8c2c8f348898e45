package service

import (
	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/config"
	"github.com/dom/qna-service/internal/metrics"
	"github.com/dom/qna-service/internal/repository"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Account  *AccountService
	Question *QuestionService
	Answer   *AnswerService
	Tokens   *auth.TokenCodec
}

func NewServices(repos *repository.Repositories, tokens *auth.TokenCodec, cfg *config.Config, m *metrics.Metrics, log logrus.FieldLogger) *Services {
	hasher := auth.NewArgon2Hasher(cfg.PasswordHashing)

	return &Services{
		Account:  NewAccountService(repos.Account, hasher, tokens, cfg.MaxConcurrentHashes, m, log),
		Question: NewQuestionService(repos.Question),
		Answer:   NewAnswerService(repos.Answer, repos.Question),
		Tokens:   tokens,
	}
}
