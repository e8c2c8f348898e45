package service

import (
	"context"

	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/metrics"
	"github.com/dom/qna-service/internal/repository"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// TokenIssuer mints a session token for an authenticated account.
type TokenIssuer interface {
	Issue(accountID domain.AccountID) (string, error)
}

type AccountService struct {
	accounts repository.AccountRepository
	hasher   auth.PasswordHasher
	tokens   TokenIssuer
	slots    *semaphore.Weighted
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

// NewAccountService limits the number of password hashes computed at once
// to maxConcurrentHashes; callers beyond that wait or give up with their
// context.
func NewAccountService(
	accounts repository.AccountRepository,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	maxConcurrentHashes int,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *AccountService {
	if maxConcurrentHashes < 1 {
		maxConcurrentHashes = 1
	}
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		slots:    semaphore.NewWeighted(int64(maxConcurrentHashes)),
		metrics:  m,
		log:      log,
	}
}

// Register stores a new account holding only the digest of the password.
// A taken email is reported by the store as a query error.
func (s *AccountService) Register(ctx context.Context, creds domain.Credentials) error {
	digest, err := s.hash(ctx, creds.Password)
	if err != nil {
		s.metrics.ObserveAccount("register", metrics.OutcomeError)
		return err
	}

	account := creds.ToAccount(digest)
	if err := s.accounts.Create(ctx, account); err != nil {
		s.metrics.ObserveAccount("register", metrics.OutcomeError)
		return err
	}

	s.metrics.ObserveAccount("register", metrics.OutcomeSuccess)
	s.log.WithField("account_id", account.ID).Info("account registered")
	return nil
}

// Login checks the password against the stored digest and returns a fresh
// token for the account.
func (s *AccountService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, creds.Email)
	if err != nil {
		s.metrics.ObserveAccount("login", metrics.OutcomeError)
		return "", err
	}

	ok, err := s.verify(ctx, creds.Password, account.Password)
	if err != nil {
		s.metrics.ObserveAccount("login", metrics.OutcomeError)
		return "", err
	}
	if !ok {
		s.metrics.ObserveAccount("login", metrics.OutcomeWrongPassword)
		return "", oops.Code("WRONG_PASSWORD").
			With("account_id", account.ID).
			Wrap(domain.ErrWrongPassword)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.metrics.ObserveAccount("login", metrics.OutcomeError)
		return "", oops.Code("TOKEN_ISSUE").With("account_id", account.ID).Wrap(err)
	}

	s.metrics.ObserveAccount("login", metrics.OutcomeSuccess)
	return token, nil
}

func (s *AccountService) hash(ctx context.Context, password string) (domain.PasswordDigest, error) {
	if err := s.acquire(ctx); err != nil {
		return "", err
	}
	defer s.slots.Release(1)

	return s.hasher.Hash(password), nil
}

func (s *AccountService) verify(ctx context.Context, password string, digest domain.PasswordDigest) (bool, error) {
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.slots.Release(1)

	return s.hasher.Verify(password, digest)
}

func (s *AccountService) acquire(ctx context.Context) error {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return oops.Code("HASH_SLOT").Wrapf(err, "waiting for a password hashing slot")
	}
	return nil
}
