package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository"
	"github.com/google/uuid"
)

// AccountBuilder creates test accounts with a builder pattern
type AccountBuilder struct {
	email    string
	password string
}

// NewAccountBuilder creates a new AccountBuilder with a unique email
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

func (b *AccountBuilder) Credentials() domain.Credentials {
	return domain.Credentials{Email: b.email, Password: b.password}
}

// Build stores the account directly and returns it with the raw password
func (b *AccountBuilder) Build(t *testing.T, accounts repository.AccountRepository) (*domain.Account, string) {
	t.Helper()

	digest := auth.NewArgon2Hasher(TestArgon2Params).Hash(b.password)
	account := b.Credentials().ToAccount(digest)
	if err := accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account, b.password
}

// BuildAndAuthenticate registers and logs in through the API and returns the
// token.
func (b *AccountBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) string {
	t.Helper()

	body, _ := json.Marshal(b.Credentials())

	resp, err := http.Post(ts.APIURL("/registration"), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to register account: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected registration status code: %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.APIURL("/login"), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	token, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read token: %v", err)
	}
	return string(token)
}

// QuestionBuilder creates test questions with a builder pattern
type QuestionBuilder struct {
	title   string
	content string
	tags    []string
}

func NewQuestionBuilder() *QuestionBuilder {
	return &QuestionBuilder{
		title:   fmt.Sprintf("Question %s", uuid.New().String()[:8]),
		content: "How do I test this?",
		tags:    []string{"testing"},
	}
}

func (b *QuestionBuilder) WithTitle(title string) *QuestionBuilder {
	b.title = title
	return b
}

func (b *QuestionBuilder) WithContent(content string) *QuestionBuilder {
	b.content = content
	return b
}

func (b *QuestionBuilder) WithTags(tags ...string) *QuestionBuilder {
	b.tags = tags
	return b
}

func (b *QuestionBuilder) New() domain.NewQuestion {
	return domain.NewQuestion{Title: b.title, Content: b.content, Tags: b.tags}
}

func (b *QuestionBuilder) Build(t *testing.T, questions repository.QuestionRepository) *domain.Question {
	t.Helper()

	q := &domain.Question{Title: b.title, Content: b.content, Tags: b.tags}
	if err := questions.Create(context.Background(), q); err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	return q
}

// CreateAuthenticatedRequest builds a JSON request carrying the token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}
