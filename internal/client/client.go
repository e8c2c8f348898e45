// Package client is a typed HTTP client for the Q&A API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dom/qna-service/internal/domain"
)

// APIError is returned for any non-200 response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to one server. After Login it sends the token on every
// request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken reuses a token obtained elsewhere instead of calling Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// Health needs a token like every other non-account endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthcheck", nil, nil)
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	return c.do(ctx, http.MethodPost, "/registration", creds, nil)
}

// Login stores the returned token on the client and returns it.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var token string
	if err := c.do(ctx, http.MethodPost, "/login", creds, &token); err != nil {
		return "", err
	}
	c.token = token
	return token, nil
}

func (c *Client) AddQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	var out domain.Question
	if err := c.do(ctx, http.MethodPost, "/questions", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListQuestions(ctx context.Context, page domain.Pagination) ([]domain.Question, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(page.Offset))
	query.Set("limit", strconv.Itoa(page.Limit))

	var out []domain.Question
	if err := c.do(ctx, http.MethodGet, "/questions?"+query.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuestion(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	var out domain.Question
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questions/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, q domain.Question) (*domain.Question, error) {
	var out domain.Question
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", q.ID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id domain.QuestionID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
}

func (c *Client) AddAnswer(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	var out domain.Answer
	if err := c.do(ctx, http.MethodPost, "/answers", a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAnswers(ctx context.Context, questionID domain.QuestionID) ([]domain.Answer, error) {
	var out []domain.Answer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questions/%d/answers", questionID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends body as JSON and decodes the response into out. A *string out
// receives the raw body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := string(raw)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	switch v := out.(type) {
	case nil:
		return nil
	case *string:
		*v = string(raw)
		return nil
	default:
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}
