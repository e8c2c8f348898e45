package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestQuestions_RequireToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "list without token", method: http.MethodGet, path: "/questions"},
		{name: "create without token", method: http.MethodPost, path: "/questions"},
		{name: "get with garbage token", method: http.MethodGet, path: "/questions/1", token: "garbage"},
		{name: "answers without token", method: http.MethodPost, path: "/answers"},
		{name: "unknown route", method: http.MethodGet, path: "/nothing-here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, tt.method, ts.APIURL(tt.path), nil, tt.token)
			resp := do(t, req)
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Invalid or expired token")
		})
	}
}

func TestQuestions_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)

	// create
	resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/questions"),
		testutil.NewQuestionBuilder().WithTitle("First").WithTags("go").New(), token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created domain.Question
	testutil.AssertJSONResponse(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "First", created.Title)

	url := ts.APIURL(fmt.Sprintf("/questions/%d", created.ID))

	// get
	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, url, nil, token))
	var got domain.Question
	testutil.AssertJSONResponse(t, resp, &got)
	assert.Equal(t, created, got)

	// update
	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPut, url,
		domain.Question{Title: "Edited", Content: "new body", Tags: []string{"edited"}}, token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Question
	testutil.AssertJSONResponse(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Edited", updated.Title)

	// delete
	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, url, nil, token))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertTextResponse(t, resp, "Question Deleted")

	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, url, nil, token))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Question not found")
}

func TestQuestions_ListPagination(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)

	for range 3 {
		testutil.NewQuestionBuilder().Build(t, ts.Repos.Question)
	}

	tests := []struct {
		name          string
		query         string
		expectedLen   int
		expectedError string
	}{
		{name: "no parameters", query: "", expectedLen: 3},
		{name: "limit", query: "?limit=2", expectedLen: 2},
		{name: "offset", query: "?offset=2", expectedLen: 1},
		{name: "bad offset", query: "?offset=abc", expectedError: "Parse parameter error"},
		{name: "negative limit", query: "?limit=-1", expectedError: "Parse parameter error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/questions"+tt.query), nil, token))
			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, tt.expectedError)
				return
			}
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var list []domain.Question
			testutil.AssertJSONResponse(t, resp, &list)
			assert.Len(t, list, tt.expectedLen)
		})
	}
}

func TestQuestions_EmptyListIsArray(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)

	resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/questions"), nil, token))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertTextResponse(t, resp, "[]\n")
}

func TestQuestions_BadInput(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := testutil.NewAccountBuilder().BuildAndAuthenticate(t, ts)

	resp := do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/questions/abc"), nil, token))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Parse parameter error")

	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/questions"),
		map[string]string{"title": "only a title"}, token))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Missing parameters")

	resp = do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/questions/999"), nil, token))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Question not found")
}
