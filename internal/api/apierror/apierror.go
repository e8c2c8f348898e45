// Package apierror maps domain errors onto HTTP responses. Clients only ever
// see a generic message; the full error chain goes to the log.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/qna-service/internal/domain"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Error string `json:"error"`
}

var mapping = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrWrongPassword, http.StatusUnauthorized, "Invalid user name or password"},
	{domain.ErrHashFormat, http.StatusUnauthorized, "Invalid user name or password"},
	{domain.ErrTokenDecode, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "No permission to change the underlying resource"},
	{domain.ErrMissingParameters, http.StatusBadRequest, "Missing parameters"},
	{domain.ErrParse, http.StatusBadRequest, "Parse parameter error"},
	{domain.ErrQuestionNotFound, http.StatusBadRequest, "Question not found"},
	{domain.ErrDatabaseQuery, http.StatusInternalServerError, "internal server error"},
}

// Status returns the HTTP status and client message for err.
func Status(err error) (int, string) {
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// Write logs err and sends the mapped JSON error body.
func Write(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	status, message := Status(err)

	fields := logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"request_id": chiMiddleware.GetReqID(r.Context()),
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		fields["code"] = oopsErr.Code()
		for k, v := range oopsErr.Context() {
			fields[k] = v
		}
	}
	entry := log.WithFields(fields).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: message})
}
