package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dom/qna-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/samber/oops"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return oops.Code("PARSE").Wrap(fmt.Errorf("%w: %w", domain.ErrParse, err))
	}
	return nil
}

func questionIDParam(r *http.Request) (domain.QuestionID, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, oops.Code("PARSE").With("id", raw).Wrap(domain.ErrParse)
	}
	return domain.QuestionID(id), nil
}

// pagination reads optional offset and limit query parameters.
func pagination(r *http.Request) (domain.Pagination, error) {
	page := domain.DefaultPagination()
	q := r.URL.Query()

	for name, dst := range map[string]*int{"offset": &page.Offset, "limit": &page.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, oops.Code("PARSE").With(name, raw).Wrap(domain.ErrParse)
		}
		*dst = n
	}
	return page, nil
}
