package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/qna-service/internal/api/apierror"
	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/metrics"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

// TokenValidator turns a bearer token into a session.
type TokenValidator interface {
	Validate(token string) (*domain.Session, error)
}

// Auth rejects every request whose path is not in exempt unless it carries a
// valid token in the Authorization header. A missing header is treated as an
// empty token and fails validation like any malformed one. On success the
// session is stored in the request context.
func Auth(tokens TokenValidator, exempt []string, log logrus.FieldLogger, m *metrics.Metrics) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		public[normalizePath(p)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[normalizePath(r.URL.Path)]; ok {
				m.ObserveGate(metrics.GateExempt)
				next.ServeHTTP(w, r)
				return
			}

			session, err := tokens.Validate(bearerToken(r))
			if err != nil {
				m.ObserveGate(metrics.GateRejected)
				apierror.Write(w, r, log, err)
				return
			}

			m.ObserveGate(metrics.GateAdmitted)
			log.WithFields(logrus.Fields{
				"account_id": session.AccountID,
				"request_id": chiMiddleware.GetReqID(r.Context()),
			}).Debug("request authenticated")

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// bearerToken returns the Authorization header value with an optional
// "Bearer " scheme removed.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > len("bearer ") && strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return h
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

func GetSession(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	return s, ok
}
