package api

import (
	"net/http"

	"github.com/dom/qna-service/internal/api/handlers"
	"github.com/dom/qna-service/internal/api/middleware"
	"github.com/dom/qna-service/internal/config"
	"github.com/dom/qna-service/internal/metrics"
	"github.com/dom/qna-service/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// PublicPaths are reachable without a token. Everything else under /api,
// the healthcheck included, needs one. /metrics is scraped by prometheus and
// sits outside /api.
var PublicPaths = []string{
	"/api/registration",
	"/api/login",
	"/metrics",
}

func NewRouter(services *service.Services, m *metrics.Metrics, log logrus.FieldLogger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Logger(log))
	r.Use(m.Middleware)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Auth(services.Tokens, PublicPaths, log, m))

	accountHandler := handlers.NewAccountHandler(services.Account, log)
	questionHandler := handlers.NewQuestionHandler(services.Question, services.Answer, log)
	answerHandler := handlers.NewAnswerHandler(services.Answer, log)

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", handlers.HealthCheck)
		r.Post("/registration", accountHandler.Register)
		r.Post("/login", accountHandler.Login)

		r.Route("/questions", func(r chi.Router) {
			r.Post("/", questionHandler.Create)
			r.Get("/", questionHandler.List)
			r.Get("/{id}", questionHandler.Get)
			r.Put("/{id}", questionHandler.Update)
			r.Delete("/{id}", questionHandler.Delete)
			r.Get("/{id}/answers", questionHandler.Answers)
		})

		r.Post("/answers", answerHandler.Create)
	})

	return r
}
