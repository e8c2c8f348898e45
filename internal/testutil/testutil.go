package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/qna-service/internal/api"
	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/config"
	"github.com/dom/qna-service/internal/metrics"
	"github.com/dom/qna-service/internal/repository"
	"github.com/dom/qna-service/internal/repository/memory"
	repoPostgres "github.com/dom/qna-service/internal/repository/postgres"
	"github.com/dom/qna-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL container and migrates the schema. The test
// is skipped when no container runtime is available.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_qna"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container}
	t.Cleanup(testDB.Cleanup)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	testDB.DSN = dsn

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	testDB.DB = db

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		_ = tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"answers", "questions", "accounts"} {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestArgon2Params keep hashing fast in tests.
var TestArgon2Params = auth.Argon2Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}

// TestConfig returns a configuration suitable for testing, with a fresh
// token key on every call.
func TestConfig() *config.Config {
	return &config.Config{
		Port:                "0",
		Environment:         "test",
		CORSAllowedOrigins:  []string{"*"},
		DBMaxConns:          5,
		TokenKey:            auth.GenerateKey(),
		PasswordHashing:     TestArgon2Params,
		MaxConcurrentHashes: 4,
		LogLevel:            "error",
		LogFormat:           "text",
	}
}

// NullLogger discards everything.
func NullLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Repos    *repository.Repositories
	Services *service.Services
	Metrics  *metrics.Metrics
	Config   *config.Config
}

// NewTestServer serves the full router over in-memory repositories.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return newTestServer(t, memory.NewRepositories())
}

// NewPostgresTestServer serves the full router over a postgres container.
func NewPostgresTestServer(t *testing.T) (*TestServer, *TestDB) {
	t.Helper()
	testDB := NewTestDB(t)
	return newTestServer(t, repoPostgres.NewRepositories(testDB.DB, NullLogger())), testDB
}

func newTestServer(t *testing.T, repos *repository.Repositories) *TestServer {
	t.Helper()

	cfg := TestConfig()
	keys, err := cfg.Keyring()
	if err != nil {
		t.Fatalf("failed to build keyring: %v", err)
	}

	log := NullLogger()
	m := metrics.New()
	services := service.NewServices(repos, auth.NewTokenCodec(keys), cfg, m, log)
	server := httptest.NewServer(api.NewRouter(services, m, log, cfg))

	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Repos:    repos,
		Services: services,
		Metrics:  m,
		Config:   cfg,
	}
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}
