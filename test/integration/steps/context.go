// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	injector     *dependency.Injector
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string
	accessToken    string
	remembered     map[string]string

	// Doubles
	db        *mock.Db
	redis     *mock.Redis
	clock     *mock.Time
	emailAPI  *mock.ApiMock
	suggester *stubSuggester

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// stubSuggester replaces the AI provider.
type stubSuggester struct {
	mu         sync.Mutex
	suggestion *adapter.CategorySuggestion
	err        error
}

func (s *stubSuggester) SuggestCategory(context.Context, *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestion, s.err
}

func (s *stubSuggester) IsAvailable() bool { return true }

func (s *stubSuggester) set(suggestion *adapter.CategorySuggestion, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestion, s.err = suggestion, err
}

var emailAPI *mock.ApiMock

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		emailAPI = mock.NewApiServer()
		emailAPI.Start()
	})

	ctx.AfterSuite(func() {
		emailAPI.Close()
	})
}

func testConfig(resendURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: config.EnvTest},
		Redis:  config.RedisConfig{Enabled: true, StatsTTL: 10 * time.Minute},
		Auth:   config.AuthConfig{HMACSecret: testJWTSecret},
		Budget: config.BudgetConfig{DefaultMonthlyLimit: "1000", DefaultCurrency: "USD"},
		Email: config.EmailConfig{
			ResendAPIKey:  "re_test_key",
			ResendBaseURL: resendURL,
			FromName:      "Expense Tracker",
			FromEmail:     "alerts@example.com",
			AppBaseURL:    "http://localhost:3000",
			PollInterval:  time.Second,
			BatchSize:     10,
			RetentionDays: 30,
		},
		AI: config.AIConfig{SuggestRateLimit: 3, SuggestWindow: time.Minute},
	}
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			remembered:     make(map[string]string),
			db:             mock.NewDb(&model.OwnerModel{}, &model.ExpenseModel{}, &model.EmailQueueModel{}),
			redis:          mock.NewRedis(),
			clock:          mock.NewTime(),
			emailAPI:       emailAPI,
			suggester:      &stubSuggester{suggestion: &adapter.CategorySuggestion{Category: "other", Confidence: 0.5}},
		}
		if err := tc.db.ClearDB(); err != nil {
			return ctx, err
		}
		tc.emailAPI.Reset()
		tc.emailAPI.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email_mock"})

		tc.cfg = testConfig(tc.emailAPI.GetUrl())
		injector, err := dependency.NewInjector(tc.cfg, db.NewFromGorm(tc.db.DbConn), dependency.Options{
			Redis:     tc.redis.Client,
			Suggester: tc.suggester,
			Now:       tc.clock.Now,
		})
		if err != nil {
			return ctx, fmt.Errorf("failed to build application: %w", err)
		}
		tc.injector = injector
		tc.server = httptest.NewServer(injector.Router.Setup(tc.cfg.Server.Environment))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		if tc.server != nil {
			tc.server.Close()
		}
		if tc.injector != nil {
			_ = tc.injector.Close()
		}
		tc.redis.Close()
		return ctx, nil
	})

	// Register step definitions
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

// expand replaces {name} placeholders with remembered values.
func (tc *TestContext) expand(s string) string {
	for name, value := range tc.remembered {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}
