package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
)

const testSecret = "injector-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: config.EnvTest},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		},
		Redis:  config.RedisConfig{StatsTTL: time.Minute},
		Auth:   config.AuthConfig{HMACSecret: testSecret},
		Budget: config.BudgetConfig{DefaultMonthlyLimit: "100", DefaultCurrency: "LKR"},
		Email: config.EmailConfig{
			AppBaseURL:    "http://localhost:3000",
			PollInterval:  time.Second,
			BatchSize:     10,
			RetentionDays: 30,
		},
		AI: config.AIConfig{SuggestRateLimit: 2, SuggestWindow: time.Minute},
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adapters.IdentityClaims{
		Email: subject + "@example.com",
		Name:  "Injected " + subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

type harness struct {
	injector *Injector
	engine   *gin.Engine
	sender   *email.MockEmailSender
	redis    *miniredis.Miniredis
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := testConfig()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sender := email.NewMockEmailSender()
	injector, err := NewInjector(cfg, database, Options{
		Redis:       client,
		EmailSender: sender,
		Now:         func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("failed to build injector: %v", err)
	}
	t.Cleanup(func() { _ = injector.Close() })

	return &harness{
		injector: injector,
		engine:   injector.Router.Setup(cfg.Server.Environment),
		sender:   sender,
		redis:    mr,
	}
}

func (h *harness) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestInjector_HealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	if rec := h.request(t, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rec.Code)
	}

	rec := h.request(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expense_tracker_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestInjector_RequiresBearerToken(t *testing.T) {
	h := newHarness(t)

	if rec := h.request(t, http.MethodGet, "/api/v1/expenses", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
	if rec := h.request(t, http.MethodGet, "/api/v1/expenses", "garbage", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with malformed token, got %d", rec.Code)
	}
	if rec := h.request(t, http.MethodGet, "/api/v1/expenses", signToken(t, "auth0|alice"), nil); rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestInjector_BudgetAlertFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	token := signToken(t, "auth0|budget")

	for _, amount := range []string{"50", "45"} {
		rec := h.request(t, http.MethodPost, "/api/v1/expenses", token, map[string]any{
			"description": "Groceries",
			"amount":      amount,
			"date":        "2024-05-02",
			"category":    "food",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := h.request(t, http.MethodGet, "/api/v1/expenses/stats/alert?year=2024&month=5", token, nil)
	var alert struct {
		IsAlert        bool    `json:"is_alert"`
		PercentageUsed float64 `json:"percentage_used"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &alert); err != nil {
		t.Fatalf("failed to decode alert: %v", err)
	}
	if !alert.IsAlert || alert.PercentageUsed != 95 {
		t.Errorf("expected alert at 95%%, got %+v", alert)
	}

	h.injector.EmailWorker.ProcessNow(ctx)
	sent := h.sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one budget alert email for the month, got %d", len(sent))
	}
	if sent[0].To != "auth0|budget@example.com" {
		t.Errorf("expected email to the owner, got %s", sent[0].To)
	}

	// Monthly stats are cached in Redis after the first read.
	if rec := h.request(t, http.MethodGet, "/api/v1/expenses/stats/monthly?year=2024&month=5", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cached := false
	for _, key := range h.redis.Keys() {
		if strings.Contains(key, ":monthly:2024-05") {
			cached = true
		}
	}
	if !cached {
		t.Errorf("expected monthly aggregate to be cached, keys: %v", h.redis.Keys())
	}
}

func TestInjector_SuggestRateLimited(t *testing.T) {
	h := newHarness(t)
	token := signToken(t, "auth0|ai")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := h.request(t, http.MethodPost, "/api/v1/expenses/suggest-category", token, map[string]any{"description": "Coffee"})
		codes = append(codes, rec.Code)
	}

	// No Gemini key is configured, so allowed calls report the provider as unavailable.
	if codes[0] != http.StatusServiceUnavailable || codes[1] != http.StatusServiceUnavailable {
		t.Errorf("expected first two calls to reach the handler, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third call to be rate limited, got %d", codes[2])
	}
}
