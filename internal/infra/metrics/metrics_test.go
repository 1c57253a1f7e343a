package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := New()

	m.RecordExpenseWrite("expense.created")
	m.RecordExpenseWrite("expense.created")
	m.RecordExpenseWrite("expense.deleted")
	m.RecordBudgetAlert(true)
	m.RecordBudgetAlert(false)
	m.RecordBudgetAlert(false)

	if got := testutil.ToFloat64(m.expenseWrites.WithLabelValues("expense.created")); got != 2 {
		t.Errorf("expected 2 created writes, got %v", got)
	}
	if got := testutil.ToFloat64(m.expenseWrites.WithLabelValues("expense.deleted")); got != 1 {
		t.Errorf("expected 1 deleted write, got %v", got)
	}
	if got := testutil.ToFloat64(m.budgetAlerts.WithLabelValues("true")); got != 1 {
		t.Errorf("expected 1 queued alert, got %v", got)
	}
	if got := testutil.ToFloat64(m.budgetAlerts.WithLabelValues("false")); got != 2 {
		t.Errorf("expected 2 unqueued alerts, got %v", got)
	}
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/api/v1/expenses/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/expenses/"+id, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/v1/expenses/:id", "404")); got != 2 {
		t.Errorf("expected 2 requests on the route template, got %v", got)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expense_tracker_http_requests_total") {
		t.Errorf("expected exposition to include request counter")
	}
}
