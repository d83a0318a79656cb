package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChecker_AllHealthy(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("catalog", func() Check {
		return Check{Status: StatusHealthy, Message: "12 nodes"}
	})

	resp := hc.Check()
	if resp.Status != StatusHealthy {
		t.Errorf("Expected healthy, got %s", resp.Status)
	}
	if len(resp.Checks) != 1 {
		t.Errorf("Expected 1 check, got %d", len(resp.Checks))
	}
	if resp.Checks["catalog"].Name != "catalog" {
		t.Error("Check name should be filled from registration")
	}
}

func TestChecker_WorstStatusWins(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("ok", func() Check { return Check{Status: StatusHealthy} })
	hc.RegisterCheck("meh", func() Check { return Check{Status: StatusDegraded} })

	if resp := hc.Check(); resp.Status != StatusDegraded {
		t.Errorf("Expected degraded, got %s", resp.Status)
	}

	hc.RegisterCheck("bad", func() Check { return Check{Status: StatusUnhealthy} })
	if resp := hc.Check(); resp.Status != StatusUnhealthy {
		t.Errorf("Expected unhealthy, got %s", resp.Status)
	}
}

func TestHTTPHandler_DegradedIs200(t *testing.T) {
	hc := NewChecker()
	hc.RegisterCheck("meh", func() Check { return Check{Status: StatusDegraded} })

	rec := httptest.NewRecorder()
	hc.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for degraded health, got %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("Expected degraded in body, got %s", resp.Status)
	}
}

func TestReadinessHandler_DegradedIs503(t *testing.T) {
	hc := NewChecker()
	hc.RegisterReadinessCheck("catalog", func() Check { return Check{Status: StatusDegraded} })

	rec := httptest.NewRecorder()
	hc.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Readiness is binary: expected 503 for degraded, got %d", rec.Code)
	}
}

func TestLivenessHandler(t *testing.T) {
	hc := NewChecker()

	rec := httptest.NewRecorder()
	hc.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 liveness, got %d", rec.Code)
	}
}
