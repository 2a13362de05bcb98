package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckLiveness(t *testing.T) {
	c := New(0)

	status := c.CheckLiveness(context.Background())
	if status.Overall != "ok" {
		t.Errorf("Overall = %q, want ok", status.Overall)
	}
	if status.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestCheckReadiness_NoChecks(t *testing.T) {
	c := New(0)

	status := c.CheckReadiness(context.Background())
	if status.Overall != "ready" {
		t.Errorf("Overall = %q, want ready with no checks", status.Overall)
	}
}

func TestCheckReadiness_AllHealthy(t *testing.T) {
	c := New(0)
	c.RegisterCheck("workspace", func(ctx context.Context) error { return nil })
	c.RegisterCheck("cache", func(ctx context.Context) error { return nil })

	status := c.CheckReadiness(context.Background())
	if status.Overall != "ready" {
		t.Errorf("Overall = %q, want ready", status.Overall)
	}
	if len(status.Checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(status.Checks))
	}
	if status.Checks["workspace"].Status != "ok" {
		t.Errorf("workspace status = %q", status.Checks["workspace"].Status)
	}
}

func TestCheckReadiness_Degraded(t *testing.T) {
	c := New(0)
	c.RegisterCheck("workspace", func(ctx context.Context) error { return nil })
	c.RegisterCheck("cache", func(ctx context.Context) error {
		return errors.New("database is locked")
	})

	status := c.CheckReadiness(context.Background())
	if status.Overall != "degraded" {
		t.Errorf("Overall = %q, want degraded", status.Overall)
	}
	if status.Checks["cache"].Message != "database is locked" {
		t.Errorf("cache message = %q", status.Checks["cache"].Message)
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		time.Sleep(time.Second)
		return nil
	})

	status := c.CheckReadiness(context.Background())
	if status.Overall != "degraded" {
		t.Errorf("Overall = %q, want degraded on timeout", status.Overall)
	}
	if status.Checks["slow"].Message != "health check timeout" {
		t.Errorf("slow message = %q", status.Checks["slow"].Message)
	}
}

func TestRegisterCheck_Replaces(t *testing.T) {
	c := New(0)
	c.RegisterCheck("cache", func(ctx context.Context) error { return errors.New("old") })
	c.RegisterCheck("cache", func(ctx context.Context) error { return nil })

	if c.CheckCount() != 1 {
		t.Errorf("CheckCount() = %d, want 1", c.CheckCount())
	}
	status := c.CheckReadiness(context.Background())
	if status.Overall != "ready" {
		t.Errorf("Overall = %q after replacement, want ready", status.Overall)
	}
}

func TestLivenessHandler(t *testing.T) {
	c := New(0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if status.Overall != "ok" {
		t.Errorf("Overall = %q", status.Overall)
	}
}

func TestLivenessHandler_MethodNotAllowed(t *testing.T) {
	c := New(0)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	c := New(0)
	c.RegisterCheck("cache", func(ctx context.Context) error {
		return errors.New("unavailable")
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, New(0), "1.0.0", "abc123", "2026-08-01")

	for _, path := range []string{"/health", "/ready", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestVersionHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler("1.2.3", "deadbeef", "2026-08-01")(rec, req)

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "deadbeef" {
		t.Errorf("info = %+v", info)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion not set")
	}
}
