package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func TestReadyReflectsDatabaseAndReadiness(t *testing.T) {
	pinger := &fakePinger{}
	s := NewServer(Config{ServiceName: "sportology-api", Port: 0, DB: pinger})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("not-ready probe returned %d", rec.Code)
	}

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready probe returned %d", rec.Code)
	}

	var resp readyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Checks["database"] != "ok" || resp.Checks["service"] != "ok" {
		t.Errorf("unexpected checks: %v", resp.Checks)
	}

	pinger.err = errors.New("connection refused")
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("broken database probe returned %d", rec.Code)
	}
}

func TestLiveAlwaysOK(t *testing.T) {
	s := NewServer(Config{ServiceName: "sportology-api"})

	rec := httptest.NewRecorder()
	s.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("live probe returned %d", rec.Code)
	}

	var resp probeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Service != "sportology-api" {
		t.Errorf("unexpected body: %+v", resp)
	}
}
