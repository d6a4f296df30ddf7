package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
)

type pingerFunc func(ctx context.Context) error

func (fn pingerFunc) Ping(ctx context.Context) error { return fn(ctx) }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	resp := serve(HealthLive(cfg), newRequest(http.MethodGet, "/", "", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Storefront-Env"); got != "dev" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	resp := serve(HealthReady(cfg, testLogger(),
		ReadinessCheck{Name: "db", Pinger: ok},
		ReadinessCheck{Name: "redis"},
	), newRequest(http.MethodGet, "/", "", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeData(t, resp, &payload)
	if payload.Checks["db"] != "up" || payload.Checks["redis"] != "skipped" {
		t.Fatalf("unexpected checks %v", payload.Checks)
	}

	resp = serve(HealthReady(cfg, testLogger(), ReadinessCheck{Name: "redis", Pinger: down}), newRequest(http.MethodGet, "/", "", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != "DEPENDENCY_ERROR" {
		t.Fatalf("unexpected code %q", code)
	}
}
