package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newTestService(t *testing.T) storefront.Service {
	t.Helper()
	cat, err := catalog.NewSeedCatalog()
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	registry, err := sessions.NewRegistry(sessions.Params{Logger: testLogger()})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	svc, err := storefront.NewService(storefront.ServiceParams{
		Catalog:  cat,
		Sessions: registry,
		Policy:   pricing.DefaultPolicy(),
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func newSession(t *testing.T, svc storefront.Service) string {
	t.Helper()
	view, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return view.ID
}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if len(params) == 0 {
		return req
	}
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: dest}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error.Code
}
