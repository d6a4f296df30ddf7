package controllers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/internal/storefront"
)

func TestCreateSession(t *testing.T) {
	resp := serve(CreateSession(newTestService(t), testLogger()), newRequest(http.MethodPost, "/", "", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var view storefront.SessionView
	decodeData(t, resp, &view)
	if _, err := uuid.Parse(view.ID); err != nil {
		t.Fatalf("expected uuid session id, got %q", view.ID)
	}
	if view.Theme.IsDark {
		t.Fatalf("new sessions start on the light theme")
	}
	if got := resp.Header().Get("Location"); got != "/api/v1/sessions/"+view.ID {
		t.Fatalf("unexpected location %q", got)
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService(t)
	id := newSession(t, svc)
	params := map[string]string{middleware.SessionIDParam: id}

	resp := serve(DeleteSession(svc, testLogger()), newRequest(http.MethodDelete, "/", "", params))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}

	resp = serve(DeleteSession(svc, testLogger()), newRequest(http.MethodDelete, "/", "", params))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for ended session got %d", resp.Code)
	}
}

func TestSessionHandlersRejectMalformedID(t *testing.T) {
	svc := newTestService(t)
	params := map[string]string{middleware.SessionIDParam: "not-a-uuid"}
	resp := serve(GetTheme(svc, testLogger()), newRequest(http.MethodGet, "/", "", params))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestThemeToggle(t *testing.T) {
	svc := newTestService(t)
	params := map[string]string{middleware.SessionIDParam: newSession(t, svc)}

	resp := serve(ToggleTheme(svc, testLogger()), newRequest(http.MethodPost, "/", "", params))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var theme sessions.Theme
	decodeData(t, resp, &theme)
	if !theme.IsDark {
		t.Fatalf("expected dark theme after toggle")
	}

	resp = serve(GetTheme(svc, testLogger()), newRequest(http.MethodGet, "/", "", params))
	theme = sessions.Theme{}
	decodeData(t, resp, &theme)
	if !theme.IsDark {
		t.Fatalf("toggle should persist for the session")
	}
}

func TestSessionIDFromMiddlewareContext(t *testing.T) {
	svc := newTestService(t)
	id := newSession(t, svc)
	req := newRequest(http.MethodGet, "/", "", nil)
	req = req.WithContext(middleware.WithSessionID(req.Context(), id))

	resp := serve(GetTheme(svc, testLogger()), req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
