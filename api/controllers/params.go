package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func requiredURLParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	return value, nil
}

func sessionIDParam(r *http.Request) (string, error) {
	if id := middleware.SessionIDFromContext(r.Context()); id != "" {
		return id, nil
	}
	return requiredURLParam(r, middleware.SessionIDParam)
}
