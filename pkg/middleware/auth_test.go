package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuthenticator map[string]*entity.User

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*entity.User, error) {
	if token == "broken" {
		return nil, errors.New("database down")
	}
	return f[token], nil
}

var testUsers = fakeAuthenticator{
	"visitor": {BaseSimple: entity.BaseSimple{ID: 1}, Email: "visitor@example.com"},
	"staff":   {BaseSimple: entity.BaseSimple{ID: 2}, Email: "staff@example.com", IsStaff: true},
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	if utils.IsStaffFromContext(r.Context()) {
		w.Header().Set("X-Staff", "true")
	}
	w.Header().Set("X-User", strconv.FormatInt(userID, 10))
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, method, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/planetarium/show_themes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	h := Auth(testUsers, zap.NewNop())(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic visitor", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"lookup failure", "Bearer broken", http.StatusInternalServerError},
		{"valid token", "Bearer visitor", http.StatusOK},
		{"scheme is case insensitive", "bearer staff", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.header)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuth_SetsUserContext(t *testing.T) {
	h := Auth(testUsers, zap.NewNop())(http.HandlerFunc(echoUser))

	rec := serve(h, http.MethodGet, "Bearer staff")
	assert.Equal(t, "2", rec.Header().Get("X-User"))
	assert.Equal(t, "true", rec.Header().Get("X-Staff"))
}

func TestAdminOrReadOnly(t *testing.T) {
	h := Auth(testUsers, zap.NewNop())(AdminOrReadOnly(zap.NewNop())(http.HandlerFunc(echoUser)))

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "Bearer visitor").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodHead, "Bearer visitor").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, http.MethodPost, "Bearer visitor").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, http.MethodDelete, "Bearer visitor").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "Bearer staff").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "").Code)
}

func TestAdmin(t *testing.T) {
	h := Auth(testUsers, zap.NewNop())(Admin(zap.NewNop())(http.HandlerFunc(echoUser)))

	assert.Equal(t, http.StatusForbidden, serve(h, http.MethodGet, "Bearer visitor").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "Bearer staff").Code)
}

func TestAdmin_WithoutAuth(t *testing.T) {
	h := Admin(zap.NewNop())(http.HandlerFunc(echoUser))
	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodPost, "").Code)
}
