package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/internal/auth"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	userID := uuid.New()
	handler := AuthLogin(stubAuthService{resp: &auth.LoginResponse{
		AccessToken: "access-token",
		User: auth.UserSummary{
			ID:       userID,
			Name:     "Carlos Silva",
			Username: "carlos",
			Role:     enums.UserRoleDriver,
		},
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"carlos","password":"segredo1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken string           `json:"access_token"`
			User        auth.UserSummary `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token got %q", envelope.Data.AccessToken)
	}
	if envelope.Data.User.ID != userID {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"carlos"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	handler := AuthLogin(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"carlos","password":"errada"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
