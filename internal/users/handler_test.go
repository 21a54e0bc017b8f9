package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"medvault-backend/internal/shared/server/middleware"
	"medvault-backend/internal/users"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Auth())
	users.NewHandler(users.NewService(users.NewMemoryRepo())).RegisterRoutes(api)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	} `json:"user"`
}

func TestRegisterLoginAndMe(t *testing.T) {
	router := newAuthRouter(t)

	resp := postJSON(router, "/api/auth/register", `{"email":"alice@example.com","password":"hunter22","fullName":"Alice"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var registered authResponse
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if registered.Token == "" {
		t.Fatalf("expected token on register")
	}
	if registered.User.Email != "alice@example.com" {
		t.Fatalf("unexpected email %q", registered.User.Email)
	}

	resp = postJSON(router, "/api/auth/login", `{"email":"alice@example.com","password":"hunter22"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var loggedIn authResponse
	if err := json.NewDecoder(resp.Body).Decode(&loggedIn); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("login returned different user id")
	}

	meReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+loggedIn.Token)
	meResp := httptest.NewRecorder()
	router.ServeHTTP(meResp, meReq)
	if meResp.Code != http.StatusOK {
		t.Fatalf("me: expected status 200, got %d: %s", meResp.Code, meResp.Body.String())
	}
	var me struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(meResp.Body).Decode(&me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != registered.User.ID || me.FullName != "Alice" {
		t.Fatalf("unexpected me payload: %+v", me)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router := newAuthRouter(t)

	body := `{"email":"bob@example.com","password":"hunter22"}`
	if resp := postJSON(router, "/api/auth/register", body); resp.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.Code)
	}
	resp := postJSON(router, "/api/auth/register", body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", resp.Code)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	router := newAuthRouter(t)

	cases := []string{
		`{"password":"hunter22"}`,
		`{"email":"not-an-email","password":"hunter22"}`,
		`{"email":"carol@example.com","password":"short"}`,
	}
	for _, body := range cases {
		if resp := postJSON(router, "/api/auth/register", body); resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
	}
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	router := newAuthRouter(t)

	if resp := postJSON(router, "/api/auth/register", `{"email":"dave@example.com","password":"hunter22"}`); resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.Code)
	}

	for _, body := range []string{
		`{"email":"dave@example.com","password":"wrong-pass"}`,
		`{"email":"nobody@example.com","password":"hunter22"}`,
	} {
		resp := postJSON(router, "/api/auth/login", body)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("body %q: expected 401, got %d", body, resp.Code)
		}
	}
}

func TestMeRejectsGuests(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest, got %d", resp.Code)
	}
}
