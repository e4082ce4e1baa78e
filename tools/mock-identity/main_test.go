package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type sessionResp struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int            `json:"expires_in"`
	TokenType    string         `json:"token_type"`
	User         map[string]any `json:"user"`
}

func testState(t *testing.T) *state {
	t.Helper()
	path := filepath.Join("testdata", "accounts.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var seeds []seedAccount
	if err := json.Unmarshal(data, &seeds); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return newState(seeds)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func login(t *testing.T, st *state, email, password string) sessionResp {
	t.Helper()
	w := postJSON(t, tokenHandler(testLogger(), st), "/token?grant_type=password",
		map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	var resp sessionResp
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	return resp
}

func TestLoadFixture(t *testing.T) {
	seeds, err := loadFixture(filepath.Join("testdata", "accounts.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	if len(seeds) == 0 {
		t.Fatal("expected seed accounts in fixture")
	}
	var confirmed, unconfirmed bool
	for _, s := range seeds {
		if s.Confirmed {
			confirmed = true
		} else {
			unconfirmed = true
		}
	}
	if !confirmed || !unconfirmed {
		t.Error("fixture should seed both confirmed and unconfirmed accounts")
	}
}

func TestSignup_CreatesUnconfirmedAccount(t *testing.T) {
	st := testState(t)
	handler := signupHandler(testLogger(), st, false)

	w := postJSON(t, handler, "/signup", map[string]any{
		"email":    "newstudent@gmu.edu",
		"password": "first-semester",
		"data":     map[string]string{"full_name": "New Student"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var user map[string]any
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if user["id"] == "" || user["id"] == nil {
		t.Error("expected non-empty user id")
	}
	if user["email"] != "newstudent@gmu.edu" {
		t.Errorf("email=%v, want newstudent@gmu.edu", user["email"])
	}
	if user["email_confirmed_at"] != "" {
		t.Errorf("email_confirmed_at=%v, want empty for unconfirmed signup", user["email_confirmed_at"])
	}
	if user["access_token"] != nil {
		t.Error("unconfirmed signup must not return a session")
	}
}

func TestSignup_AutoConfirmReturnsSession(t *testing.T) {
	st := testState(t)
	handler := signupHandler(testLogger(), st, true)

	w := postJSON(t, handler, "/signup", map[string]any{
		"email":    "autoconfirm@gmu.edu",
		"password": "no-email-needed",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp sessionResp
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair from auto-confirm signup")
	}
	if resp.User["email"] != "autoconfirm@gmu.edu" {
		t.Errorf("user email=%v, want autoconfirm@gmu.edu", resp.User["email"])
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	st := testState(t)
	handler := signupHandler(testLogger(), st, false)

	w := postJSON(t, handler, "/signup", map[string]any{
		"email":    "jdoe@gmu.edu",
		"password": "whatever",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["msg"] != "User already registered" {
		t.Errorf("msg=%q, want User already registered", resp["msg"])
	}
}

func TestRequireAPIKey(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := requireAPIKey(testLogger(), next)

	req := httptest.NewRequest(http.MethodGet, "/user", http.NoBody)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("handler ran without an apikey header")
	}

	req = httptest.NewRequest(http.MethodGet, "/user", http.NoBody)
	req.Header.Set("apikey", "local-dev-key")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Error("handler should run when the apikey header is present")
	}
}

func TestToken_PasswordGrant(t *testing.T) {
	st := testState(t)

	resp := login(t, st, "jdoe@gmu.edu", "swap-till-you-drop")

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type=%q, want bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in=%d, want 3600", resp.ExpiresIn)
	}
	if resp.User["email"] != "jdoe@gmu.edu" {
		t.Errorf("user email=%v, want jdoe@gmu.edu", resp.User["email"])
	}
	meta, _ := resp.User["user_metadata"].(map[string]any)
	if meta["full_name"] != "Jane Doe" {
		t.Errorf("full_name=%v, want Jane Doe", meta["full_name"])
	}
}

func TestToken_WrongPassword(t *testing.T) {
	st := testState(t)
	handler := tokenHandler(testLogger(), st)

	w := postJSON(t, handler, "/token?grant_type=password",
		map[string]string{"email": "jdoe@gmu.edu", "password": "wrong"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_grant" {
		t.Errorf("error=%q, want invalid_grant", resp["error"])
	}
	if resp["error_description"] != "Invalid login credentials" {
		t.Errorf("error_description=%q, want Invalid login credentials", resp["error_description"])
	}
}

func TestToken_UnconfirmedEmail(t *testing.T) {
	st := testState(t)
	handler := tokenHandler(testLogger(), st)

	w := postJSON(t, handler, "/token?grant_type=password",
		map[string]string{"email": "pending@gmu.edu", "password": "not-confirmed-yet"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error_description"] != "Email not confirmed" {
		t.Errorf("error_description=%q, want Email not confirmed", resp["error_description"])
	}
}

func TestToken_UnsupportedGrant(t *testing.T) {
	st := testState(t)
	handler := tokenHandler(testLogger(), st)

	w := postJSON(t, handler, "/token?grant_type=client_credentials", map[string]string{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "unsupported_grant_type" {
		t.Errorf("error=%q, want unsupported_grant_type", resp["error"])
	}
}

func TestToken_RefreshRotatesPair(t *testing.T) {
	st := testState(t)
	handler := tokenHandler(testLogger(), st)

	first := login(t, st, "jdoe@gmu.edu", "swap-till-you-drop")

	w := postJSON(t, handler, "/token?grant_type=refresh_token",
		map[string]string{"refresh_token": first.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status=%d, want %d", w.Code, http.StatusOK)
	}

	var second sessionResp
	if err := json.NewDecoder(w.Body).Decode(&second); err != nil {
		t.Fatalf("decoding refreshed session: %v", err)
	}
	if second.AccessToken == "" || second.AccessToken == first.AccessToken {
		t.Error("refresh should mint a new access token")
	}
	if second.RefreshToken == "" || second.RefreshToken == first.RefreshToken {
		t.Error("refresh should rotate the refresh token")
	}

	// The consumed refresh token must not work a second time.
	w = postJSON(t, handler, "/token?grant_type=refresh_token",
		map[string]string{"refresh_token": first.RefreshToken})
	if w.Code != http.StatusBadRequest {
		t.Errorf("reused refresh token status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestLogout_RevokesAccessToken(t *testing.T) {
	st := testState(t)
	sess := login(t, st, "jdoe@gmu.edu", "swap-till-you-drop")

	req := httptest.NewRequest(http.MethodPost, "/logout", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	w := httptest.NewRecorder()
	logoutHandler(testLogger(), st)(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status=%d, want %d", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodGet, "/user", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	w = httptest.NewRecorder()
	userHandler(testLogger(), st)(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("user lookup after logout status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUser_ReturnsProfile(t *testing.T) {
	st := testState(t)
	sess := login(t, st, "asmith@gmu.edu", "patriot-pages")

	req := httptest.NewRequest(http.MethodGet, "/user", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	w := httptest.NewRecorder()
	userHandler(testLogger(), st)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var user map[string]any
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if user["email"] != "asmith@gmu.edu" {
		t.Errorf("email=%v, want asmith@gmu.edu", user["email"])
	}
	if user["email_confirmed_at"] == "" {
		t.Error("expected a confirmation timestamp for a confirmed account")
	}
}

func TestUser_UnknownToken(t *testing.T) {
	st := testState(t)

	req := httptest.NewRequest(http.MethodGet, "/user", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	userHandler(testLogger(), st)(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
