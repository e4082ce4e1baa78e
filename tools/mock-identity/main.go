// Package main implements a mock identity provider for local development.
// It speaks enough of the GoTrue REST surface for the API server to sign
// accounts up, mint and refresh sessions, and resolve bearer tokens
// without a hosted project. Accounts are seeded from a JSON fixture and
// held in memory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type seedAccount struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Confirmed bool   `json:"confirmed"`
}

type account struct {
	id        string
	email     string
	password  string
	fullName  string
	confirmed bool
	createdAt time.Time
}

// state holds the in-memory accounts and live tokens. Tokens are opaque
// strings, not JWTs; the API server treats them opaquely anyway.
type state struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by lowercased email
	access   map[string]string   // access token -> email
	refresh  map[string]string   // refresh token -> email
	seq      int64
}

func newState(seeds []seedAccount) *state {
	st := &state{
		accounts: make(map[string]*account),
		access:   make(map[string]string),
		refresh:  make(map[string]string),
	}
	for _, s := range seeds {
		st.accounts[strings.ToLower(s.Email)] = &account{
			id:        uuid.NewString(),
			email:     s.Email,
			password:  s.Password,
			fullName:  s.FullName,
			confirmed: s.Confirmed,
			createdAt: time.Now().UTC(),
		}
	}
	return st
}

// issueSession mints a fresh token pair for a. Callers must hold st.mu.
func (st *state) issueSession(a *account) map[string]any {
	st.seq++
	at := fmt.Sprintf("mock-access-%d", st.seq)
	rt := fmt.Sprintf("mock-refresh-%d", st.seq)
	st.access[at] = strings.ToLower(a.email)
	st.refresh[rt] = strings.ToLower(a.email)

	return map[string]any{
		"access_token":  at,
		"refresh_token": rt,
		"expires_in":    3600,
		"token_type":    "bearer",
		"user":          userJSON(a),
	}
}

func userJSON(a *account) map[string]any {
	confirmedAt := ""
	if a.confirmed {
		confirmedAt = a.createdAt.Format(time.RFC3339)
	}
	return map[string]any{
		"id":                 a.id,
		"email":              a.email,
		"email_confirmed_at": confirmedAt,
		"created_at":         a.createdAt,
		"user_metadata":      map[string]any{"full_name": a.fullName},
	}
}

func main() {
	port := flag.Int("port", 9999, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-identity/testdata/accounts.json", "path to seed accounts fixture")
	autoConfirm := flag.Bool("auto-confirm", false, "confirm accounts at signup and return a session")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	seeds, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	st := newState(seeds)
	logger.Info("loaded fixture", "accounts", len(seeds))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", signupHandler(logger, st, *autoConfirm))
	mux.HandleFunc("POST /token", tokenHandler(logger, st))
	mux.HandleFunc("POST /logout", logoutHandler(logger, st))
	mux.HandleFunc("GET /user", userHandler(logger, st))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock identity server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, requireAPIKey(logger, mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]seedAccount, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var seeds []seedAccount
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return seeds, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// requireAPIKey rejects requests without an apikey header. The value is
// not verified, only its presence, mirroring how a misconfigured client
// fails against the real provider.
func requireAPIKey(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") == "" {
			logger.Warn("request missing apikey header", "path", r.URL.Path)
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"msg": "No API key found in request",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func signupHandler(logger *slog.Logger, st *state, autoConfirm bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string            `json:"email"`
			Password string            `json:"password"`
			Data     map[string]string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"msg": "Signup requires a valid email and password",
			})
			return
		}

		st.mu.Lock()
		defer st.mu.Unlock()

		key := strings.ToLower(req.Email)
		if _, exists := st.accounts[key]; exists {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"msg": "User already registered",
			})
			return
		}

		a := &account{
			id:        uuid.NewString(),
			email:     req.Email,
			password:  req.Password,
			fullName:  req.Data["full_name"],
			confirmed: autoConfirm,
			createdAt: time.Now().UTC(),
		}
		st.accounts[key] = a
		logger.Info("account created", "email", req.Email, "confirmed", autoConfirm)

		// Confirmation-required instances return the bare user; auto-confirm
		// instances return a full session.
		if autoConfirm {
			writeJSON(w, http.StatusOK, st.issueSession(a))
			return
		}
		writeJSON(w, http.StatusOK, userJSON(a))
	}
}

func tokenHandler(logger *slog.Logger, st *state) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("grant_type") {
		case "password":
			passwordGrant(logger, st, w, r)
		case "refresh_token":
			refreshGrant(logger, st, w, r)
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "unsupported_grant_type",
				"error_description": "grant_type must be password or refresh_token",
			})
		}
	}
}

func passwordGrant(logger *slog.Logger, st *state, w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	a := st.accounts[strings.ToLower(req.Email)]
	if a == nil || a.password != req.Password {
		logger.Warn("login rejected", "email", req.Email)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
		return
	}
	if !a.confirmed {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Email not confirmed",
		})
		return
	}

	logger.Info("session issued", "email", a.email)
	writeJSON(w, http.StatusOK, st.issueSession(a))
}

func refreshGrant(logger *slog.Logger, st *state, w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid Refresh Token: Refresh Token Not Found",
		})
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	email, ok := st.refresh[req.RefreshToken]
	if !ok {
		logger.Warn("unknown refresh token")
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid Refresh Token: Refresh Token Not Found",
		})
		return
	}

	// Refresh tokens are single use; the old one dies with the rotation.
	delete(st.refresh, req.RefreshToken)

	logger.Info("session refreshed", "email", email)
	writeJSON(w, http.StatusOK, st.issueSession(st.accounts[email]))
}

func logoutHandler(logger *slog.Logger, st *state) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := bearerToken(r)

		st.mu.Lock()
		_, known := st.access[at]
		delete(st.access, at)
		st.mu.Unlock()

		logger.Info("logout", "known_token", known)
		w.WriteHeader(http.StatusNoContent)
	}
}

func userHandler(logger *slog.Logger, st *state) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := bearerToken(r)

		st.mu.Lock()
		defer st.mu.Unlock()

		email, ok := st.access[at]
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"msg": "Invalid token: token not found",
			})
			return
		}

		writeJSON(w, http.StatusOK, userJSON(st.accounts[email]))
	}
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
