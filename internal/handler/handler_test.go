package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaGreal2/kino-server/internal/db"
	"github.com/BaGreal2/kino-server/internal/middleware"
	"github.com/BaGreal2/kino-server/internal/store"
)

const testSecret = "test-secret"

type testServer struct {
	mux       *http.ServeMux
	users     *store.UserStore
	watchlist *store.WatchlistStore
}

// newTestServer wires the API the same way cmd/server does, minus CORS and
// the TMDB proxy, over a fresh in-memory database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	_, err = conn.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { conn.Close() })

	users := store.NewUserStore(conn)
	watchlist := store.NewWatchlistStore(conn)
	log := zap.NewNop()
	secured := middleware.Auth(testSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", RegisterHandler(users, log))
	mux.HandleFunc("/api/auth/login", LoginHandler(users, testSecret, log))
	mux.HandleFunc("/api/auth/me", secured(MeHandler(users)))
	watchlistRoutes := secured(WatchlistRouter(watchlist, log))
	mux.HandleFunc("/api/watchlist", watchlistRoutes)
	mux.HandleFunc("/api/watchlist/", watchlistRoutes)

	return &testServer{mux: mux, users: users, watchlist: watchlist}
}

// do runs a JSON request against the test mux; token may be empty.
func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// registerAndLogin creates an account and returns its bearer token.
func (ts *testServer) registerAndLogin(t *testing.T, username, email, password string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
