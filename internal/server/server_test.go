package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo84716/ro-data/internal/draw"
	"github.com/neo84716/ro-data/internal/enchant"
	"github.com/neo84716/ro-data/internal/exptable"
	"github.com/neo84716/ro-data/internal/gacha"
	"github.com/neo84716/ro-data/internal/handler"
	"github.com/neo84716/ro-data/internal/testing/leaktest"
	"github.com/neo84716/ro-data/internal/tracker"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func newTestServices(t *testing.T, store stubPinger) Services {
	t.Helper()
	ctx := context.Background()
	engine := draw.NewEngine(draw.WithMode(draw.ModeFixedPercent))

	pools, err := gacha.LoadPools("../../configs/gacha_pools.yaml")
	require.NoError(t, err)
	gachaSvc, err := gacha.NewService(ctx, engine, pools, gacha.Config{})
	require.NoError(t, err)

	profiles, err := enchant.LoadProfiles("../../configs/enchant_profiles.yaml")
	require.NoError(t, err)
	enchantSvc, err := enchant.NewService(ctx, engine, profiles, enchant.Config{})
	require.NoError(t, err)

	table, err := exptable.Load("")
	require.NoError(t, err)

	return Services{
		Gacha:    gachaSvc,
		Enchant:  enchantSvc,
		Tracker:  tracker.NewService(table, nil),
		ExpTable: table,
		Store:    store,
	}
}

func newTestRouter(t *testing.T, opts Options, store stubPinger) http.Handler {
	t.Helper()
	return NewRouter(opts, newTestServices(t, store))
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, Options{Version: "1.2.3"}, stubPinger{})

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/readyz", "").Code)
	assert.Contains(t, do(t, router, http.MethodGet, "/version", "").Body.String(), "1.2.3")
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/metrics", "").Code)

	down := newTestRouter(t, Options{}, stubPinger{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusServiceUnavailable, do(t, down, http.MethodGet, "/readyz", "").Code)
}

func TestRouter_GachaSession(t *testing.T) {
	router := newTestRouter(t, Options{}, stubPinger{})

	rec := do(t, router, http.MethodPost, "/api/v1/gacha/sessions", `{"pool_id":"default"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var v gacha.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	rec = do(t, router, http.MethodPost, "/api/v1/gacha/sessions/"+v.ID+"/pull", `{"count":11}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/gacha/sessions/"+v.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 11, v.Pulls)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestRouter_EnchantAndExp(t *testing.T) {
	router := newTestRouter(t, Options{}, stubPinger{})

	rec := do(t, router, http.MethodGet, "/api/v1/enchant/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profiles []enchant.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.NotEmpty(t, profiles)

	rec = do(t, router, http.MethodPost, "/api/v1/enchant/sessions", `{"profile_id":"`+profiles[0].ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var v enchant.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	rec = do(t, router, http.MethodPost, "/api/v1/enchant/sessions/"+v.ID+"/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	for _, s := range v.Slots {
		assert.NotNil(t, s.Current)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/exp/required?category=pre_advancement&level=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"required_exp":9`)
}

func TestRouter_APIKeyGuardsMutations(t *testing.T) {
	router := newTestRouter(t, Options{APIKey: "k"}, stubPinger{})

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/gacha/pools", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/api/v1/gacha/sessions", `{"pool_id":"default"}`).Code)
	assert.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/gacha/sessions", `{"pool_id":"default"}`, HeaderAPIKey, "k").Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	router := newTestRouter(t, Options{MaxBodyBytes: 16}, stubPinger{})

	rec := do(t, router, http.MethodPost, "/api/v1/gacha/sessions", `{"pool_id":"`+strings.Repeat("d", 64)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	loggingMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, "request_id")
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	loggingMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Empty(t, buf.String())
}

func TestRouter_UnknownCategory(t *testing.T) {
	router := newTestRouter(t, Options{}, stubPinger{})

	rec := do(t, router, http.MethodGet, "/api/v1/exp/required?category=novice&level=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.ErrMsgUnknownCategoryError)
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer(Options{Port: 0}, newTestServices(t, stubPinger{}))
	checker := leaktest.NewGoroutineChecker(t)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
	checker.Check(0)
}
