package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/config"
)

func testRouter(t *testing.T, env map[string]string, rdb *redis.Client) http.Handler {
	t.Helper()
	base := map[string]string{"DATABASE_URL": "postgres://localhost:5432/editions"}
	for k, v := range env {
		base[k] = v
	}
	cfg, err := config.LoadForTests(base)
	require.NoError(t, err)
	return NewRouter(Deps{
		Config:   cfg,
		Redis:    rdb,
		Logger:   zerolog.Nop(),
		Registry: prometheus.NewRegistry(),
	})
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) common.ErrorBody {
	t.Helper()
	var body struct {
		Error common.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestRouterHealthAndMetrics(t *testing.T) {
	r := testRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code, "no database pool configured")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "editions_http_requests_total")
}

func TestRouterMetricsDisabled(t *testing.T) {
	r := testRouter(t, map[string]string{"OBS_ENABLE_PROMETHEUS": "false"}, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := testRouter(t, nil, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, common.CodeNotFound, decodeError(t, rr).Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/v1/sales/1", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterRejectsBadInputBeforeStorage(t *testing.T) {
	r := testRouter(t, nil, nil)

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/customers/abc", ""},
		{http.MethodGet, "/api/v1/editions?limit=0", ""},
		{http.MethodGet, "/api/v1/purchases?offset=-1", ""},
		{http.MethodGet, "/api/v1/sales?offset=4294967296", ""},
		{http.MethodPost, "/api/v1/edition_ingredients/1", `{"ingredient_id":1}`},
		{http.MethodPost, "/api/v1/edition_ingredients/1?strategy=merge", `{"ingredient_id":1,"quantity":1}`},
		{http.MethodPost, "/api/v1/edition_ingredients/1?mode=nested", `{"ingredient_id":1,"quantity":1}`},
		{http.MethodGet, "/api/v1/edition_ingredients/entries/x", ""},
		{http.MethodDelete, "/api/v1/sales/0", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			require.Equal(t, common.CodeValidation, decodeError(t, rr).Code)
		})
	}
}

func TestRouterBodyLimit(t *testing.T) {
	r := testRouter(t, map[string]string{"BODY_LIMIT_BYTES": "16"}, nil)
	rr := httptest.NewRecorder()
	body := `{"name":"` + strings.Repeat("x", 64) + `"}`
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body)))
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r := testRouter(t, map[string]string{"CORS_ALLOWED_ORIGINS": "https://backoffice.example"}, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sales", nil)
	req.Header.Set("Origin", "https://backoffice.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, "https://backoffice.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRateLimitsWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r := testRouter(t, map[string]string{"RATE_LIMIT_MAX": "1"}, rdb)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/edition_ingredients/1?strategy=merge", strings.NewReader(`{}`))
		req.RemoteAddr = "198.51.100.4:4000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}
	require.Equal(t, http.StatusBadRequest, send().Code)
	require.Equal(t, http.StatusTooManyRequests, send().Code)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/customers/abc", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code, "reads are not limited")
}

func TestRouterRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	send := func(r http.Handler, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/edition_ingredients/1?strategy=merge", strings.NewReader(`{}`))
		req.RemoteAddr = "198.51.100.5:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := testRouter(t, map[string]string{"RATE_LIMIT_MAX": "1"}, rdb)
	require.Equal(t, http.StatusBadRequest, send(r, "203.0.113.1"))
	require.Equal(t, http.StatusTooManyRequests, send(r, "203.0.113.2"), "rotating the header must not reset the limit")

	mr.FlushAll()
	trusted := testRouter(t, map[string]string{"RATE_LIMIT_MAX": "1", "TRUST_PROXY_HEADERS": "true"}, rdb)
	require.Equal(t, http.StatusBadRequest, send(trusted, "203.0.113.1"))
	require.Equal(t, http.StatusBadRequest, send(trusted, "203.0.113.2"))
	require.Equal(t, http.StatusTooManyRequests, send(trusted, "203.0.113.2"))
}

func TestRouterIdempotencyReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r := testRouter(t, nil, rdb)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/edition_ingredients/1?strategy=merge", strings.NewReader(`{}`))
		req.Header.Set(common.IdempotencyHeader, "key-1")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}
	require.Equal(t, http.StatusBadRequest, send().Code)
	replay := send()
	require.Equal(t, http.StatusConflict, replay.Code)
	require.Equal(t, "IDEMPOTENT_REPLAY", decodeError(t, replay).Code)
}
