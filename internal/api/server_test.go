package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-tracker/internal/game"
	"github.com/xtding233/gacha-tracker/internal/stats"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	per := 500
	p, err := game.Resolve(game.RawConfig{
		Version: "v-test",
		Tokens:  &game.TokenConfig{PerDraw: &per},
		Banners: []game.BannerCfg{
			{ID: "special_1", UpItem: "Laevatain", Pool: "limited"},
			{ID: "weapon_1", UpItem: "Forgeborn", Kind: game.KindSession},
		},
	})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(stats.NewService(stats.StaticParams(p), logger), cfg, logger)
}

// recordsBody builds n character pulls on special_1; the pull at rareAt is a rare.
func recordsBody(n, rareAt int, rareName string) string {
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		rarity, name := 4, "Common"
		if i == rareAt {
			rarity, name = 6, rareName
		}
		parts = append(parts, fmt.Sprintf(
			`{"category":"character","poolId":"special_1","charName":%q,"rarity":%d,"gachaTs":"2025-03-01 12:00:%02d","seqId":"%d"}`,
			name, rarity, i%60, i))
	}
	return `{"records":[` + strings.Join(parts, ",") + `]}`
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	data := decodeData(t, w)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "v-test", data["configVersion"])
}

func TestBannerEndpoint(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodPost, "/api/v1/banners/special_1", recordsBody(30, 10, "Laevatain"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "special_1", data["bannerId"])
	assert.Equal(t, true, data["configured"])
	pity := data["pity"].(map[string]any)
	assert.EqualValues(t, 20, pity["pullsSinceLastRare"])
	assert.Equal(t, true, pity["lastRareWasUp"])
}

func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodPost, "/api/v1/report", recordsBody(5, 0, ""))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "v-test", data["configVersion"])
	assert.Len(t, data["banners"], 1)
	assert.Len(t, data["pools"], 1)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"malformed json", "/api/v1/report", `{"records":`, http.StatusBadRequest},
		{"unknown category", "/api/v1/report", `{"records":[{"category":"armor"}]}`, http.StatusBadRequest},
		{"bad trials", "/api/v1/banners/special_1/forecast?trials=0", recordsBody(1, 0, ""), http.StatusBadRequest},
		{"too many trials", "/api/v1/banners/special_1/forecast?trials=1000000", recordsBody(1, 0, ""), http.StatusBadRequest},
		{"bad seed", "/api/v1/banners/special_1/forecast?seed=x", recordsBody(1, 0, ""), http.StatusBadRequest},
		{"unknown pool", "/api/v1/pools/nope/pity", recordsBody(1, 0, ""), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestContentTypeEnforced(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", strings.NewReader(`{"records":[]}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestPoolEndpoint(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodPost, "/api/v1/pools/limited/pity", recordsBody(12, 3, "Someone"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "limited", data["pool"])
	pity := data["pity"].(map[string]any)
	assert.EqualValues(t, 9, pity["pullsSinceLastRare"])
	assert.NotContains(t, pity, "lastRareWasUp")
}

func TestForecastSeededIsDeterministic(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	body := recordsBody(20, 0, "")

	a := do(s, http.MethodPost, "/api/v1/banners/special_1/forecast?trials=500&seed=42", body)
	b := do(s, http.MethodPost, "/api/v1/banners/special_1/forecast?trials=500&seed=42", body)

	require.Equal(t, http.StatusOK, a.Code, a.Body.String())
	assert.JSONEq(t, a.Body.String(), b.Body.String())
	data := decodeData(t, a)
	assert.EqualValues(t, 500, data["trials"])
}

func TestNextReward(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodGet, "/api/v1/rewards/next?total=9", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "none", data["current"])
	next := data["next"].(map[string]any)
	assert.Equal(t, "box", next["type"])
	assert.EqualValues(t, 10, next["atSession"])
	assert.EqualValues(t, 1, next["remaining"])

	w = do(s, http.MethodGet, "/api/v1/rewards/next?total=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(s, http.MethodGet, "/api/v1/rewards/next", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(s, http.MethodGet, "/health", "").Code)
}

func TestTopUpEndpoint(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	w := do(s, http.MethodPost, "/api/v1/banners/special_1/topup?owned=-1", recordsBody(1, 0, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no shop configured: only a zero purchase can be planned
	w = do(s, http.MethodPost, "/api/v1/banners/special_1/topup", recordsBody(10, 0, ""))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = do(s, http.MethodGet, "/api/v1/shop/budget?cents=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(s, http.MethodGet, "/api/v1/shop/budget?cents=100", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 0, decodeData(t, w)["pulls"])
}

func TestQueryBounds(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	for _, target := range []string{
		"/api/v1/shop/budget?cents=1000001",
		"/api/v1/shop/budget?cents=4611686018427387904",
		"/api/v1/rewards/next?total=1000001",
		"/api/v1/rewards/next?total=9223372036854775804",
	} {
		w := do(s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	w := do(s, http.MethodGet, "/api/v1/shop/budget?cents=1000000", "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
