package serverapp

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/efritioff/gtav-timer/internal/config"
	"github.com/efritioff/gtav-timer/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	app, err := New(Options{
		Config: &cfg,
		Logger: log.New(io.Discard, "", 0),
		KV:     kvstore.NewMemory(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rec, body := doJSON(t, app.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCatalogEndpointKeepsOrder(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 9)
	assert.Equal(t, "bunker", list[0].ID)
	assert.Equal(t, "import-export", list[8].ID)
}

func TestStateSortsOwnedFirst(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	rec, _ := doJSON(t, h, http.MethodPost, "/api/businesses/weed/owned", `{"owned":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	businesses := body["businesses"].([]any)
	require.Len(t, businesses, 9)
	first := businesses[0].(map[string]any)
	assert.Equal(t, "weed", first["id"])
	assert.Equal(t, true, first["owned"])
	// Catalog order holds for the unowned remainder.
	second := businesses[1].(map[string]any)
	assert.Equal(t, "bunker", second["id"])
}

func TestValueEndpointClamps(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/businesses/meth/value", `{"field":"supplies","value":250}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, body["supplies"])

	rec, body = doJSON(t, h, http.MethodPost, "/api/businesses/meth/value", `{"field":"product","value":-3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, body["product"])
}

func TestUnknownBusinessIs404WithSuggestion(t *testing.T) {
	app := newTestApp(t)
	rec, body := doJSON(t, app.Handler(), http.MethodPost, "/api/businesses/bunkr/resupply", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "bunker")
}

func TestResupplyAndSell(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/businesses/cocaine/resupply", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, body["supplies"])

	rec, body = doJSON(t, h, http.MethodPost, "/api/businesses/cocaine/sell", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, body["product"])
	assert.Equal(t, 100.0, body["supplies"])
}

func TestPickerFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	// Picking requires ownership.
	rec, _ := doJSON(t, h, http.MethodPost, "/api/picker/start", `{"businessId":"bunker"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	doJSON(t, h, http.MethodPost, "/api/businesses/bunker/owned", `{"owned":true}`)

	rec, body := doJSON(t, h, http.MethodPost, "/api/picker/start", `{"businessId":"bunker"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bunker", body["businessId"])
	assert.Equal(t, 0.0, body["index"])

	rec, _ = doJSON(t, h, http.MethodPost, "/api/picker/start", `{"businessId":"bunker"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = doJSON(t, h, http.MethodPost, "/api/picker/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["index"])

	rec, _ = doJSON(t, h, http.MethodPost, "/api/picker/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := body["businesses"].([]any)[0].(map[string]any)
	assert.Equal(t, "bunker", first["id"])
	assert.NotNil(t, first["location"])
	assert.Nil(t, body["picker"])
}

func TestPickerClickAnywhere(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	doJSON(t, h, http.MethodPost, "/api/businesses/nightclub/owned", `{"owned":true}`)
	rec, _ := doJSON(t, h, http.MethodPost, "/api/picker/start", `{"businessId":"nightclub"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/picker/click", `{"x":4100.5,"y":2200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := body["businesses"].([]any)[0].(map[string]any)
	loc := first["location"].([]any)
	assert.Equal(t, 4100.5, loc[0])
	assert.Equal(t, 2200.0, loc[1])
}

func TestPauseEndpoint(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/sim/pause", `{"paused":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["paused"])
	assert.True(t, app.Engine.Paused())

	rec, body = doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["paused"])
}

func TestLandmarksFilter(t *testing.T) {
	app := newTestApp(t)
	h := app.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/landmarks?blip=524", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	rec, body := doJSON(t, h, http.MethodGet, "/api/landmarks?blip=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "blip")
}

func TestMetricsExposed(t *testing.T) {
	app := newTestApp(t)
	app.Loop.Step()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gtavtimer_sim_ticks_total")
}
