// Package serverapp assembles the storage, simulation and HTTP layers into
// one runnable application.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/efritioff/gtav-timer/internal/catalog"
	"github.com/efritioff/gtav-timer/internal/config"
	"github.com/efritioff/gtav-timer/internal/holdings"
	"github.com/efritioff/gtav-timer/internal/httpmw"
	"github.com/efritioff/gtav-timer/internal/kvstore"
	"github.com/efritioff/gtav-timer/internal/picker"
	"github.com/efritioff/gtav-timer/internal/sim"
	"github.com/efritioff/gtav-timer/internal/web"
	"github.com/efritioff/gtav-timer/static"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Config        *config.Config
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger

	// KV overrides the storage backend selected by Config. Tests use this
	// to run everything in memory.
	KV kvstore.Store
}

// App owns every long-lived component. The HTTP handler and the sim loop
// share the same holdings store and engine.
type App struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Store   *holdings.Store
	Engine  *sim.Engine
	Flow    *picker.Flow
	Loop    *sim.Loop

	kv      kvstore.Store
	logger  *log.Logger
	handler http.Handler
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	kv := opts.KV
	if kv == nil {
		var err error
		kv, err = openStore(opts.Config, opts.Logger)
		if err != nil {
			return nil, err
		}
	}

	cat := catalog.Default()
	store := holdings.NewStore(kv, opts.Logger)
	engine := sim.NewEngine(cat)
	engine.Pause(opts.Config.Sim.StartPaused)
	flow := picker.NewFlow(cat, store)

	reg := prometheus.NewRegistry()
	loop := &sim.Loop{
		Engine:   engine,
		Store:    store,
		Interval: opts.Config.TickInterval(),
		Logger:   opts.Logger,
		Metrics:  sim.NewMetrics(reg),
	}

	app := &App{
		Config:  opts.Config,
		Catalog: cat,
		Store:   store,
		Engine:  engine,
		Flow:    flow,
		Loop:    loop,
		kv:      kv,
		logger:  opts.Logger,
	}
	app.handler = app.buildHandler(opts, reg)
	return app, nil
}

func (a *App) Handler() http.Handler { return a.handler }

func (a *App) Close() error { return a.kv.Close() }

func openStore(cfg *config.Config, logger *log.Logger) (kvstore.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return kvstore.NewSQLite(cfg.Storage.SQLitePath, logger)
	default:
		return kvstore.NewFile(cfg.DataDir, logger)
	}
}

func (a *App) buildHandler(opts Options, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "gtav-timer",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.Store.CheckStorage(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "state storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "gtav-timer",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/catalog", a.handleCatalog)
	mux.HandleFunc("GET /api/landmarks", a.handleLandmarks)
	mux.HandleFunc("GET /api/state", a.handleState)

	mux.HandleFunc("POST /api/businesses/{id}/owned", a.handleOwned)
	mux.HandleFunc("POST /api/businesses/{id}/value", a.handleValue)
	mux.HandleFunc("POST /api/businesses/{id}/resupply", a.handleResupply)
	mux.HandleFunc("POST /api/businesses/{id}/sell", a.handleSell)

	mux.HandleFunc("GET /api/picker", a.handlePickerCurrent)
	mux.HandleFunc("POST /api/picker/start", a.handlePickerStart)
	mux.HandleFunc("POST /api/picker/next", a.handlePickerNext)
	mux.HandleFunc("POST /api/picker/previous", a.handlePickerPrevious)
	mux.HandleFunc("POST /api/picker/select", a.handlePickerSelect)
	mux.HandleFunc("POST /api/picker/confirm", a.handlePickerConfirm)
	mux.HandleFunc("POST /api/picker/click", a.handlePickerClick)
	mux.HandleFunc("POST /api/picker/cancel", a.handlePickerCancel)

	mux.HandleFunc("POST /api/sim/pause", a.handlePause)

	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.Handle("GET /{$}", templ.Handler(web.IndexPage()))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
}

// BusinessState is one row of the UI state response.
type BusinessState struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	BlipID            int            `json:"blipId"`
	ProductionSeconds float64        `json:"productionSeconds"`
	Owned             bool           `json:"owned"`
	Supplies          float64        `json:"supplies"`
	Product           float64        `json:"product"`
	Location          *catalog.Coord `json:"location,omitempty"`
}

type stateResponse struct {
	Businesses []BusinessState `json:"businesses"`
	Paused     bool            `json:"paused"`
	Picker     *picker.Session `json:"picker,omitempty"`
	MapWidth   int             `json:"mapWidth"`
	MapHeight  int             `json:"mapHeight"`
}

func (a *App) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Catalog.List())
}

func (a *App) handleLandmarks(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("blip"))
	if raw == "" {
		writeJSON(w, http.StatusOK, catalog.Landmarks())
		return
	}
	blip, err := strconv.Atoi(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, `invalid "blip" query parameter`)
		return
	}
	writeJSON(w, http.StatusOK, catalog.LandmarksFor(blip))
}

func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	all := a.Catalog.List()
	rows := make([]BusinessState, 0, len(all))
	for _, b := range all {
		levels := a.Store.RuntimeState(b.ID)
		row := BusinessState{
			ID:                b.ID,
			Name:              b.Name,
			BlipID:            b.BlipID,
			ProductionSeconds: b.ProductionSeconds,
			Owned:             a.Store.IsOwned(b.ID),
			Supplies:          levels.Supplies,
			Product:           levels.Product,
		}
		if at, ok := a.Store.Location(b.ID); ok {
			row.Location = &at
		}
		rows = append(rows, row)
	}
	// Owned businesses float to the top; catalog order is preserved within
	// each group.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Owned && !rows[j].Owned
	})

	resp := stateResponse{
		Businesses: rows,
		Paused:     a.Engine.Paused(),
		MapWidth:   catalog.MapWidth,
		MapHeight:  catalog.MapHeight,
	}
	if s, ok := a.Flow.Current(); ok {
		resp.Picker = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) businessID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := a.Catalog.Get(id); err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return id, true
}

func (a *App) handleOwned(w http.ResponseWriter, r *http.Request) {
	id, ok := a.businessID(w, r)
	if !ok {
		return
	}
	var in struct {
		Owned bool `json:"owned"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	a.Store.SetOwned(id, in.Owned)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "owned": in.Owned})
}

func (a *App) handleValue(w http.ResponseWriter, r *http.Request) {
	id, ok := a.businessID(w, r)
	if !ok {
		return
	}
	var in struct {
		Field string  `json:"field"`
		Value float64 `json:"value"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	field, err := holdings.ParseField(in.Field)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.Store.SetRuntimeValue(id, field, in.Value); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a.Store.RuntimeState(id))
}

func (a *App) handleResupply(w http.ResponseWriter, r *http.Request) {
	id, ok := a.businessID(w, r)
	if !ok {
		return
	}
	a.Store.Resupply(id)
	writeJSON(w, http.StatusOK, a.Store.RuntimeState(id))
}

func (a *App) handleSell(w http.ResponseWriter, r *http.Request) {
	id, ok := a.businessID(w, r)
	if !ok {
		return
	}
	a.Store.Sell(id)
	writeJSON(w, http.StatusOK, a.Store.RuntimeState(id))
}

func (a *App) handlePickerCurrent(w http.ResponseWriter, r *http.Request) {
	s, ok := a.Flow.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": true, "session": s})
}

func (a *App) handlePickerStart(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BusinessID string `json:"businessId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := a.Flow.Start(strings.TrimSpace(in.BusinessID))
	if err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *App) handlePickerNext(w http.ResponseWriter, r *http.Request) {
	a.pickerMove(w, a.Flow.Next)
}

func (a *App) handlePickerPrevious(w http.ResponseWriter, r *http.Request) {
	a.pickerMove(w, a.Flow.Previous)
}

func (a *App) pickerMove(w http.ResponseWriter, move func() (picker.Session, error)) {
	s, err := move()
	if err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *App) handlePickerSelect(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := a.Flow.Select(in.Index)
	if err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *App) handlePickerConfirm(w http.ResponseWriter, r *http.Request) {
	if err := a.Flow.ConfirmSelected(); err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handlePickerClick(w http.ResponseWriter, r *http.Request) {
	var in struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := a.Flow.ConfirmClick(catalog.Coord{X: in.X, Y: in.Y}); err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handlePickerCancel(w http.ResponseWriter, r *http.Request) {
	if err := a.Flow.Cancel(); err != nil {
		writeErr(w, pickerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handlePause(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Paused bool `json:"paused"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	a.Engine.Pause(in.Paused)
	writeJSON(w, http.StatusOK, map[string]any{"paused": in.Paused})
}

func pickerStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, picker.ErrAlreadyPicking), errors.Is(err, picker.ErrNotPicking):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GTAVTIMER_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
