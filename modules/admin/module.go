package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
	"github.com/m1k1o/go-vodcat/pkg/upload"
)

type ModuleCtx struct {
	logger  zerolog.Logger
	catalog *catalog.Store
	uploads *upload.Store
	purger  Purger

	mu     sync.RWMutex
	config Config
	router chi.Router
}

func New(catalog *catalog.Store, uploads *upload.Store, purger Purger, config *Config) *ModuleCtx {
	module := &ModuleCtx{
		logger:  log.With().Str("module", "admin").Logger(),
		catalog: catalog,
		uploads: uploads,
		purger:  purger,
	}

	module.ConfigReload(config)
	return module
}

func (m *ModuleCtx) Shutdown() {

}

// ConfigReload rebuilds the router, so that new credentials apply to
// subsequent requests.
func (m *ModuleCtx) ConfigReload(config *Config) {
	cfg := config.withDefaultValues()
	router := m.newRouter(cfg)

	m.mu.Lock()
	m.config = cfg
	m.router = router
	m.mu.Unlock()
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	router := m.router
	m.mu.RUnlock()

	router.ServeHTTP(w, r)
}

func (m *ModuleCtx) newRouter(config Config) chi.Router {
	r := chi.NewRouter()

	if config.Login == "" {
		m.logger.Warn().Msg("admin login is not configured, denying all requests")
		r.Use(denyAll(config.Realm))
	} else {
		r.Use(middleware.BasicAuth(config.Realm, map[string]string{
			config.Login: config.Password,
		}))
	}

	r.Get("/", m.index)

	r.Route("/films", func(r chi.Router) {
		r.Get("/", m.listFilms)
		r.Post("/", m.createFilm)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", m.getFilm)
			r.Put("/", m.updateFilm)
			r.Delete("/", m.deleteFilm)
			r.Post("/file", m.uploadFilm)
		})
	})

	r.Route("/episodes", func(r chi.Router) {
		r.Get("/", m.listEpisodes)
		r.Post("/", m.createEpisode)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", m.getEpisode)
			r.Put("/", m.updateEpisode)
			r.Delete("/", m.deleteEpisode)
			r.Post("/file", m.uploadEpisode)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", m.listSettings)
		r.Post("/", m.createSetting)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", m.getSetting)
			r.Put("/", m.updateSetting)
			r.Delete("/", m.deleteSetting)
			r.Post("/file", m.uploadSetting)
		})
	})

	return r
}

func denyAll(realm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("WWW-Authenticate", `Basic realm="`+realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
}

type indexResp struct {
	Films    int               `json:"films"`
	Episodes int               `json:"episodes"`
	Settings map[string]string `json:"settings"`
}

func (m *ModuleCtx) index(w http.ResponseWriter, r *http.Request) {
	films, err := m.catalog.Films(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	episodes, err := m.catalog.Episodes(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	settings, err := m.catalog.SettingsMap(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, indexResp{
		Films:    len(films),
		Episodes: len(episodes),
		Settings: settings,
	})
}

// changed is called after every successful mutation.
func (m *ModuleCtx) changed(ctx context.Context, action string, id int64) {
	if m.purger != nil {
		m.purger.Purge()
	}

	m.logger.Info().
		Str("action", action).
		Int64("id", id).
		Str("request", middleware.GetReqID(ctx)).
		Msg("catalog changed")
}

func (m *ModuleCtx) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		http.Error(w, "400 "+err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, "404 "+err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalid):
		http.Error(w, "422 "+err.Error(), http.StatusUnprocessableEntity)
	case upload.IsExtensionError(err):
		http.Error(w, "415 "+err.Error(), http.StatusUnsupportedMediaType)
	default:
		m.logger.Warn().Err(err).Msg("admin request failed")
		http.Error(w, "500 "+err.Error(), http.StatusInternalServerError)
	}
}

var errBadRequest = errors.New("bad request")

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadRequest
	}
	return id, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
