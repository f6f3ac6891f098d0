package player

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

//go:embed player.html
var playerHTML string

var playerTmpl = template.Must(template.New("player").Parse(playerHTML))

type episodeData struct {
	Name   string
	Source string
}

type pageData struct {
	Film     *catalog.Film
	Source   string
	Episodes []episodeData
}

type ModuleCtx struct {
	logger     zerolog.Logger
	pathPrefix string
	catalog    Catalog

	mu     sync.RWMutex
	config Config
}

func New(pathPrefix string, catalog Catalog, config *Config) *ModuleCtx {
	return &ModuleCtx{
		logger:     log.With().Str("module", "player").Logger(),
		pathPrefix: pathPrefix,
		catalog:    catalog,
		config:     config.withDefaultValues(),
	}
}

func (m *ModuleCtx) Shutdown() {

}

func (m *ModuleCtx) ConfigReload(config *Config) {
	m.mu.Lock()
	m.config = config.withDefaultValues()
	m.mu.Unlock()
}

func (m *ModuleCtx) source(config Config, video string) string {
	return config.StreamPath + "?" + url.Values{config.QueryParam: {video}}.Encode()
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, m.pathPrefix) {
		http.NotFound(w, r)
		return
	}

	// remove path prefix
	name := strings.TrimPrefix(r.URL.Path, m.pathPrefix)
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	m.mu.RLock()
	config := m.config
	m.mu.RUnlock()

	film, err := m.catalog.FilmByName(r.Context(), name)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "File not found, try different name", http.StatusNotFound)
		return
	}
	if err != nil {
		m.logger.Warn().Err(err).Str("film", name).Msg("unable to lookup film")
		http.Error(w, "500 unable to lookup film", http.StatusInternalServerError)
		return
	}

	episodes, err := m.catalog.EpisodesOf(r.Context(), film.ID)
	if err != nil {
		m.logger.Warn().Err(err).Int64("film", film.ID).Msg("unable to list episodes")
		http.Error(w, "500 unable to list episodes", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Film:   film,
		Source: m.source(config, film.Video),
	}
	for _, episode := range episodes {
		data.Episodes = append(data.Episodes, episodeData{
			Name:   episode.Name,
			Source: m.source(config, episode.Video),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := playerTmpl.Execute(w, data); err != nil {
		m.logger.Err(err).Str("film", name).Msg("unable to render player")
	}
}
