package stream

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m1k1o/go-vodcat/pkg/chunk"
)

type ModuleCtx struct {
	logger   zerolog.Logger
	resolver Resolver

	mu     sync.RWMutex
	config Config
}

func New(resolver Resolver, config *Config) *ModuleCtx {
	return &ModuleCtx{
		logger:   log.With().Str("module", "stream").Logger(),
		resolver: resolver,
		config:   config.withDefaultValues(),
	}
}

func (m *ModuleCtx) Shutdown() {

}

func (m *ModuleCtx) ConfigReload(config *Config) {
	m.mu.Lock()
	m.config = config.withDefaultValues()
	m.mu.Unlock()
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	config := m.config
	m.mu.RUnlock()

	name := r.URL.Query().Get(config.QueryParam)
	if name == "" {
		http.Error(w, "400 invalid parameters", http.StatusBadRequest)
		return
	}

	path, err := m.resolver.ResolvePath(name)
	if err != nil {
		m.logger.Debug().Err(err).Str("video", name).Msg("unable to resolve video")
		http.Error(w, "400 invalid parameters", http.StatusBadRequest)
		return
	}

	rng := chunk.ParseRange(r.Header.Get("Range"))

	// missing files are not distinguished from other read errors
	c, err := chunk.Read(path, rng)
	if err != nil {
		m.logger.Warn().Err(err).Str("video", name).Msg("unable to read video chunk")
		http.Error(w, "500 unable to read video", http.StatusInternalServerError)
		return
	}
	defer c.Close()

	m.logger.Debug().
		Str("video", name).
		Int64("start", c.Start).
		Int64("length", c.Length).
		Int64("size", c.TotalSize).
		Msg("serving video chunk")

	chunk.Header(w, c, config.ContentType)
	if r.Method == http.MethodHead {
		return
	}

	if _, err := c.WriteTo(w); err != nil {
		m.logger.Debug().Err(err).Str("video", name).Msg("client went away")
	}
}
