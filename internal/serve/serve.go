package serve

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/m1k1o/go-vodcat/internal/config"
	"github.com/m1k1o/go-vodcat/internal/server"
	"github.com/m1k1o/go-vodcat/modules"
	"github.com/m1k1o/go-vodcat/modules/admin"
	"github.com/m1k1o/go-vodcat/modules/player"
	"github.com/m1k1o/go-vodcat/modules/stream"
	"github.com/m1k1o/go-vodcat/pkg/catalog"
	"github.com/m1k1o/go-vodcat/pkg/upload"
)

const (
	streamPath = "/video"
	adminPath  = "/admin"
)

func NewCommand(catalogConfig *config.Catalog) *Main {
	return &Main{
		ServerConfig:  &server.Config{},
		CatalogConfig: catalogConfig,
		MediaConfig:   &config.Media{},
		AdminConfig:   &config.Admin{},
	}
}

type Main struct {
	ServerConfig  *server.Config
	CatalogConfig *config.Catalog
	MediaConfig   *config.Media
	AdminConfig   *config.Admin

	// guards configs and modules against reloads from the config watcher
	mu sync.Mutex

	logger  zerolog.Logger
	server  *server.ServerManagerCtx
	catalog *catalog.Store
	uploads *upload.Store
	lookup  *catalog.CachedLookup

	stream  *stream.ModuleCtx
	player  *player.ModuleCtx
	admin   *admin.ModuleCtx
	modules []modules.Module
}

// Configs returns the configuration owned by the serve command.
func (main *Main) Configs() []config.Config {
	return []config.Config{
		main.ServerConfig,
		main.MediaConfig,
		main.AdminConfig,
	}
}

func (main *Main) Preflight() {
	main.mu.Lock()
	defer main.mu.Unlock()

	for _, cfg := range main.Configs() {
		cfg.Set()
	}
	main.logger = log.With().Str("service", "main").Logger()
}

func (main *Main) streamConfig() *stream.Config {
	return &stream.Config{
		ContentType: main.MediaConfig.ContentType,
	}
}

func (main *Main) adminConfig() *admin.Config {
	return &admin.Config{
		Login:    main.AdminConfig.Login,
		Password: main.AdminConfig.Password,
	}
}

// build opens the catalog and registers all modules on a new server
// without starting it.
func (main *Main) build() error {
	var err error

	main.catalog, err = catalog.Open(context.Background(), main.CatalogConfig.Database)
	if err != nil {
		return err
	}
	main.logger.Info().Str("database", main.CatalogConfig.Database).Msg("catalog opened")

	main.uploads, err = upload.NewStore(main.MediaConfig.Dir, main.MediaConfig.Extensions)
	if err != nil {
		_ = main.catalog.Close()
		return err
	}
	main.logger.Info().Str("media-dir", main.MediaConfig.Dir).Strs("extensions", main.MediaConfig.Extensions).Msg("media store ready")

	main.lookup = catalog.NewCachedLookup(main.catalog, main.CatalogConfig.CacheSize, main.CatalogConfig.CacheTTL)

	main.server = server.New(main.ServerConfig)

	main.stream = stream.New(main.uploads, main.streamConfig())
	main.server.Handle(streamPath, main.stream)
	main.logger.Info().Str("path", streamPath).Msg("stream registered")

	main.admin = admin.New(main.catalog, main.uploads, main.lookup, main.adminConfig())
	main.server.Mount(func(r *chi.Mux) {
		r.Mount(adminPath, main.admin)
	})
	if main.AdminConfig.Login == "" {
		main.logger.Warn().Msg("admin login is empty, admin panel is locked")
	}
	main.logger.Info().Str("path", adminPath).Msg("admin registered")

	main.player = player.New("/", main.lookup, &player.Config{
		StreamPath: streamPath,
	})
	main.server.Handle("/{name}", main.player)
	main.logger.Info().Msg("player registered")

	main.modules = []modules.Module{main.stream, main.admin, main.player}
	return nil
}

func (main *Main) start() error {
	main.mu.Lock()
	defer main.mu.Unlock()

	if err := main.build(); err != nil {
		return err
	}

	main.server.Start()
	return nil
}

func (main *Main) shutdown() {
	main.mu.Lock()
	defer main.mu.Unlock()

	err := main.server.Shutdown()
	main.logger.Err(err).Msg("http server shutdown")

	for _, module := range main.modules {
		module.Shutdown()
	}
	main.logger.Info().Msg("modules shutdown")

	err = main.catalog.Close()
	main.logger.Err(err).Msg("catalog closed")
}

// ConfigReload pushes reloaded configuration into running modules. Bind
// address, database and media directory changes need a restart.
func (main *Main) ConfigReload() {
	main.mu.Lock()
	defer main.mu.Unlock()

	if main.server == nil {
		return
	}

	for _, cfg := range main.Configs() {
		cfg.Set()
	}

	main.stream.ConfigReload(main.streamConfig())
	main.admin.ConfigReload(main.adminConfig())
	main.lookup.Purge()

	main.logger.Info().Msg("configuration reloaded")
}

func (main *Main) Run(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting main server")
	if err := main.start(); err != nil {
		main.logger.Panic().Err(err).Msg("unable to start")
	}
	main.logger.Info().Msg("main ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.shutdown()
	main.logger.Info().Msg("shutdown complete")
}
