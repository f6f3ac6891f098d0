package player

import (
	"context"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

type Catalog interface {
	FilmByName(ctx context.Context, name string) (*catalog.Film, error)
	EpisodesOf(ctx context.Context, filmID int64) ([]catalog.Episode, error)
}

type Config struct {
	// StreamPath is the route of the streaming module.
	StreamPath string
	QueryParam string
}

func (c Config) withDefaultValues() Config {
	if c.StreamPath == "" {
		c.StreamPath = "/video"
	}
	if c.QueryParam == "" {
		c.QueryParam = "video_n"
	}
	return c
}
