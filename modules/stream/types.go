package stream

// Resolver turns the video name from the query string into a file path.
type Resolver interface {
	ResolvePath(name string) (string, error)
}

type Config struct {
	ContentType string
	QueryParam  string
}

func (c Config) withDefaultValues() Config {
	if c.ContentType == "" {
		c.ContentType = "video/mp4"
	}
	if c.QueryParam == "" {
		c.QueryParam = "video_n"
	}
	return c
}
