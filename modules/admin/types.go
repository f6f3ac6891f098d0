package admin

type Config struct {
	Login    string
	Password string
	Realm    string
	// MaxUploadMemory is the part of a multipart upload kept in memory,
	// the rest is buffered in temporary files.
	MaxUploadMemory int64
}

func (c Config) withDefaultValues() Config {
	if c.Realm == "" {
		c.Realm = "Login Required"
	}
	if c.MaxUploadMemory <= 0 {
		c.MaxUploadMemory = 32 << 20
	}
	return c
}

// Purger drops cached catalog lookups after the catalog changed.
type Purger interface {
	Purge()
}
