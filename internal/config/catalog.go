package config

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Catalog struct {
	Database  string
	CacheSize int
	CacheTTL  time.Duration
}

func (Catalog) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("database", "vodcat.db", "path to the sqlite catalog database")
	if err := viper.BindPFlag("database", cmd.PersistentFlags().Lookup("database")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("cache.size", 128, "number of film lookups kept in memory")
	if err := viper.BindPFlag("cache.size", cmd.PersistentFlags().Lookup("cache.size")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("cache.ttl", time.Minute, "how long a film lookup is cached")
	if err := viper.BindPFlag("cache.ttl", cmd.PersistentFlags().Lookup("cache.ttl")); err != nil {
		return err
	}

	return nil
}

func (c *Catalog) Set() {
	c.Database = viper.GetString("database")
	c.CacheSize = viper.GetInt("cache.size")
	c.CacheTTL = viper.GetDuration("cache.ttl")
}
