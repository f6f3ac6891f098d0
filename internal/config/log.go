package config

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Log struct {
	Level      string
	Console    bool
	File       string
	MaxAge     int // days
	MaxSize    int // megabytes
	MaxBackups int
}

func (Log) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("log.level", "", "log level, info when empty")
	if err := viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log.level")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("log.console", true, "log to stderr")
	if err := viper.BindPFlag("log.console", cmd.PersistentFlags().Lookup("log.console")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("log.file", "", "log file path, rotated on SIGHUP")
	if err := viper.BindPFlag("log.file", cmd.PersistentFlags().Lookup("log.file")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("log.maxage", 0, "days to keep rotated log files")
	if err := viper.BindPFlag("log.maxage", cmd.PersistentFlags().Lookup("log.maxage")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("log.maxsize", 100, "log file size in MB before it is rotated")
	if err := viper.BindPFlag("log.maxsize", cmd.PersistentFlags().Lookup("log.maxsize")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("log.maxbackups", 0, "rotated log files to keep")
	if err := viper.BindPFlag("log.maxbackups", cmd.PersistentFlags().Lookup("log.maxbackups")); err != nil {
		return err
	}

	return nil
}

func (c *Log) Set() {
	c.Level = viper.GetString("log.level")
	c.Console = viper.GetBool("log.console")
	c.File = viper.GetString("log.file")
	c.MaxAge = viper.GetInt("log.maxage")
	c.MaxSize = viper.GetInt("log.maxsize")
	c.MaxBackups = viper.GetInt("log.maxbackups")
}

// GlobalLevel parses Level. Empty and unknown levels fall back to info,
// ok reports whether Level was usable.
func (c Log) GlobalLevel() (level zerolog.Level, ok bool) {
	if c.Level == "" {
		return zerolog.InfoLevel, true
	}

	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.InfoLevel, false
	}
	return level, true
}
