package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/m1k1o/go-vodcat/internal/config"
)

const (
	appName   = "vodcat"
	defCfgDir = "/etc/vodcat/"
	envPrefix = "VODCAT"
)

var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "Video catalog server CLI.",
	Long:    `Video catalog with byte-range streaming and an admin API.`,
	Version: "1.0.0",
}

// onConfigLoad is called every time the watched config file changes.
var onConfigLoad []func()

// catalogConfig is shared by every subcommand that opens the catalog.
var catalogConfig = &config.Catalog{}

func init() {
	var cfgFile string
	logConfig := &config.Log{}

	cobra.OnInitialize(func() {
		readConfig(cfgFile)
		logConfig.Set()
		initLogging(*logConfig)

		if file := viper.ConfigFileUsed(); file != "" {
			viper.OnConfigChange(func(e fsnotify.Event) {
				log.Info().Str("config", e.Name).Msg("config file changed")
				for _, reload := range onConfigLoad {
					reload()
				}
			})
			viper.WatchConfig()

			log.Info().Str("config", file).Msg("using config file")
		} else {
			log.Warn().Msg("no config file found, using flags and environment")
		}

		catalogConfig.Set()
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	for _, cfg := range []config.Config{logConfig, catalogConfig} {
		if err := cfg.Init(rootCmd); err != nil {
			log.Panic().Err(err).Msg("unable to init root config")
		}
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// readConfig loads cfgFile, or config.yml from defCfgDir or the working
// directory. Environment variables use envPrefix with . and - as _.
func readConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		if runtime.GOOS == "linux" {
			viper.AddConfigPath(defCfgDir)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// a missing default config is fine, an explicit one must load
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		panic(fmt.Errorf("unable to read config file: %w", err))
	}
}
