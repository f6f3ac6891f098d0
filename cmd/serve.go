package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/m1k1o/go-vodcat/internal/serve"
)

func init() {
	service := serve.NewCommand(catalogConfig)

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve video catalog",
		Long:  `serve video catalog, range streaming and admin API`,
		PreRun: func(cmd *cobra.Command, args []string) {
			service.Preflight()
		},
		Run: service.Run,
	}

	for _, cfg := range service.Configs() {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	onConfigLoad = append(onConfigLoad, service.ConfigReload)

	rootCmd.AddCommand(command)
}
