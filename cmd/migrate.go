package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

func init() {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "apply catalog migrations",
		Long:  `create or upgrade the catalog database schema and exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.Open(cmd.Context(), catalogConfig.Database)
			if err != nil {
				return err
			}

			log.Info().Str("database", catalogConfig.Database).Msg("migrations applied")
			return store.Close()
		},
	}

	rootCmd.AddCommand(command)
}
