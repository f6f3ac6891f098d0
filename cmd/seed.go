package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

func init() {
	var file string

	command := &cobra.Command{
		Use:   "seed",
		Short: "import films, episodes and settings",
		Long:  `import films, episodes and settings from a yaml file into the catalog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("unable to open seed file: %w", err)
			}
			defer f.Close()

			seed, err := catalog.ParseSeed(f)
			if err != nil {
				return err
			}

			store, err := catalog.Open(cmd.Context(), catalogConfig.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := store.Import(cmd.Context(), seed); err != nil {
				return err
			}

			log.Info().Str("file", file).Msg("seed imported")
			return nil
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "seed.yml", "seed file path")

	rootCmd.AddCommand(command)
}
