package catalog

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type SeedFilm struct {
	Film     `yaml:",inline"`
	Episodes []Episode `yaml:"episodes"`
}

// Seed is the YAML document accepted by Import.
type Seed struct {
	Settings []Setting  `yaml:"settings"`
	Films    []SeedFilm `yaml:"films"`
}

type ImportResult struct {
	Settings int
	Films    int
	Episodes int
}

func ParseSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		if err == io.EOF {
			return &seed, nil
		}
		return nil, fmt.Errorf("unable to parse seed: %w", err)
	}
	return &seed, nil
}

// Import inserts every record of the seed. Existing records are left
// untouched, so importing twice creates duplicates.
func (s *Store) Import(ctx context.Context, seed *Seed) (ImportResult, error) {
	var res ImportResult

	for _, setting := range seed.Settings {
		setting := setting
		if err := s.CreateSetting(ctx, &setting); err != nil {
			return res, fmt.Errorf("setting %q: %w", setting.Name, err)
		}
		res.Settings++
	}

	for _, item := range seed.Films {
		film := item.Film
		if err := s.CreateFilm(ctx, &film); err != nil {
			return res, fmt.Errorf("film %q: %w", film.Name, err)
		}
		res.Films++

		for _, episode := range item.Episodes {
			episode := episode
			episode.FilmID = film.ID
			if err := s.CreateEpisode(ctx, &episode); err != nil {
				return res, fmt.Errorf("episode %q of film %q: %w", episode.Name, film.Name, err)
			}
			res.Episodes++
		}
	}

	s.logger.Info().
		Int("settings", res.Settings).
		Int("films", res.Films).
		Int("episodes", res.Episodes).
		Msg("seed imported")

	return res, nil
}
