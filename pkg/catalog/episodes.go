package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var episodeColumns = []string{"id", "name", "video", "film_id"}

func scanEpisode(row sq.RowScanner) (*Episode, error) {
	var episode Episode
	if err := row.Scan(&episode.ID, &episode.Name, &episode.Video, &episode.FilmID); err != nil {
		return nil, err
	}
	return &episode, nil
}

func (s *Store) queryEpisodes(ctx context.Context, where interface{}) ([]Episode, error) {
	builder := s.sq.Select(episodeColumns...).
		From(episodeTable).
		OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	episodes := []Episode{}
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, *episode)
	}

	return episodes, rows.Err()
}

func (s *Store) Episodes(ctx context.Context) ([]Episode, error) {
	return s.queryEpisodes(ctx, nil)
}

func (s *Store) EpisodesOf(ctx context.Context, filmID int64) ([]Episode, error) {
	return s.queryEpisodes(ctx, sq.Eq{"film_id": filmID})
}

func (s *Store) Episode(ctx context.Context, id int64) (*Episode, error) {
	query, args, err := s.sq.Select(episodeColumns...).
		From(episodeTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	episode, err := scanEpisode(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("episode", id)
	}
	return episode, err
}

func (s *Store) validateEpisode(ctx context.Context, episode *Episode) error {
	if strings.TrimSpace(episode.Name) == "" {
		return invalid("episode name is empty")
	}

	if _, err := s.Film(ctx, episode.FilmID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("film %d does not exist", episode.FilmID)
		}
		return err
	}

	return nil
}

func (s *Store) CreateEpisode(ctx context.Context, episode *Episode) error {
	if err := s.validateEpisode(ctx, episode); err != nil {
		return err
	}

	query, args, err := s.sq.Insert(episodeTable).
		Columns("name", "video", "film_id").
		Values(episode.Name, episode.Video, episode.FilmID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	episode.ID, err = res.LastInsertId()
	return err
}

func (s *Store) UpdateEpisode(ctx context.Context, episode *Episode) error {
	if err := s.validateEpisode(ctx, episode); err != nil {
		return err
	}

	query, args, err := s.sq.Update(episodeTable).
		Set("name", episode.Name).
		Set("video", episode.Video).
		Set("film_id", episode.FilmID).
		Where(sq.Eq{"id": episode.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "episode", episode.ID)
}

func (s *Store) DeleteEpisode(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete(episodeTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "episode", id)
}
