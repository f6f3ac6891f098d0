package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var filmColumns = []string{"id", "name", "video"}

func scanFilm(row sq.RowScanner) (*Film, error) {
	var film Film
	if err := row.Scan(&film.ID, &film.Name, &film.Video); err != nil {
		return nil, err
	}
	return &film, nil
}

// FilmByName returns the first film with exactly the given name.
func (s *Store) FilmByName(ctx context.Context, name string) (*Film, error) {
	query, args, err := s.sq.Select(filmColumns...).
		From(filmTable).
		Where(sq.Eq{"name": name}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	film, err := scanFilm(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("film", name)
	}
	return film, err
}

func (s *Store) Film(ctx context.Context, id int64) (*Film, error) {
	query, args, err := s.sq.Select(filmColumns...).
		From(filmTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	film, err := scanFilm(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("film", id)
	}
	return film, err
}

func (s *Store) Films(ctx context.Context) ([]Film, error) {
	query, args, err := s.sq.Select(filmColumns...).
		From(filmTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	films := []Film{}
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}

	return films, rows.Err()
}

func (s *Store) CreateFilm(ctx context.Context, film *Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return invalid("film name is empty")
	}

	query, args, err := s.sq.Insert(filmTable).
		Columns("name", "video").
		Values(film.Name, film.Video).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	film.ID, err = res.LastInsertId()
	return err
}

func (s *Store) UpdateFilm(ctx context.Context, film *Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return invalid("film name is empty")
	}

	query, args, err := s.sq.Update(filmTable).
		Set("name", film.Name).
		Set("video", film.Video).
		Where(sq.Eq{"id": film.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "film", film.ID)
}

// DeleteFilm removes the film together with its episodes.
func (s *Store) DeleteFilm(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete(filmTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "film", id)
}
