package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var settingColumns = []string{"id", "name", "value"}

func scanSetting(row sq.RowScanner) (*Setting, error) {
	var setting Setting
	if err := row.Scan(&setting.ID, &setting.Name, &setting.Value); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Store) Settings(ctx context.Context) ([]Setting, error) {
	query, args, err := s.sq.Select(settingColumns...).
		From(settingTable).
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

	settings := []Setting{}
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, *setting)
	}

	return settings, rows.Err()
}

// SettingsMap returns all settings keyed by name. Later rows win when
// names repeat.
func (s *Store) SettingsMap(ctx context.Context) (map[string]string, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Name] = setting.Value
	}
	return out, nil
}

func (s *Store) Setting(ctx context.Context, id int64) (*Setting, error) {
	query, args, err := s.sq.Select(settingColumns...).
		From(settingTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	setting, err := scanSetting(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("setting", id)
	}
	return setting, err
}

func (s *Store) CreateSetting(ctx context.Context, setting *Setting) error {
	if strings.TrimSpace(setting.Name) == "" {
		return invalid("setting name is empty")
	}

	query, args, err := s.sq.Insert(settingTable).
		Columns("name", "value").
		Values(setting.Name, setting.Value).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	setting.ID, err = res.LastInsertId()
	return err
}

// UpdateSetting stores a new value. The name of a setting is read-only.
func (s *Store) UpdateSetting(ctx context.Context, setting *Setting) error {
	query, args, err := s.sq.Update(settingTable).
		Set("value", setting.Value).
		Where(sq.Eq{"id": setting.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "setting", setting.ID)
}

func (s *Store) DeleteSetting(ctx context.Context, id int64) error {
	query, args, err := s.sq.Delete(settingTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return affected(res, "setting", id)
}
