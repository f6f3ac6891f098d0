package catalog

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid record")
)

type Film struct {
	ID    int64  `json:"id" yaml:"-"`
	Name  string `json:"name" yaml:"name"`
	Video string `json:"video" yaml:"video"`
}

type Episode struct {
	ID     int64  `json:"id" yaml:"-"`
	Name   string `json:"name" yaml:"name"`
	Video  string `json:"video" yaml:"video"`
	FilmID int64  `json:"film_id" yaml:"-"`
}

type Setting struct {
	ID    int64  `json:"id" yaml:"-"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}
