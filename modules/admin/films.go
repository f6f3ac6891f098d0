package admin

import (
	"net/http"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

func (m *ModuleCtx) listFilms(w http.ResponseWriter, r *http.Request) {
	films, err := m.catalog.Films(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, films)
}

func (m *ModuleCtx) createFilm(w http.ResponseWriter, r *http.Request) {
	var film catalog.Film
	if err := decodeJSON(r, &film); err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.CreateFilm(r.Context(), &film); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "film created", film.ID)
	writeJSON(w, http.StatusCreated, film)
}

func (m *ModuleCtx) getFilm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	film, err := m.catalog.Film(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, film)
}

func (m *ModuleCtx) updateFilm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	var film catalog.Film
	if err := decodeJSON(r, &film); err != nil {
		m.writeError(w, err)
		return
	}
	film.ID = id

	if err := m.catalog.UpdateFilm(r.Context(), &film); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "film updated", id)
	writeJSON(w, http.StatusOK, film)
}

func (m *ModuleCtx) deleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.DeleteFilm(r.Context(), id); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "film deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (m *ModuleCtx) uploadFilm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	film, err := m.catalog.Film(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	name, err := m.saveUpload(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if film.Video == "" {
		film.Video = name
		if err := m.catalog.UpdateFilm(r.Context(), film); err != nil {
			m.writeError(w, err)
			return
		}
	}

	m.changed(r.Context(), "film file uploaded", id)
	writeJSON(w, http.StatusCreated, uploadResp{File: name, Record: film})
}
