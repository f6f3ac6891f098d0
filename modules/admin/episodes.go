package admin

import (
	"net/http"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

func (m *ModuleCtx) listEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := m.catalog.Episodes(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, episodes)
}

func (m *ModuleCtx) createEpisode(w http.ResponseWriter, r *http.Request) {
	var episode catalog.Episode
	if err := decodeJSON(r, &episode); err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.CreateEpisode(r.Context(), &episode); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "episode created", episode.ID)
	writeJSON(w, http.StatusCreated, episode)
}

func (m *ModuleCtx) getEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	episode, err := m.catalog.Episode(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, episode)
}

func (m *ModuleCtx) updateEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	var episode catalog.Episode
	if err := decodeJSON(r, &episode); err != nil {
		m.writeError(w, err)
		return
	}
	episode.ID = id

	if err := m.catalog.UpdateEpisode(r.Context(), &episode); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "episode updated", id)
	writeJSON(w, http.StatusOK, episode)
}

func (m *ModuleCtx) deleteEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.DeleteEpisode(r.Context(), id); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "episode deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (m *ModuleCtx) uploadEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	episode, err := m.catalog.Episode(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	name, err := m.saveUpload(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if episode.Video == "" {
		episode.Video = name
		if err := m.catalog.UpdateEpisode(r.Context(), episode); err != nil {
			m.writeError(w, err)
			return
		}
	}

	m.changed(r.Context(), "episode file uploaded", id)
	writeJSON(w, http.StatusCreated, uploadResp{File: name, Record: episode})
}
