package admin

import (
	"net/http"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
)

func (m *ModuleCtx) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := m.catalog.Settings(r.Context())
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (m *ModuleCtx) createSetting(w http.ResponseWriter, r *http.Request) {
	var setting catalog.Setting
	if err := decodeJSON(r, &setting); err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.CreateSetting(r.Context(), &setting); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "setting created", setting.ID)
	writeJSON(w, http.StatusCreated, setting)
}

func (m *ModuleCtx) getSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	setting, err := m.catalog.Setting(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, setting)
}

// updateSetting changes only the value, names are fixed once created.
func (m *ModuleCtx) updateSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	var body catalog.Setting
	if err := decodeJSON(r, &body); err != nil {
		m.writeError(w, err)
		return
	}

	setting, err := m.catalog.Setting(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}
	setting.Value = body.Value

	if err := m.catalog.UpdateSetting(r.Context(), setting); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "setting updated", id)
	writeJSON(w, http.StatusOK, setting)
}

func (m *ModuleCtx) deleteSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if err := m.catalog.DeleteSetting(r.Context(), id); err != nil {
		m.writeError(w, err)
		return
	}

	m.changed(r.Context(), "setting deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (m *ModuleCtx) uploadSetting(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	setting, err := m.catalog.Setting(r.Context(), id)
	if err != nil {
		m.writeError(w, err)
		return
	}

	name, err := m.saveUpload(r)
	if err != nil {
		m.writeError(w, err)
		return
	}

	if setting.Value == "" {
		setting.Value = name
		if err := m.catalog.UpdateSetting(r.Context(), setting); err != nil {
			m.writeError(w, err)
			return
		}
	}

	m.changed(r.Context(), "setting file uploaded", id)
	writeJSON(w, http.StatusCreated, uploadResp{File: name, Record: setting})
}
