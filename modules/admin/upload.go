package admin

import (
	"fmt"
	"net/http"
)

type uploadResp struct {
	File   string      `json:"file"`
	Record interface{} `json:"record"`
}

// saveUpload stores the multipart field "file" and returns its stored name.
func (m *ModuleCtx) saveUpload(r *http.Request) (string, error) {
	m.mu.RLock()
	maxMemory := m.config.MaxUploadMemory
	m.mu.RUnlock()

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return "", fmt.Errorf("%w: unable to parse form", errBadRequest)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("%w: no file uploaded", errBadRequest)
	}
	defer file.Close()

	name, err := m.uploads.Save(header.Filename, file)
	if err != nil {
		return "", err
	}

	m.logger.Info().
		Str("original", header.Filename).
		Str("stored", name).
		Int64("size", header.Size).
		Msg("video uploaded")

	return name, nil
}
