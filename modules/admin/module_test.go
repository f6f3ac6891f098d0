package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/m1k1o/go-vodcat/pkg/catalog"
	"github.com/m1k1o/go-vodcat/pkg/upload"
)

type countingPurger struct {
	purged int
}

func (p *countingPurger) Purge() {
	p.purged++
}

type testEnv struct {
	srv     *httptest.Server
	module  *ModuleCtx
	store   *catalog.Store
	uploads *upload.Store
	purger  *countingPurger
}

func newTestEnv(t *testing.T, config *Config) *testEnv {
	t.Helper()

	dir := t.TempDir()
	store, err := catalog.Open(context.Background(), filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	uploads, err := upload.NewStore(filepath.Join(dir, "media"), nil)
	if err != nil {
		t.Fatal(err)
	}

	purger := &countingPurger{}
	module := New(store, uploads, purger, config)

	router := chi.NewRouter()
	router.Mount("/admin", module)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:     srv,
		module:  module,
		store:   store,
		uploads: uploads,
		purger:  purger,
	}
}

func (e *testEnv) do(t *testing.T, method, path, contentType string, body io.Reader, out interface{}) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.srv.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	req.SetBasicAuth("admin", "secret")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: unable to decode response: %v", method, path, err)
		}
	}

	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path string, in, out interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(b)
	}

	return e.do(t, method, path, "application/json", body, out)
}

func (e *testEnv) upload(t *testing.T, path, filename string, content []byte, out interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	return e.do(t, http.MethodPost, path, mw.FormDataContentType(), &buf, out)
}

var testConfig = &Config{Login: "admin", Password: "secret"}

func TestBasicAuth(t *testing.T) {
	env := newTestEnv(t, testConfig)

	tests := []struct {
		name       string
		user, pass string
		wantStatus int
	}{
		{name: "no credentials", wantStatus: http.StatusUnauthorized},
		{name: "wrong password", user: "admin", pass: "nope", wantStatus: http.StatusUnauthorized},
		{name: "valid", user: "admin", pass: "secret", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, env.srv.URL+"/admin/films", nil)
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.pass)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := resp.Header.Get("WWW-Authenticate"); got != `Basic realm="Login Required"` {
					t.Errorf("WWW-Authenticate = %q", got)
				}
			}
		})
	}
}

func TestDenyWithoutLogin(t *testing.T) {
	env := newTestEnv(t, &Config{})

	resp := env.doJSON(t, http.MethodGet, "/admin/films", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	// credentials become active after reload
	env.module.ConfigReload(testConfig)

	resp = env.doJSON(t, http.MethodGet, "/admin/films", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status after reload = %d, want 200", resp.StatusCode)
	}
}

func TestFilms(t *testing.T) {
	env := newTestEnv(t, testConfig)

	var film catalog.Film
	resp := env.doJSON(t, http.MethodPost, "/admin/films", catalog.Film{Name: "Matrix"}, &film)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if film.ID == 0 || film.Name != "Matrix" {
		t.Fatalf("created film = %+v", film)
	}

	var uploaded struct {
		File   string       `json:"file"`
		Record catalog.Film `json:"record"`
	}
	resp = env.upload(t, "/admin/films/"+itoa(film.ID)+"/file", "matrix.mp4", []byte("video"), &uploaded)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	if !strings.HasSuffix(uploaded.File, ".mp4") || uploaded.Record.Video != uploaded.File {
		t.Errorf("upload response = %+v", uploaded)
	}

	b, err := os.ReadFile(filepath.Join(env.uploads.Dir(), uploaded.File))
	if err != nil || string(b) != "video" {
		t.Errorf("stored file = %q, %v", b, err)
	}

	// a second upload keeps the video already set
	var second struct {
		File   string       `json:"file"`
		Record catalog.Film `json:"record"`
	}
	env.upload(t, "/admin/films/"+itoa(film.ID)+"/file", "other.avi", []byte("other"), &second)
	if second.Record.Video != uploaded.File {
		t.Errorf("video was replaced by %q", second.Record.Video)
	}

	resp = env.upload(t, "/admin/films/"+itoa(film.ID)+"/file", "virus.exe", []byte("x"), nil)
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("upload of .exe status = %d, want 415", resp.StatusCode)
	}

	var got catalog.Film
	env.doJSON(t, http.MethodGet, "/admin/films/"+itoa(film.ID), nil, &got)
	if got.Video != uploaded.File {
		t.Errorf("film video = %q, want %q", got.Video, uploaded.File)
	}

	resp = env.doJSON(t, http.MethodPut, "/admin/films/"+itoa(film.ID), catalog.Film{Name: "Matrix Reloaded", Video: "x.mp4"}, &got)
	if resp.StatusCode != http.StatusOK || got.Name != "Matrix Reloaded" {
		t.Errorf("update = %d %+v", resp.StatusCode, got)
	}

	var films []catalog.Film
	env.doJSON(t, http.MethodGet, "/admin/films", nil, &films)
	if len(films) != 1 {
		t.Errorf("list returned %d films", len(films))
	}

	resp = env.doJSON(t, http.MethodDelete, "/admin/films/"+itoa(film.ID), nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp = env.doJSON(t, http.MethodGet, "/admin/films/"+itoa(film.ID), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}

	if env.purger.purged == 0 {
		t.Errorf("catalog cache was never purged")
	}
}

func TestValidation(t *testing.T) {
	env := newTestEnv(t, testConfig)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{name: "empty film name", method: http.MethodPost, path: "/admin/films", body: catalog.Film{}, wantStatus: http.StatusUnprocessableEntity},
		{name: "episode of unknown film", method: http.MethodPost, path: "/admin/episodes", body: catalog.Episode{Name: "x", FilmID: 7}, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid id", method: http.MethodGet, path: "/admin/films/abc", wantStatus: http.StatusBadRequest},
		{name: "unknown setting", method: http.MethodGet, path: "/admin/settings/5", wantStatus: http.StatusNotFound},
		{name: "invalid json", method: http.MethodPost, path: "/admin/settings", body: "not an object", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.doJSON(t, tt.method, tt.path, tt.body, nil)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestEpisodes(t *testing.T) {
	env := newTestEnv(t, testConfig)

	var film catalog.Film
	env.doJSON(t, http.MethodPost, "/admin/films", catalog.Film{Name: "Series"}, &film)

	var episode catalog.Episode
	resp := env.doJSON(t, http.MethodPost, "/admin/episodes", catalog.Episode{Name: "Pilot", FilmID: film.ID}, &episode)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	var uploaded struct {
		File   string          `json:"file"`
		Record catalog.Episode `json:"record"`
	}
	resp = env.upload(t, "/admin/episodes/"+itoa(episode.ID)+"/file", "pilot.avi", []byte("pilot"), &uploaded)
	if resp.StatusCode != http.StatusCreated || uploaded.Record.Video != uploaded.File {
		t.Errorf("upload = %d %+v", resp.StatusCode, uploaded)
	}

	var episodes []catalog.Episode
	env.doJSON(t, http.MethodGet, "/admin/episodes", nil, &episodes)
	if len(episodes) != 1 || episodes[0].FilmID != film.ID {
		t.Errorf("episodes = %+v", episodes)
	}

	resp = env.doJSON(t, http.MethodDelete, "/admin/episodes/"+itoa(episode.ID), nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t, testConfig)

	var setting catalog.Setting
	env.doJSON(t, http.MethodPost, "/admin/settings", catalog.Setting{Name: "intro"}, &setting)

	var uploaded struct {
		File   string          `json:"file"`
		Record catalog.Setting `json:"record"`
	}
	env.upload(t, "/admin/settings/"+itoa(setting.ID)+"/file", "intro.mp4", []byte("intro"), &uploaded)
	if uploaded.Record.Value != uploaded.File {
		t.Errorf("setting value = %q, want %q", uploaded.Record.Value, uploaded.File)
	}

	var updated catalog.Setting
	env.doJSON(t, http.MethodPut, "/admin/settings/"+itoa(setting.ID), catalog.Setting{Name: "renamed", Value: "other.mp4"}, &updated)
	if updated.Name != "intro" || updated.Value != "other.mp4" {
		t.Errorf("updated setting = %+v", updated)
	}

	var index indexResp
	env.doJSON(t, http.MethodGet, "/admin/", nil, &index)
	if index.Settings["intro"] != "other.mp4" {
		t.Errorf("index settings = %v", index.Settings)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
