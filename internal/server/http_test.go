package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestRouter(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "style.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(&Config{Static: static, PProf: true})
	s.Handle("/video", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "custom 404", path: "/missing/page", wantStatus: http.StatusNotFound},
		{name: "static file", path: "/static/style.css", wantStatus: http.StatusOK},
		{name: "recovered panic", path: "/video", wantStatus: http.StatusInternalServerError},
		{name: "pprof", path: "/debug/pprof/", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := resp.Header.Get("Accept-Ranges"); got != "bytes" {
				t.Errorf("Accept-Ranges = %q, want bytes", got)
			}
		})
	}
}
