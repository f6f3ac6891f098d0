package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestConfigFlags(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := &cobra.Command{Use: "test"}

	catalog := &Catalog{}
	media := &Media{}
	admin := &Admin{}
	for _, cfg := range []Config{catalog, media, admin} {
		if err := cfg.Init(cmd); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	}

	err := cmd.PersistentFlags().Parse([]string{
		"--database", "/tmp/films.db",
		"--cache.ttl", "5s",
		"--allowed-extensions", ".MP4,avi,mkv",
		"--admin.login", "root",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, cfg := range []Config{catalog, media, admin} {
		cfg.Set()
	}

	if catalog.Database != "/tmp/films.db" || catalog.CacheSize != 128 || catalog.CacheTTL != 5*time.Second {
		t.Errorf("catalog = %+v", catalog)
	}
	if media.Dir != "./media" || media.ContentType != "video/mp4" {
		t.Errorf("media = %+v", media)
	}
	if want := []string{"mp4", "avi", "mkv"}; !reflect.DeepEqual(media.Extensions, want) {
		t.Errorf("media.Extensions = %v, want %v", media.Extensions, want)
	}
	if admin.Login != "root" || admin.Password != "" {
		t.Errorf("admin = %+v", admin)
	}
}

func TestLogGlobalLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
		wantOK    bool
	}{
		{name: "empty", level: "", wantLevel: zerolog.InfoLevel, wantOK: true},
		{name: "debug", level: "debug", wantLevel: zerolog.DebugLevel, wantOK: true},
		{name: "unknown", level: "loud", wantLevel: zerolog.InfoLevel, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := Log{Level: tt.level}.GlobalLevel()
			if level != tt.wantLevel || ok != tt.wantOK {
				t.Errorf("GlobalLevel() = (%v, %v), want (%v, %v)", level, ok, tt.wantLevel, tt.wantOK)
			}
		})
	}
}
