package utils

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	std := log.New(LogWriter(logger, zerolog.WarnLevel), "", 0)
	std.Printf("http: TLS handshake error from %s", "127.0.0.1")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not json: %v (%q)", err, buf.String())
	}

	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["message"] != "http: TLS handshake error from 127.0.0.1" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestLogWriterSkipsEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	w := LogWriter(zerolog.New(&buf), zerolog.InfoLevel)

	n, err := w.Write([]byte("  \n"))
	if err != nil || n != 3 {
		t.Errorf("Write() = (%d, %v), want (3, nil)", n, err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
