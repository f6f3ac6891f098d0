package upload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultExtensions are the video formats accepted when none are configured.
var DefaultExtensions = []string{"mp4", "avi"}

type ExtensionError struct {
	Filename  string
	Extension string
}

func (e *ExtensionError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("file %q has no extension", e.Filename)
	}
	return fmt.Sprintf("extension %q of file %q is not allowed", e.Extension, e.Filename)
}

func IsExtensionError(err error) bool {
	var e *ExtensionError
	return errors.As(err, &e)
}

// Extension returns the lowercased text after the last dot of filename.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// Name generates a random stored filename keeping the original extension.
// Only extensions from allowed are accepted.
func Name(original string, allowed []string) (string, error) {
	ext := Extension(original)
	if ext == "" || !contains(allowed, ext) {
		return "", &ExtensionError{Filename: original, Extension: ext}
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id + "." + ext, nil
}

func contains(list []string, ext string) bool {
	for _, item := range list {
		if strings.EqualFold(item, ext) {
			return true
		}
	}
	return false
}
