// ABOUTME: Save and share handoff for named binary files
// ABOUTME: Writes exported audio and photos into a target directory
package share

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
)

// mimeExtensions maps MIME types to default file extensions for files
// handed off without one
var mimeExtensions = map[string]string{
	"audio/wav":  ".wav",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
	"text/plain": ".txt",
}

// ExtensionForMime returns the default extension for a MIME type, or
// empty when unknown
func ExtensionForMime(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeExtensions[mimeType]
}

// Saver writes named files into an output directory
type Saver struct {
	dir string
}

// NewSaver creates a saver targeting dir, creating it if needed
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// Dir returns the output directory
func (s *Saver) Dir() string {
	return s.dir
}

// Save writes the file's bytes under its (sanitized) name and returns
// the written path. A missing extension is defaulted from the MIME type.
func (s *Saver) Save(file *audio.NamedFile) (string, error) {
	name := sanitizeFilename(file.Name)
	if name == "" {
		return "", fmt.Errorf("file has no usable name")
	}
	if filepath.Ext(name) == "" {
		name += ExtensionForMime(file.MIME)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return path, nil
}

// sanitizeFilename strips path separators and control characters so a
// backend-supplied name cannot escape the output directory
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, r == '/', r == '\\', r == ':':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
