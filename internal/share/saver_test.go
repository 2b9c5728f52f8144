// ABOUTME: Tests for the save/share handoff
// ABOUTME: Covers filename sanitization and MIME extension defaults
package share

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
)

func TestSaveWritesBytes(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create saver: %v", err)
	}

	file := &audio.NamedFile{
		Name: "narration.wav",
		MIME: "audio/wav",
		Data: []byte{0x52, 0x49, 0x46, 0x46},
	}

	path, err := saver.Save(file)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if !bytes.Equal(written, file.Data) {
		t.Error("written bytes do not match file data")
	}
	if filepath.Base(path) != "narration.wav" {
		t.Errorf("unexpected filename: %s", filepath.Base(path))
	}
}

func TestSaveDefaultsExtension(t *testing.T) {
	saver, _ := NewSaver(t.TempDir())

	path, err := saver.Save(&audio.NamedFile{
		Name: "landmark-photo",
		MIME: "image/jpeg",
		Data: []byte{0xFF, 0xD8},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if filepath.Ext(path) != ".jpg" {
		t.Errorf("expected .jpg extension, got %q", filepath.Ext(path))
	}
}

func TestSaveSanitizesPathTraversal(t *testing.T) {
	dir := t.TempDir()
	saver, _ := NewSaver(dir)

	path, err := saver.Save(&audio.NamedFile{
		Name: "../../etc/evil.wav",
		MIME: "audio/wav",
		Data: []byte{0x00},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("file escaped output directory: %s", path)
	}
	if filepath.Base(path) != "evil.wav" {
		t.Errorf("unexpected sanitized name: %s", filepath.Base(path))
	}
}

func TestSaveEmptyName(t *testing.T) {
	saver, _ := NewSaver(t.TempDir())

	_, err := saver.Save(&audio.NamedFile{Name: "  ", MIME: "audio/wav"})
	if err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestExtensionForMime(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"audio/wav", ".wav"},
		{"image/jpeg", ".jpg"},
		{"audio/pcm;rate=24000", ""},
		{"audio/wav; charset=binary", ".wav"},
		{"application/unknown", ""},
	}

	for _, tt := range tests {
		if got := ExtensionForMime(tt.mime); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.mime, tt.expected, got)
		}
	}
}
