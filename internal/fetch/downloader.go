// ABOUTME: Video tour downloader
// ABOUTME: Downloads generated videos from URLs and caches them locally
package fetch

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Downloader fetches generated video tours to local files
type Downloader struct {
	cacheDir string
	apiKey   string
	client   *http.Client
}

// NewDownloader creates a downloader caching into dir
func NewDownloader(dir, apiKey string) (*Downloader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Downloader{
		cacheDir: dir,
		apiKey:   apiKey,
		client:   &http.Client{},
	}, nil
}

// Download fetches a video from URL and saves it to the cache,
// returning the local path. Repeated downloads of the same URL hit the
// cache.
func (d *Downloader) Download(url string) (string, error) {
	if url == "" {
		return "", nil
	}

	hash := sha256.Sum256([]byte(url))
	filename := fmt.Sprintf("%x%s", hash[:8], getExtension(url))
	cachePath := filepath.Join(d.cacheDir, filename)

	if _, err := os.Stat(cachePath); err == nil {
		log.Printf("Video cache hit: %s", cachePath)
		return cachePath, nil
	}

	log.Printf("Downloading video: %s", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if d.apiKey != "" {
		req.Header.Set("x-goog-api-key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video download failed: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(cachePath)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(cachePath)
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	log.Printf("Video saved: %s", cachePath)
	return cachePath, nil
}

// Cleanup removes all cached videos
func (d *Downloader) Cleanup() error {
	return os.RemoveAll(d.cacheDir)
}

// getExtension extracts file extension from URL
func getExtension(url string) string {
	// Remove query string
	url = strings.Split(url, "?")[0]

	ext := filepath.Ext(url)
	if ext == "" {
		ext = ".mp4"
	}

	return ext
}
