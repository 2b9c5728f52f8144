// ABOUTME: Main tour application orchestration
// ABOUTME: Sequences identification, history, narration, playback, and export
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/fetch"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/gemini"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/history"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/share"
)

// videoPollInterval is how often a pending video operation is checked
const videoPollInterval = 10 * time.Second

// AudioOutput is the playback device the tour hands decoded buffers to
type AudioOutput interface {
	Open(sampleRate int) error
	SampleRate() int
	Play(buf *audio.PlaybackBuffer) error
}

// Config holds tour configuration
type Config struct {
	Client  *gemini.Client
	Output  AudioOutput
	History *history.Store
	Saver   *share.Saver
	Videos  *fetch.Downloader
	Voice   string

	// Live narration session parameters
	APIKey      string
	LiveBaseURL string
}

// Result is the state of the current analysis
type Result struct {
	EntryID  string
	Landmark *gemini.Landmark
	History  string
	Voice    string
	AudioB64 string
	Photo    *audio.NamedFile
	PostText string
	VideoURI string
}

// Tour coordinates one analysis at a time
type Tour struct {
	config  Config
	mu      sync.Mutex
	current *Result
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a tour
func New(config Config) *Tour {
	ctx, cancel := context.WithCancel(context.Background())

	if config.Voice == "" {
		config.Voice = "Kore"
	}

	return &Tour{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Analyze runs the full flow for a photo: identify the landmark, fetch
// its history, synthesize narration, play it, and record the analysis
func (t *Tour) Analyze(ctx context.Context, photoPath string) (*Result, error) {
	photo, err := LoadPhoto(photoPath)
	if err != nil {
		return nil, err
	}

	landmark, err := t.config.Client.IdentifyLandmark(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("could not identify the landmark: %w", err)
	}
	log.Printf("Identified %s (%s, confidence %.2f)", landmark.Name, landmark.Location, landmark.Confidence)

	historyText, err := t.config.Client.LandmarkHistory(ctx, landmark.Name)
	if err != nil {
		return nil, fmt.Errorf("could not fetch landmark history: %w", err)
	}

	payload, err := t.config.Client.Synthesize(ctx, historyText, t.config.Voice)
	if err != nil {
		return nil, fmt.Errorf("could not synthesize narration: %w", err)
	}

	if err := t.play(payload); err != nil {
		return nil, fmt.Errorf("could not play the audio narration: %w", err)
	}

	entry, err := t.config.History.Add(history.Entry{
		LandmarkName: landmark.Name,
		Location:     landmark.Location,
		History:      historyText,
		Voice:        t.config.Voice,
		AudioB64:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("could not record analysis: %w", err)
	}

	result := &Result{
		EntryID:  entry.ID,
		Landmark: landmark,
		History:  historyText,
		Voice:    t.config.Voice,
		AudioB64: payload,
		Photo:    photo,
	}

	t.mu.Lock()
	t.current = result
	t.mu.Unlock()

	return result, nil
}

// Replay plays the current narration again from the stored payload
func (t *Tour) Replay() error {
	result, err := t.requireCurrent()
	if err != nil {
		return err
	}
	if err := t.play(result.AudioB64); err != nil {
		return fmt.Errorf("could not play the audio narration: %w", err)
	}
	return nil
}

// Regenerate re-synthesizes the current narration in a different voice
// and replaces the history entry in place
func (t *Tour) Regenerate(ctx context.Context, voice string) (*Result, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	payload, err := t.config.Client.Synthesize(ctx, result.History, voice)
	if err != nil {
		return nil, fmt.Errorf("could not synthesize narration: %w", err)
	}

	if err := t.play(payload); err != nil {
		return nil, fmt.Errorf("could not play the audio narration: %w", err)
	}

	return t.replaceNarration(result, voice, payload)
}

// RegenerateLive streams a regenerated narration over the Live API,
// playing chunks as they arrive, then stores the combined payload
func (t *Tour) RegenerateLive(ctx context.Context, voice string) (*Result, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	stream, err := gemini.DialLive(ctx, gemini.LiveConfig{
		BaseURL: t.config.LiveBaseURL,
		APIKey:  t.config.APIKey,
		Voice:   voice,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open live narration session: %w", err)
	}
	defer stream.Close()

	if err := stream.Narrate(result.History); err != nil {
		return nil, fmt.Errorf("could not start live narration: %w", err)
	}

	var chunks []string
	done := false
	for !done {
		select {
		case chunk, ok := <-stream.Chunks:
			if !ok {
				done = true
				break
			}
			chunks = append(chunks, chunk)
			if err := t.play(chunk); err != nil {
				return nil, fmt.Errorf("could not play the audio narration: %w", err)
			}
		case <-stream.TurnDone:
			done = true
		case err := <-stream.Errors:
			return nil, fmt.Errorf("live narration failed: %w", err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// The turn can complete while chunks are still queued
drain:
	for {
		select {
		case chunk, ok := <-stream.Chunks:
			if !ok {
				break drain
			}
			chunks = append(chunks, chunk)
			if err := t.play(chunk); err != nil {
				return nil, fmt.Errorf("could not play the audio narration: %w", err)
			}
		default:
			break drain
		}
	}

	payload, err := audio.ConcatPayloads(chunks)
	if err != nil {
		return nil, fmt.Errorf("could not assemble live narration: %w", err)
	}

	return t.replaceNarration(result, voice, payload)
}

// SaveNarration exports the current narration as a WAV file
func (t *Tour) SaveNarration() (string, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return "", err
	}

	filename := slugify(result.Landmark.Name) + ".wav"
	file, err := audio.EncodeWAVFile(result.AudioB64, filename)
	if err != nil {
		return "", fmt.Errorf("could not encode narration: %w", err)
	}

	path, err := t.config.Saver.Save(file)
	if err != nil {
		return "", fmt.Errorf("could not save narration: %w", err)
	}

	log.Printf("Saved narration to %s", path)
	return path, nil
}

// SharePhoto hands the analyzed photo off to the save directory
func (t *Tour) SharePhoto() (string, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return "", err
	}

	path, err := t.config.Saver.Save(result.Photo)
	if err != nil {
		return "", fmt.Errorf("could not share photo: %w", err)
	}

	log.Printf("Shared photo to %s", path)
	return path, nil
}

// GeneratePost writes a social post for the current landmark and stores
// it on the history entry
func (t *Tour) GeneratePost(ctx context.Context) (string, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return "", err
	}

	post, err := t.config.Client.GeneratePost(ctx, result.Landmark.Name, result.History)
	if err != nil {
		return "", fmt.Errorf("could not generate post: %w", err)
	}

	t.mu.Lock()
	result.PostText = post
	t.mu.Unlock()

	t.updateEntry(result)
	return post, nil
}

// VideoTour generates a short video tour, blocking until the operation
// completes or ctx is cancelled. Callers run it in a goroutine.
func (t *Tour) VideoTour(ctx context.Context) (string, error) {
	result, err := t.requireCurrent()
	if err != nil {
		return "", err
	}

	name, err := t.config.Client.StartVideoTour(ctx, result.Landmark.Name)
	if err != nil {
		return "", fmt.Errorf("could not start video tour: %w", err)
	}
	log.Printf("Video tour started: %s", name)

	ticker := time.NewTicker(videoPollInterval)
	defer ticker.Stop()

	for {
		tour, err := t.config.Client.PollVideoTour(ctx, name)
		if err != nil {
			return "", fmt.Errorf("video tour failed: %w", err)
		}
		if tour != nil {
			t.mu.Lock()
			result.VideoURI = tour.URI
			t.mu.Unlock()

			t.updateEntry(result)
			log.Printf("Video tour ready: %s", tour.URI)

			if t.config.Videos != nil {
				if path, err := t.config.Videos.Download(tour.URI); err != nil {
					log.Printf("Video download failed: %v", err)
				} else {
					return path, nil
				}
			}
			return tour.URI, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Current returns the active analysis, or nil
func (t *Tour) Current() *Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Voices lists the available narration voices
func (t *Tour) Voices() []string {
	return t.config.Client.Voices()
}

// History lists past analyses
func (t *Tour) History() []history.Entry {
	return t.config.History.List()
}

// ClearHistory removes all past analyses
func (t *Tour) ClearHistory() error {
	return t.config.History.Clear()
}

// Stop cancels background work
func (t *Tour) Stop() {
	t.cancel()
}

// play decodes a payload at the device rate and starts playback
func (t *Tour) play(payload string) error {
	if t.config.Output.SampleRate() == 0 {
		if err := t.config.Output.Open(audio.WAVSampleRate); err != nil {
			return err
		}
	}

	buf, err := audio.DecodePCM(payload, t.config.Output.SampleRate())
	if err != nil {
		return err
	}

	return t.config.Output.Play(buf)
}

// replaceNarration updates the current result and its history entry
// with a new voice and payload
func (t *Tour) replaceNarration(result *Result, voice, payload string) (*Result, error) {
	t.mu.Lock()
	result.Voice = voice
	result.AudioB64 = payload
	t.mu.Unlock()

	if err := t.config.History.Replace(result.EntryID, history.Entry{
		LandmarkName: result.Landmark.Name,
		Location:     result.Landmark.Location,
		History:      result.History,
		Voice:        voice,
		AudioB64:     payload,
		PostText:     result.PostText,
		VideoURI:     result.VideoURI,
	}); err != nil {
		return nil, fmt.Errorf("could not update analysis record: %w", err)
	}

	return result, nil
}

// updateEntry rewrites the history entry from the result, logging on
// failure since the caller already has its primary value
func (t *Tour) updateEntry(result *Result) {
	t.mu.Lock()
	entry := history.Entry{
		LandmarkName: result.Landmark.Name,
		Location:     result.Landmark.Location,
		History:      result.History,
		Voice:        result.Voice,
		AudioB64:     result.AudioB64,
		PostText:     result.PostText,
		VideoURI:     result.VideoURI,
	}
	id := result.EntryID
	t.mu.Unlock()

	if err := t.config.History.Replace(id, entry); err != nil {
		log.Printf("Failed to update history entry: %v", err)
	}
}

// requireCurrent fetches the active analysis or errors
func (t *Tour) requireCurrent() (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil, fmt.Errorf("no analysis in progress")
	}
	return t.current, nil
}

// LoadPhoto reads an image file and tags it with its detected MIME type
func LoadPhoto(path string) (*audio.NamedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read photo: %w", err)
	}

	return &audio.NamedFile{
		Name: filepath.Base(path),
		MIME: http.DetectContentType(data),
		Data: data,
	}, nil
}

// slugify turns a landmark name into a safe filename stem
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "narration"
	}
	return slug
}
