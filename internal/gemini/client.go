// ABOUTME: Gemini REST client for landmark analysis and narration
// ABOUTME: Handles identification, history, TTS synthesis, posts, and video
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/gemini/genapi"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAPIVersion = "v1beta"

	defaultModel      = "gemini-2.5-flash"
	defaultTTSModel   = "gemini-2.5-flash-preview-tts"
	defaultVideoModel = "veo-2.0-generate-001"
)

// prebuiltVoices are the speaker names offered for narration
var prebuiltVoices = []string{"Zephyr", "Puck", "Charon", "Kore", "Fenrir", "Aoede"}

// Landmark is the structured identification result. Sources are
// citation records whose shape is owned by the backend; they are kept
// opaque and passed through to history/display untouched.
type Landmark struct {
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Confidence float64         `json:"confidence"`
	Sources    json.RawMessage `json:"-"`
}

// VideoTour is a completed video generation result
type VideoTour struct {
	URI string
}

// Options configures the client
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	TTSModel   string
	VideoModel string
	HTTPClient *http.Client
}

// Client talks to the Generative Language API
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	ttsModel   string
	videoModel string
	httpClient *http.Client
}

// NewClient creates a Gemini client
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     opts.APIKey,
		model:      defaultModel,
		ttsModel:   defaultTTSModel,
		videoModel: defaultVideoModel,
		httpClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	if opts.Model != "" {
		c.model = opts.Model
	}
	if opts.TTSModel != "" {
		c.ttsModel = opts.TTSModel
	}
	if opts.VideoModel != "" {
		c.videoModel = opts.VideoModel
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// Voices returns the prebuilt voices available for narration
func (c *Client) Voices() []string {
	voices := make([]string, len(prebuiltVoices))
	copy(voices, prebuiltVoices)
	return voices
}

// IdentifyLandmark asks the model to name the landmark in a photo
func (c *Client) IdentifyLandmark(ctx context.Context, photo *audio.NamedFile) (*Landmark, error) {
	req := &genapi.GenerateContentRequest{
		Contents: []genapi.Content{{
			Role: "user",
			Parts: []genapi.Part{
				{InlineData: &genapi.Blob{
					MimeType: photo.MIME,
					Data:     base64.StdEncoding.EncodeToString(photo.Data),
				}},
				{Text: "Identify the landmark in this photograph. Respond with its common name, its location (city and country), and your confidence from 0 to 1."},
			},
		}},
		GenerationConfig: &genapi.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &genapi.Schema{
				Type: "object",
				Properties: map[string]*genapi.Schema{
					"name":       {Type: "string"},
					"location":   {Type: "string"},
					"confidence": {Type: "number"},
				},
				Required: []string{"name", "location", "confidence"},
			},
		},
	}

	var resp genapi.GenerateContentResponse
	if err := c.generateContent(ctx, c.model, req, &resp); err != nil {
		return nil, err
	}

	text, err := firstText(&resp)
	if err != nil {
		return nil, err
	}

	var landmark Landmark
	if err := json.Unmarshal([]byte(text), &landmark); err != nil {
		return nil, fmt.Errorf("failed to parse identification result: %w", err)
	}
	if len(resp.Candidates) > 0 {
		landmark.Sources = resp.Candidates[0].GroundingMetadata
	}

	return &landmark, nil
}

// LandmarkHistory fetches a short spoken-style history of a landmark
func (c *Client) LandmarkHistory(ctx context.Context, landmark string) (string, error) {
	req := &genapi.GenerateContentRequest{
		Contents: []genapi.Content{{
			Role: "user",
			Parts: []genapi.Part{{
				Text: fmt.Sprintf("Give a short, engaging history of %s in about 120 words, written to be read aloud by a tour guide.", landmark),
			}},
		}},
	}

	var resp genapi.GenerateContentResponse
	if err := c.generateContent(ctx, c.model, req, &resp); err != nil {
		return "", err
	}

	return firstText(&resp)
}

// Synthesize converts narration text to speech and returns the base64
// PCM payload exactly as delivered: mono 16-bit LE samples at 24 kHz.
func (c *Client) Synthesize(ctx context.Context, text, voice string) (string, error) {
	req := &genapi.GenerateContentRequest{
		Contents: []genapi.Content{{
			Role:  "user",
			Parts: []genapi.Part{{Text: text}},
		}},
		GenerationConfig: &genapi.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genapi.SpeechConfig{
				VoiceConfig: &genapi.VoiceConfig{
					PrebuiltVoiceConfig: &genapi.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}

	var resp genapi.GenerateContentResponse
	if err := c.generateContent(ctx, c.ttsModel, req, &resp); err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && strings.HasPrefix(part.InlineData.MimeType, "audio/") {
				return part.InlineData.Data, nil
			}
		}
	}

	return "", fmt.Errorf("response contained no audio data")
}

// GeneratePost writes a short social-media post for a landmark
func (c *Client) GeneratePost(ctx context.Context, landmark, history string) (string, error) {
	req := &genapi.GenerateContentRequest{
		Contents: []genapi.Content{{
			Role: "user",
			Parts: []genapi.Part{{
				Text: fmt.Sprintf("Write a short social media post (under 280 characters, 2-3 fitting hashtags) about visiting %s. Context: %s", landmark, history),
			}},
		}},
	}

	var resp genapi.GenerateContentResponse
	if err := c.generateContent(ctx, c.model, req, &resp); err != nil {
		return "", err
	}

	return firstText(&resp)
}

// StartVideoTour begins long-running video generation and returns the
// operation name to poll
func (c *Client) StartVideoTour(ctx context.Context, landmark string) (string, error) {
	req := &genapi.PredictLongRunningRequest{
		Instances: []genapi.VideoInstance{{
			Prompt: fmt.Sprintf("A cinematic aerial tour of %s, golden hour lighting, smooth camera movement.", landmark),
		}},
		Parameters: &genapi.VideoParameters{
			AspectRatio:    "16:9",
			NumberOfVideos: 1,
		},
	}

	url := fmt.Sprintf("%s/%s/models/%s:predictLongRunning", c.baseURL, defaultAPIVersion, c.videoModel)

	var op genapi.Operation
	if err := c.post(ctx, url, req, &op); err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", fmt.Errorf("video operation has no name")
	}

	return op.Name, nil
}

// PollVideoTour checks a video operation. It returns (nil, nil) while
// the operation is still running.
func (c *Client) PollVideoTour(ctx context.Context, name string) (*VideoTour, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, defaultAPIVersion, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	var op genapi.Operation
	if err := c.do(req, &op); err != nil {
		return nil, err
	}

	if !op.Done {
		return nil, nil
	}
	if op.Error != nil {
		return nil, &APIError{HTTPStatus: http.StatusOK, Status: op.Error.Status, Message: op.Error.Message}
	}
	if op.Response == nil || op.Response.GenerateVideoResponse == nil ||
		len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 ||
		op.Response.GenerateVideoResponse.GeneratedSamples[0].Video == nil {
		return nil, fmt.Errorf("video operation completed without a result")
	}

	return &VideoTour{URI: op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI}, nil
}

// generateContent posts a generateContent request against a model
func (c *Client) generateContent(ctx context.Context, model string, req *genapi.GenerateContentRequest, out *genapi.GenerateContentResponse) error {
	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, defaultAPIVersion, model)
	return c.post(ctx, url, req, out)
}

// post sends a JSON body and decodes a JSON response
func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	return c.do(req, out)
}

// do executes a request and decodes the response, mapping non-2xx
// responses to *APIError
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode, Message: string(data)}
		var envelope genapi.ErrorResponse
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != nil {
			apiErr.Status = envelope.Error.Status
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// firstText returns the first text part of the first candidate
func firstText(resp *genapi.GenerateContentResponse) (string, error) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("response contained no text")
}
