// ABOUTME: Tests for the Gemini REST client
// ABOUTME: Uses httptest servers to verify request shape and error mapping
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/gemini/genapi"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func textResponse(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := genapi.GenerateContentResponse{
		Candidates: []genapi.Candidate{{
			Content: &genapi.Content{
				Role:  "model",
				Parts: []genapi.Part{{Text: text}},
			},
		}},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

func TestIdentifyLandmark(t *testing.T) {
	photo := &audio.NamedFile{
		Name: "tower.jpg",
		MIME: "image/jpeg",
		Data: []byte{0xFF, 0xD8, 0xFF},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req genapi.GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Fatalf("unexpected request shape: %+v", req)
		}
		inline := req.Contents[0].Parts[0].InlineData
		if inline == nil || inline.MimeType != "image/jpeg" {
			t.Errorf("expected inline jpeg data, got %+v", inline)
		}
		if inline.Data != base64.StdEncoding.EncodeToString(photo.Data) {
			t.Errorf("photo bytes not base64-encoded correctly")
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON response config")
		}

		textResponse(t, w, `{"name":"Eiffel Tower","location":"Paris, France","confidence":0.97}`)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"})

	landmark, err := client.IdentifyLandmark(context.Background(), photo)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}

	want := &Landmark{Name: "Eiffel Tower", Location: "Paris, France", Confidence: 0.97}
	if diff := cmp.Diff(want, landmark, cmpopts.IgnoreFields(Landmark{}, "Sources")); diff != "" {
		t.Errorf("landmark mismatch (-want +got):\n%s", diff)
	}
}

func TestLandmarkHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		textResponse(t, w, "Built in 1889 for the World's Fair...")
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"})

	history, err := client.LandmarkHistory(context.Background(), "Eiffel Tower")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(history, "1889") {
		t.Errorf("unexpected history text: %q", history)
	}
}

func TestSynthesize(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x00, 0x01, 0x00, 0x02})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/gemini-2.5-flash-preview-tts:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req genapi.GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		gc := req.GenerationConfig
		if gc == nil || len(gc.ResponseModalities) != 1 || gc.ResponseModalities[0] != "AUDIO" {
			t.Errorf("expected AUDIO response modality, got %+v", gc)
		}
		if gc.SpeechConfig == nil || gc.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Kore" {
			t.Errorf("expected Kore voice, got %+v", gc.SpeechConfig)
		}

		resp := genapi.GenerateContentResponse{
			Candidates: []genapi.Candidate{{
				Content: &genapi.Content{
					Parts: []genapi.Part{{
						InlineData: &genapi.Blob{
							MimeType: "audio/pcm;rate=24000",
							Data:     payload,
						},
					}},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"})

	got, err := client.Synthesize(context.Background(), "Hello from Paris", "Kore")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if got != payload {
		t.Errorf("payload altered in transit: got %q", got)
	}
}

func TestSynthesizeNoAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		textResponse(t, w, "no audio here")
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"})

	_, err := client.Synthesize(context.Background(), "Hello", "Kore")
	if err == nil {
		t.Error("expected error when response has no audio part")
	}
}

func TestAPIErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "bad-key"})

	_, err := client.LandmarkHistory(context.Background(), "Eiffel Tower")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.HTTPStatus)
	}
	if apiErr.Message != "API key not valid" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
	if apiErr.Status != "INVALID_ARGUMENT" {
		t.Errorf("unexpected status: %q", apiErr.Status)
	}
}

func TestVideoTourLifecycle(t *testing.T) {
	var polls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, ":predictLongRunning"):
			json.NewEncoder(w).Encode(genapi.Operation{Name: "operations/tour-123"})
		case strings.Contains(r.URL.Path, "operations/tour-123"):
			polls++
			op := genapi.Operation{Name: "operations/tour-123"}
			if polls > 1 {
				op.Done = true
				op.Response = &genapi.OperationResponse{
					GenerateVideoResponse: &genapi.GenerateVideoResponse{
						GeneratedSamples: []genapi.GeneratedSample{{
							Video: &genapi.Video{URI: "https://example.com/tour.mp4"},
						}},
					},
				}
			}
			json.NewEncoder(w).Encode(op)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "test-key"})
	ctx := context.Background()

	name, err := client.StartVideoTour(ctx, "Eiffel Tower")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if name != "operations/tour-123" {
		t.Fatalf("unexpected operation name: %q", name)
	}

	tour, err := client.PollVideoTour(ctx, name)
	if err != nil {
		t.Fatalf("first poll failed: %v", err)
	}
	if tour != nil {
		t.Fatal("expected nil result while operation is running")
	}

	tour, err = client.PollVideoTour(ctx, name)
	if err != nil {
		t.Fatalf("second poll failed: %v", err)
	}
	if tour == nil || tour.URI != "https://example.com/tour.mp4" {
		t.Errorf("unexpected tour result: %+v", tour)
	}
}

func TestVoicesCopy(t *testing.T) {
	client := NewClient(Options{APIKey: "test-key"})

	voices := client.Voices()
	if len(voices) == 0 {
		t.Fatal("expected at least one voice")
	}

	voices[0] = "mutated"
	if client.Voices()[0] == "mutated" {
		t.Error("Voices should return a copy")
	}
}
