// ABOUTME: WebSocket client for live streaming narration
// ABOUTME: Streams base64 PCM chunks from the bidirectional Live API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/gemini/genapi"
	"github.com/gorilla/websocket"
)

const (
	livePath         = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
	defaultLiveModel = "gemini-2.5-flash-preview-native-audio-dialog"

	liveSetupTimeout = 10 * time.Second
)

// LiveConfig configures a live narration session
type LiveConfig struct {
	BaseURL string // ws:// or wss:// base, defaults to the Google endpoint
	APIKey  string
	Model   string
	Voice   string
	Dialer  *websocket.Dialer
}

// LiveStream is an open live narration session. Audio chunks arrive on
// Chunks as base64 PCM payloads in the same format as buffered
// synthesis; TurnDone fires once per completed narration turn.
type LiveStream struct {
	conn *websocket.Conn
	mu   sync.Mutex

	Chunks   chan string
	TurnDone chan struct{}
	Errors   chan error

	ctx    context.Context
	cancel context.CancelFunc
}

// DialLive opens a live session and performs the setup handshake
func DialLive(ctx context.Context, cfg LiveConfig) (*LiveStream, error) {
	base := cfg.BaseURL
	if base == "" {
		base = "wss://generativelanguage.googleapis.com"
	}
	model := cfg.Model
	if model == "" {
		model = defaultLiveModel
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	url := fmt.Sprintf("%s%s?key=%s", strings.TrimRight(base, "/"), livePath, cfg.APIKey)

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	s := &LiveStream{
		conn:     conn,
		Chunks:   make(chan string, 100),
		TurnDone: make(chan struct{}, 1),
		Errors:   make(chan error, 1),
		ctx:      streamCtx,
		cancel:   cancel,
	}

	setup := genapi.LiveClientMessage{
		Setup: &genapi.LiveSetup{
			Model: "models/" + model,
			GenerationConfig: &genapi.GenerationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &genapi.SpeechConfig{
					VoiceConfig: &genapi.VoiceConfig{
						PrebuiltVoiceConfig: &genapi.PrebuiltVoiceConfig{VoiceName: cfg.Voice},
					},
				},
			},
		},
	}
	if err := s.sendJSON(setup); err != nil {
		conn.Close()
		cancel()
		return nil, fmt.Errorf("failed to send setup: %w", err)
	}

	// The server acknowledges setup before any content flows
	conn.SetReadDeadline(time.Now().Add(liveSetupTimeout))
	var ack genapi.LiveServerMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		cancel()
		return nil, fmt.Errorf("setup handshake failed: %w", err)
	}
	if ack.SetupComplete == nil {
		conn.Close()
		cancel()
		return nil, fmt.Errorf("unexpected message before setup completion")
	}
	conn.SetReadDeadline(time.Time{})

	go s.readMessages()

	return s, nil
}

// Narrate submits narration text as a completed user turn
func (s *LiveStream) Narrate(text string) error {
	msg := genapi.LiveClientMessage{
		ClientContent: &genapi.LiveClientContent{
			Turns: []genapi.Content{{
				Role:  "user",
				Parts: []genapi.Part{{Text: text}},
			}},
			TurnComplete: true,
		},
	}
	return s.sendJSON(msg)
}

// Close tears down the session
func (s *LiveStream) Close() error {
	s.cancel()
	return s.conn.Close()
}

// readMessages routes server messages to the stream channels
func (s *LiveStream) readMessages() {
	defer close(s.Chunks)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.ctx.Done():
			default:
				s.Errors <- fmt.Errorf("read failed: %w", err)
			}
			return
		}

		var msg genapi.LiveServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Ignoring malformed live message: %v", err)
			continue
		}

		if msg.ServerContent == nil {
			continue
		}

		if msg.ServerContent.ModelTurn != nil {
			for _, part := range msg.ServerContent.ModelTurn.Parts {
				if part.InlineData != nil && strings.HasPrefix(part.InlineData.MimeType, "audio/") {
					select {
					case s.Chunks <- part.InlineData.Data:
					case <-s.ctx.Done():
						return
					}
				}
			}
		}

		if msg.ServerContent.TurnComplete {
			select {
			case s.TurnDone <- struct{}{}:
			default:
			}
		}
	}
}

// sendJSON writes a message under the connection write lock
func (s *LiveStream) sendJSON(msg genapi.LiveClientMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}
