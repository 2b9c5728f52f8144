// ABOUTME: Generative Language API wire types
// ABOUTME: Request and response structs for generateContent, TTS, and video
package genapi

import "encoding/json"

// GenerateContentRequest is the body for models/*:generateContent
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content is a single conversational turn
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is one piece of a turn: text or inline binary data
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries base64-encoded binary data with its MIME type
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerationConfig tunes the model response
type GenerationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema       `json:"responseSchema,omitempty"`
	SpeechConfig       *SpeechConfig `json:"speechConfig,omitempty"`
}

// Schema is a subset of the OpenAPI schema accepted by responseSchema
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// SpeechConfig selects the synthesis voice
type SpeechConfig struct {
	VoiceConfig *VoiceConfig `json:"voiceConfig,omitempty"`
}

// VoiceConfig wraps the prebuilt voice selection
type VoiceConfig struct {
	PrebuiltVoiceConfig *PrebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

// PrebuiltVoiceConfig names a prebuilt speaker
type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// GenerateContentResponse is the body returned by generateContent
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated response variant
type Candidate struct {
	Content *Content `json:"content,omitempty"`
	// Citation-style grounding records; treated as opaque payloads
	GroundingMetadata json.RawMessage `json:"groundingMetadata,omitempty"`
}

// PredictLongRunningRequest starts video generation
type PredictLongRunningRequest struct {
	Instances  []VideoInstance  `json:"instances"`
	Parameters *VideoParameters `json:"parameters,omitempty"`
}

// VideoInstance is a single video prompt
type VideoInstance struct {
	Prompt string `json:"prompt"`
}

// VideoParameters tunes video generation
type VideoParameters struct {
	AspectRatio    string `json:"aspectRatio,omitempty"`
	NumberOfVideos int    `json:"numberOfVideos,omitempty"`
}

// Operation is a long-running operation handle
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Response *OperationResponse `json:"response,omitempty"`
	Error    *Status            `json:"error,omitempty"`
}

// OperationResponse holds the completed operation result
type OperationResponse struct {
	GenerateVideoResponse *GenerateVideoResponse `json:"generateVideoResponse,omitempty"`
}

// GenerateVideoResponse lists generated video samples
type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedSample `json:"generatedSamples,omitempty"`
}

// GeneratedSample is one generated video
type GeneratedSample struct {
	Video *Video `json:"video,omitempty"`
}

// Video points at a downloadable generated video
type Video struct {
	URI string `json:"uri,omitempty"`
}

// Status is the google.rpc.Status error shape
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// ErrorResponse is the envelope for non-2xx API responses
type ErrorResponse struct {
	Error *Status `json:"error,omitempty"`
}

// Live API messages (BidiGenerateContent over websocket)

// LiveClientMessage is the union of messages a client sends
type LiveClientMessage struct {
	Setup         *LiveSetup         `json:"setup,omitempty"`
	ClientContent *LiveClientContent `json:"clientContent,omitempty"`
}

// LiveSetup opens a live session against a model
type LiveSetup struct {
	Model            string            `json:"model"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// LiveClientContent submits user turns into the session
type LiveClientContent struct {
	Turns        []Content `json:"turns,omitempty"`
	TurnComplete bool      `json:"turnComplete,omitempty"`
}

// LiveServerMessage is the union of messages the server sends
type LiveServerMessage struct {
	SetupComplete *struct{}          `json:"setupComplete,omitempty"`
	ServerContent *LiveServerContent `json:"serverContent,omitempty"`
}

// LiveServerContent streams model output incrementally
type LiveServerContent struct {
	ModelTurn    *Content `json:"modelTurn,omitempty"`
	TurnComplete bool     `json:"turnComplete,omitempty"`
}
