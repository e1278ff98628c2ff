package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPClient defines the interface for HTTP client operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fragment is the synthesized audio for one chunk; its index always equals
// the source chunk's index
type Fragment struct {
	Index int
	Audio []byte
}

// Synthesizer converts one chunk of text into one audio fragment
type Synthesizer interface {
	Synthesize(ctx context.Context, chunk Chunk, voice string) (Fragment, error)
}

const defaultTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleTTSService synthesizes chunks through the Google Cloud
// Text-to-Speech REST API
type GoogleTTSService struct {
	apiKey     string
	endpoint   string
	httpClient HTTPClient
}

// NewGoogleTTSService creates a TTS service; a nil httpClient gets a default
// client with the service timeout
func NewGoogleTTSService(apiKey string, httpClient HTTPClient) *GoogleTTSService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: ttsHTTPTimeout}
	}
	return &GoogleTTSService{
		apiKey:     apiKey,
		endpoint:   defaultTTSEndpoint,
		httpClient: httpClient,
	}
}

// ttsRequest is the synthesize request body. Rate and pitch are fixed at
// neutral; the output encoding is always MP3.
type ttsRequest struct {
	Input struct {
		SSML string `json:"ssml"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate"`
		Pitch         float64 `json:"pitch"`
	} `json:"audioConfig"`
}

// Synthesize converts one chunk into one audio fragment. Any transport or
// service error surfaces as a chunk-level failure; retry is the caller's
// business, not this layer's.
func (s *GoogleTTSService) Synthesize(ctx context.Context, chunk Chunk, voice string) (Fragment, error) {
	var request ttsRequest
	request.Input.SSML = chunk.SSML()
	request.Voice.LanguageCode = languageCode(voice)
	request.Voice.Name = voice
	request.AudioConfig.AudioEncoding = "MP3"
	request.AudioConfig.SpeakingRate = 1.0
	request.AudioConfig.Pitch = 0.0

	requestBody, err := json.Marshal(request)
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Fragment{}, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return Fragment{}, fmt.Errorf("TTS request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Fragment{}, fmt.Errorf("failed to decode TTS response: %w", err)
	}
	if result.AudioContent == "" {
		return Fragment{}, fmt.Errorf("no audio content in TTS response")
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to decode audio data: %w", err)
	}

	return Fragment{Index: chunk.Index, Audio: audio}, nil
}

// languageCode derives the language code from a full voice name like
// "en-US-Neural2-J"
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}
