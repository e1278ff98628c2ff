package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newsbrief/newsletter-podcast/podcast"
)

// HTTPClient defines the interface for HTTP client operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-pro:generateContent"
	geminiHTTPTimeout     = 2 * time.Minute

	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 8000

	// newsletter bodies longer than this are truncated in the prompt to
	// stay under the model's input limits
	maxNewsletterBodyLen = 10000
)

// GeminiService turns newsletter documents into a narration script through
// the Gemini generateContent API
type GeminiService struct {
	apiKey     string
	endpoint   string
	httpClient HTTPClient
}

// NewGeminiService creates a Gemini service; a nil httpClient gets a default
// client with the service timeout
func NewGeminiService(apiKey string, httpClient HTTPClient) *GeminiService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: geminiHTTPTimeout}
	}
	return &GeminiService{
		apiKey:     apiKey,
		endpoint:   defaultGeminiEndpoint,
		httpClient: httpClient,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

// GenerateScript creates a podcast narration script covering the given
// newsletters
func (s *GeminiService) GenerateScript(ctx context.Context, newsletters []podcast.Newsletter) (string, error) {
	if len(newsletters) == 0 {
		return "", fmt.Errorf("no newsletters provided")
	}

	var request geminiRequest
	request.Contents = []geminiContent{{Parts: []geminiPart{{Text: s.createPrompt(newsletters)}}}}
	request.GenerationConfig.Temperature = geminiTemperature
	request.GenerationConfig.MaxOutputTokens = geminiMaxOutputTokens

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	script := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if script == "" {
		return "", fmt.Errorf("empty script in API response")
	}
	return script, nil
}

// createPrompt builds the briefing prompt from the newsletters
func (s *GeminiService) createPrompt(newsletters []podcast.Newsletter) string {
	today := time.Now().Format("Monday, January 2, 2006")

	var b strings.Builder
	fmt.Fprintf(&b, "You are an engaging podcast host creating a morning news briefing for %s.\n\n", today)
	b.WriteString("I've received these newsletters today:\n\n")
	b.WriteString(s.formatNewsletters(newsletters))
	b.WriteString(`Your task: create an engaging, conversational 30-minute podcast script (approximately 4,000-5,000 words).

Guidelines:
1. Open with a warm greeting, today's date, and a brief preview of the topics.
2. Cover the most important topics in depth, grouping related stories across newsletters, adding context and analysis instead of repeating the text, with smooth transitions and a conversational tone.
3. Close with a summary of key takeaways, a warm sign-off, and a mention that this is an automated briefing.

Style notes:
- Write exactly as you would speak - contractions, natural pauses, conversational phrases.
- Add personality - occasional light humor or enthusiasm when appropriate.
- Don't mention that this is text or that you're an AI - speak as a podcast host.

Format:
- Write the complete script ready for text-to-speech.
- No special formatting, no stage directions, just natural speech.

Begin the podcast script:`)
	return b.String()
}

// formatNewsletters renders newsletters for inclusion in the prompt
func (s *GeminiService) formatNewsletters(newsletters []podcast.Newsletter) string {
	var b strings.Builder
	for i, n := range newsletters {
		fmt.Fprintf(&b, "--- Newsletter %d ---\n", i+1)
		fmt.Fprintf(&b, "From: %s\n", n.Sender)
		fmt.Fprintf(&b, "Subject: %s\n\n", n.Subject)

		body := n.Body
		if len(body) > maxNewsletterBodyLen {
			body = body[:maxNewsletterBodyLen] + "... [truncated]"
		}
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	return b.String()
}
