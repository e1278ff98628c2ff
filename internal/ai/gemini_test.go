package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsbrief/newsletter-podcast/podcast"
)

type fakeHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.calls++
	return c.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func testNewsletters() []podcast.Newsletter {
	return []podcast.Newsletter{
		{ID: "1", Sender: "Tech Daily <news@techdaily.com>", Subject: "AI roundup", Body: "Model releases this week."},
		{ID: "2", Sender: "Finance Brief <hello@finbrief.io>", Subject: "Market recap", Body: "Stocks drifted sideways."},
	}
}

func TestGeminiService_GenerateScript(t *testing.T) {
	client := &fakeHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, defaultGeminiEndpoint, req.URL.String())
			assert.Equal(t, "gemini-key", req.Header.Get("X-Goog-Api-Key"))

			var request geminiRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&request))
			require.Len(t, request.Contents, 1)
			require.Len(t, request.Contents[0].Parts, 1)
			prompt := request.Contents[0].Parts[0].Text
			assert.Contains(t, prompt, "AI roundup")
			assert.Contains(t, prompt, "Market recap")
			assert.Contains(t, prompt, "Stocks drifted sideways.")
			assert.InDelta(t, geminiTemperature, request.GenerationConfig.Temperature, 0.0001)
			assert.Equal(t, geminiMaxOutputTokens, request.GenerationConfig.MaxOutputTokens)

			body := `{"candidates":[{"content":{"parts":[{"text":"  Good morning, listeners!  "}]}}]}`
			return jsonResponse(http.StatusOK, body), nil
		},
	}

	service := NewGeminiService("gemini-key", client)

	script, err := service.GenerateScript(context.Background(), testNewsletters())
	require.NoError(t, err)
	assert.Equal(t, "Good morning, listeners!", script)
	assert.Equal(t, 1, client.calls)
}

func TestGeminiService_GenerateScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		doFunc  func(req *http.Request) (*http.Response, error)
		errPart string
	}{
		{
			name: "api error status",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `{"error":"overloaded"}`), nil
			},
			errPart: "status 500",
		},
		{
			name: "transport failure",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, fmt.Errorf("connection reset")
			},
			errPart: "connection reset",
		},
		{
			name: "no candidates",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
			},
			errPart: "no response",
		},
		{
			name: "blank script",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`), nil
			},
			errPart: "empty script",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service := NewGeminiService("gemini-key", &fakeHTTPClient{doFunc: test.doFunc})

			_, err := service.GenerateScript(context.Background(), testNewsletters())
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.errPart)
		})
	}
}

func TestGeminiService_NoNewsletters(t *testing.T) {
	service := NewGeminiService("gemini-key", &fakeHTTPClient{})

	_, err := service.GenerateScript(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no newsletters")
}

func TestGeminiService_FormatNewslettersTruncation(t *testing.T) {
	service := NewGeminiService("gemini-key", nil)

	newsletters := []podcast.Newsletter{{
		Sender:  "Long Reads <long@reads.com>",
		Subject: "A very long issue",
		Body:    strings.Repeat("x", maxNewsletterBodyLen+500),
	}}

	formatted := service.formatNewsletters(newsletters)
	assert.Contains(t, formatted, "... [truncated]")
	assert.Less(t, len(formatted), maxNewsletterBodyLen+200)
}
