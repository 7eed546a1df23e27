// Package gemini implements the single round trip against the Gemini
// generateContent endpoint that turns inline audio plus the rendered prompt
// into transcript text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/model"
	"xcribe/internal/app/prompt"
)

const (
	// Model tiers selected by rendering mode. Static mapping, not
	// configurable per call.
	ModelQuality = "gemini-3-pro-preview"
	ModelFast    = "gemini-3-flash-preview"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 120 * time.Second

	// temperature is kept near zero to minimise creative drift from the
	// literal audio content. Tunable constant, not user-exposed.
	temperature = 0.1

	// NoTextPlaceholder is returned when the service answers successfully
	// but produces no usable text, so the caller never displays a silent
	// blank pane.
	NoTextPlaceholder = "No text was generated for this audio."

	// userFacingFailure is the retry-oriented message shown for any
	// transport or response-shape failure.
	userFacingFailure = "The transcription failed. Check that the audio file is not too large, or try again later."
)

// ModelFor returns the model identifier for a rendering mode.
func ModelFor(mode model.RenderingMode) string {
	if mode == model.RenderingQuality {
		return ModelQuality
	}
	return ModelFast
}

// TranscriptionError is the single failure kind the client produces for
// transport failures, non-success statuses and malformed response bodies.
// Message is safe to show to the user; Code identifies the cause for
// diagnosis.
type TranscriptionError struct {
	Code      string
	Message   string
	Retryable bool
	cause     error
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.cause
}

// Config holds the client configuration. BaseURL and HTTPClient exist so
// tests can point the client at a fake server.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client performs one-shot transcription calls. It holds no per-call state
// and is safe for reuse.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a transcription client. An explicit timeout is always
// set so a hanging service cannot hang the caller forever.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		client:  client,
	}
}

type generateContentRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	InlineData *inlineData `json:"inlineData,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Transcribe sends the audio and the prompt rendered from settings to the
// model tier selected by the rendering mode and returns the extracted
// transcript. The call is atomic: it succeeds once or fails once, with no
// automatic retry. The audio payload is never logged or retained beyond the
// call.
func (c *Client) Transcribe(ctx context.Context, audioBase64, mimeType string, settings model.TranscriptionSettings) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.ErrMissingAPIKey
	}
	if audioBase64 == "" {
		return "", apperrors.ErrEmptyAudio
	}
	if mimeType == "" {
		return "", apperrors.ErrMissingMimeType
	}

	reqBody := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: prompt.SystemInstruction}}},
		Contents: []content{{
			// Audio first, then the instruction text.
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: audioBase64}},
				{Text: prompt.Build(settings)},
			},
		}},
		GenerationConfig: generationConfig{Temperature: temperature},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TranscriptionError{
			Code:    "request_encode_error",
			Message: userFacingFailure,
			cause:   err,
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, ModelFor(settings.RenderingMode))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &TranscriptionError{
			Code:    "request_build_error",
			Message: userFacingFailure,
			cause:   err,
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &TranscriptionError{
			Code:      "network_error",
			Message:   userFacingFailure,
			Retryable: true,
			cause:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", &TranscriptionError{
			Code:      "response_read_error",
			Message:   userFacingFailure,
			Retryable: true,
			cause:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &TranscriptionError{
			Code:      fmt.Sprintf("http_%d", resp.StatusCode),
			Message:   userFacingFailure,
			Retryable: resp.StatusCode >= http.StatusInternalServerError,
			cause:     fmt.Errorf("service returned status %d", resp.StatusCode),
		}
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &TranscriptionError{
			Code:    "response_parse_error",
			Message: userFacingFailure,
			cause:   err,
		}
	}

	text := extractText(parsed)
	if text == "" {
		// Structurally valid but empty: soft failure, substitute the
		// placeholder so downstream display is never silently blank.
		return NoTextPlaceholder, nil
	}
	return text, nil
}

func extractText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
