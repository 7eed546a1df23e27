package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/model"
	"xcribe/internal/app/prompt"
)

type recordedRequest struct {
	path   string
	apiKey string
	body   generateContentRequest
}

func newTestServer(t *testing.T, status int, responseBody string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.path = r.URL.Path
		recorded.apiKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recorded.body))
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)
	return server, recorded
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(Config{
		APIKey:  "AIza-test-key",
		BaseURL: server.URL,
	})
}

func candidatesJSON(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestTranscribeReturnsExtractedText(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusOK, candidatesJSON("Hello"))
	client := newTestClient(server)

	text, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
	assert.Equal(t, "AIza-test-key", recorded.apiKey)
}

func TestTranscribeModelSelection(t *testing.T) {
	t.Run("quality_selects_pro", func(t *testing.T) {
		server, recorded := newTestServer(t, http.StatusOK, candidatesJSON("ok"))
		client := newTestClient(server)

		settings := model.DefaultSettings()
		settings.RenderingMode = model.RenderingQuality
		_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", settings)
		require.NoError(t, err)
		assert.Equal(t, "/models/"+ModelQuality+":generateContent", recorded.path)
	})

	t.Run("fast_selects_flash", func(t *testing.T) {
		server, recorded := newTestServer(t, http.StatusOK, candidatesJSON("ok"))
		client := newTestClient(server)

		settings := model.DefaultSettings()
		settings.RenderingMode = model.RenderingFast
		_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", settings)
		require.NoError(t, err)
		assert.Equal(t, "/models/"+ModelFast+":generateContent", recorded.path)
	})
}

func TestTranscribeRequestPayload(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusOK, candidatesJSON("ok"))
	client := newTestClient(server)

	settings := model.DefaultSettings()
	settings.Language = "Nederlands"
	_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/wav", settings)
	require.NoError(t, err)

	body := recorded.body
	require.NotNil(t, body.SystemInstruction)
	require.Len(t, body.SystemInstruction.Parts, 1)
	assert.Equal(t, prompt.SystemInstruction, body.SystemInstruction.Parts[0].Text)

	require.Len(t, body.Contents, 1)
	parts := body.Contents[0].Parts
	require.Len(t, parts, 2)

	// Audio first, then the prompt.
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "audio/wav", parts[0].InlineData.MimeType)
	assert.Equal(t, "YXVkaW8=", parts[0].InlineData.Data)
	assert.Nil(t, parts[1].InlineData)
	assert.Equal(t, prompt.Build(settings), parts[1].Text)

	assert.InDelta(t, 0.1, body.GenerationConfig.Temperature, 1e-9)
}

func TestTranscribeEmptyResultUsesPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no_candidates", `{"candidates":[]}`},
		{"no_parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"blank_text", candidatesJSON("   \n")},
		{"missing_path", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, http.StatusOK, tt.body)
			client := newTestClient(server)

			text, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
			require.NoError(t, err)
			assert.Equal(t, NoTextPlaceholder, text)
		})
	}
}

func TestTranscribeHTTPErrorBecomesTranscriptionError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
	client := newTestClient(server)

	_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "http_500", terr.Code)
	assert.True(t, terr.Retryable)
	assert.Equal(t, userFacingFailure, terr.Message)
	assert.NotContains(t, terr.Message, "boom", "transport internals must not leak into the user-facing message")
}

func TestTranscribeMalformedBodyBecomesTranscriptionError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"candidates": not json`)
	client := newTestClient(server)

	_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "response_parse_error", terr.Code)
}

func TestTranscribeNetworkFailureBecomesTranscriptionError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, candidatesJSON("ok"))
	client := newTestClient(server)
	server.Close()

	_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "network_error", terr.Code)
	assert.True(t, terr.Retryable)
}

func TestTranscribeMissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "", BaseURL: server.URL})
	_, err := client.Transcribe(context.Background(), "YXVkaW8=", "audio/mpeg", model.DefaultSettings())
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
	assert.False(t, called, "no request may be issued without a credential")
}

func TestTranscribeInputValidation(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, candidatesJSON("ok"))
	client := newTestClient(server)

	_, err := client.Transcribe(context.Background(), "", "audio/mpeg", model.DefaultSettings())
	assert.ErrorIs(t, err, apperrors.ErrEmptyAudio)

	_, err = client.Transcribe(context.Background(), "YXVkaW8=", "", model.DefaultSettings())
	assert.ErrorIs(t, err, apperrors.ErrMissingMimeType)
}

func TestModelFor(t *testing.T) {
	assert.Equal(t, ModelQuality, ModelFor(model.RenderingQuality))
	assert.Equal(t, ModelFast, ModelFor(model.RenderingFast))
}

func TestUserFacingMessageIsRetryOriented(t *testing.T) {
	assert.True(t, strings.Contains(userFacingFailure, "try again"))
}
