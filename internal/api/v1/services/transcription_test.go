package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "xcribe/internal/api/errors"
	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/model"
	"xcribe/internal/app/testutil"
)

func TestTranscribeReturnsTextWithTimestamp(t *testing.T) {
	stub := &testutil.StubTranscriber{Response: "Goedemiddag allemaal."}
	svc := NewTranscriptionService(stub)

	resp, err := svc.Transcribe(context.Background(), "YWJj", "audio/mpeg", model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "Goedemiddag allemaal.", resp.Text)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, 1, stub.CallCount())
}

func TestTranscribeRejectsInvalidSettings(t *testing.T) {
	stub := &testutil.StubTranscriber{Response: "unused"}
	svc := NewTranscriptionService(stub)

	settings := model.DefaultSettings()
	settings.Structure = "banana"

	_, err := svc.Transcribe(context.Background(), "YWJj", "audio/mpeg", settings)
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindValidation, apiErr.Kind)
	assert.Equal(t, 0, stub.CallCount(), "invalid settings must not reach the transcriber")
}

func TestTranscribeErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apierrors.ErrorKind
	}{
		{"missing api key", apperrors.ErrMissingAPIKey, apierrors.KindInternal},
		{"empty audio", apperrors.ErrEmptyAudio, apierrors.KindBadRequest},
		{"missing mime type", apperrors.ErrMissingMimeType, apierrors.KindBadRequest},
		{"service failure", errors.New("transcription failed, please try again"), apierrors.KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTranscriptionService(&testutil.StubTranscriber{Err: tt.err})

			_, err := svc.Transcribe(context.Background(), "YWJj", "audio/mpeg", model.DefaultSettings())
			require.Error(t, err)

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
		})
	}
}

func TestTranscribeUpstreamCarriesClientMessage(t *testing.T) {
	svc := NewTranscriptionService(&testutil.StubTranscriber{
		Err: errors.New("the service is temporarily overloaded"),
	})

	_, err := svc.Transcribe(context.Background(), "YWJj", "audio/mpeg", model.DefaultSettings())
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "the service is temporarily overloaded", apiErr.Message)
}
