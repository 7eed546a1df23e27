package services

import (
	"context"
	stderrors "errors"
	"time"

	apierrors "xcribe/internal/api/errors"
	"xcribe/internal/api/v1/dto"
	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/flow"
	"xcribe/internal/app/model"
)

// TranscriptionServiceImpl implements TranscriptionService over the
// transcription client.
type TranscriptionServiceImpl struct {
	transcriber flow.Transcriber
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(transcriber flow.Transcriber) TranscriptionService {
	return &TranscriptionServiceImpl{transcriber: transcriber}
}

// Transcribe performs the single round trip and stamps the result. Errors
// are mapped onto the API taxonomy: missing credentials and local input
// problems stay 4xx/5xx-internal, service failures become upstream errors
// carrying the client's user-facing message.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, audioBase64, mimeType string, settings model.TranscriptionSettings) (*dto.TranscriptionResponse, error) {
	if err := settings.Validate(); err != nil {
		return nil, apierrors.NewValidationError(err.Error(), nil)
	}

	text, err := s.transcriber.Transcribe(ctx, audioBase64, mimeType, settings)
	if err != nil {
		switch {
		case stderrors.Is(err, apperrors.ErrMissingAPIKey):
			return nil, apierrors.NewInternalError("Transcription service is not configured")
		case stderrors.Is(err, apperrors.ErrEmptyAudio),
			stderrors.Is(err, apperrors.ErrMissingMimeType):
			return nil, apierrors.NewBadRequestError(err.Error())
		default:
			return nil, apierrors.NewUpstreamError(err.Error())
		}
	}

	return &dto.TranscriptionResponse{
		Text:      text,
		Timestamp: time.Now(),
	}, nil
}
