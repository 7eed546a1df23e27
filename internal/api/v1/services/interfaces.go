package services

import (
	"context"

	"xcribe/internal/api/v1/dto"
	"xcribe/internal/app/model"
)

// ProfileService exposes CRUD over the persisted profile collection.
type ProfileService interface {
	List() []dto.ProfilePayload
	Get(id string) (dto.ProfilePayload, error)
	Save(payload dto.ProfilePayload) (dto.ProfilePayload, error)
	Delete(id string) error
}

// TranscriptionService performs one transcription round trip.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audioBase64, mimeType string, settings model.TranscriptionSettings) (*dto.TranscriptionResponse, error)
}
