package services

import (
	"github.com/samber/lo"

	"xcribe/internal/api/errors"
	"xcribe/internal/api/v1/dto"
	"xcribe/internal/app/model"
	"xcribe/internal/app/repository"
)

// ProfileServiceImpl implements ProfileService over the repository store.
type ProfileServiceImpl struct {
	store *repository.Store
}

// NewProfileService creates a new profile service
func NewProfileService(store *repository.Store) ProfileService {
	return &ProfileServiceImpl{store: store}
}

// List returns all profiles in stored order.
func (s *ProfileServiceImpl) List() []dto.ProfilePayload {
	return lo.Map(s.store.List(), func(p model.TranscriptionProfile, _ int) dto.ProfilePayload {
		return dto.ProfileFromModel(p)
	})
}

// Get returns one profile by id.
func (s *ProfileServiceImpl) Get(id string) (dto.ProfilePayload, error) {
	profile, ok := s.store.Get(id)
	if !ok {
		return dto.ProfilePayload{}, errors.NewNotFoundError("profile")
	}
	return dto.ProfileFromModel(profile), nil
}

// Save creates or replaces a profile, last write wins.
func (s *ProfileServiceImpl) Save(payload dto.ProfilePayload) (dto.ProfilePayload, error) {
	saved, err := s.store.Save(payload.ToModel())
	if err != nil {
		return dto.ProfilePayload{}, errors.NewInternalError("Failed to persist profile")
	}
	return dto.ProfileFromModel(saved), nil
}

// Delete removes a profile; deleting an unknown id is a no-op.
func (s *ProfileServiceImpl) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return errors.NewInternalError("Failed to persist profile collection")
	}
	return nil
}
