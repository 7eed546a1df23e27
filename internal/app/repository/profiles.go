// Package repository persists named transcription profiles. The whole
// collection is serialized as one JSON document under a fixed namespace key
// in a key-value backend, written on every mutation. Exactly one session
// owns the store, so there is no concurrent-writer protection beyond a
// process-local mutex.
package repository

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/model"
)

// StorageKey is the namespace key the profile collection lives under.
const StorageKey = "xcribe_profiles_v2"

// KV is the injected persistence backend: one string value per key.
type KV interface {
	// Load returns the value for key and whether it exists.
	Load(key string) (string, bool, error)
	// Save writes the value for key, replacing any previous value.
	Save(key, value string) error
}

// DefaultProfiles returns the preset collection installed on first run.
func DefaultProfiles() []model.TranscriptionProfile {
	return []model.TranscriptionProfile{
		{
			ID:          "def-1",
			Name:        "Standaard Verslag",
			Structure:   model.StructureReport,
			OutputStyle: model.StyleProfessional,
			DetailLevel: model.DetailCleaned,
		},
		{
			ID:          "def-2",
			Name:        "Juridisch Protocol",
			Structure:   model.StructureCustom,
			OutputStyle: model.StyleBusiness,
			DetailLevel: model.DetailLiteral,
			Sections: []model.StructureSection{
				{ID: "1", Title: "Partijen", Instruction: "Wie zijn de aanwezigen en wat is hun rol?"},
				{ID: "2", Title: "Feiten", Instruction: "Wat zijn de onbetwiste feiten die zijn besproken?"},
				{ID: "3", Title: "Besluiten", Instruction: "Welke juridische bindende afspraken zijn gemaakt?"},
			},
		},
	}
}

// Store is the single-writer CRUD surface over the persisted collection.
// It reads the backend once at construction and keeps the collection in
// memory, persisting the whole collection on every mutation.
type Store struct {
	mu       sync.Mutex
	kv       KV
	profiles []model.TranscriptionProfile
}

// NewStore loads the persisted collection, installing the default profiles
// when nothing has been persisted yet.
func NewStore(kv KV) (*Store, error) {
	raw, ok, err := kv.Load(StorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load profile collection")
	}

	s := &Store{kv: kv}
	if !ok {
		s.profiles = DefaultProfiles()
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := json.Unmarshal([]byte(raw), &s.profiles); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode profile collection")
	}
	return s, nil
}

// List returns a copy of all profiles in stored order.
func (s *Store) List() []model.TranscriptionProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TranscriptionProfile(nil), s.profiles...)
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (model.TranscriptionProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.profiles, func(p model.TranscriptionProfile) bool {
		return p.ID == id
	})
}

// Save creates or replaces a profile. A profile without an id gets a
// generated one. Last write wins; the updated profile is returned.
func (s *Store) Save(profile model.TranscriptionProfile) (model.TranscriptionProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	_, idx, found := lo.FindIndexOf(s.profiles, func(p model.TranscriptionProfile) bool {
		return p.ID == profile.ID
	})
	if found {
		s.profiles[idx] = profile
	} else {
		s.profiles = append(s.profiles, profile)
	}

	if err := s.persist(); err != nil {
		return model.TranscriptionProfile{}, err
	}
	return profile, nil
}

// Delete removes the profile with the given id. Deleting an unknown id is a
// no-op and does not rewrite the collection.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := lo.Filter(s.profiles, func(p model.TranscriptionProfile, _ int) bool {
		return p.ID != id
	})
	if len(remaining) == len(s.profiles) {
		return nil
	}
	s.profiles = remaining
	return s.persist()
}

func (s *Store) persist() error {
	raw, err := json.Marshal(s.profiles)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode profile collection")
	}
	if err := s.kv.Save(StorageKey, string(raw)); err != nil {
		return apperrors.Wrap(err, "failed to save profile collection")
	}
	return nil
}
