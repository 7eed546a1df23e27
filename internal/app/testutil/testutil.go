// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"context"
	"sync"

	"xcribe/internal/app/model"
)

// MemoryKV is an in-memory repository.KV for tests.
type MemoryKV struct {
	mu      sync.Mutex
	values  map[string]string
	SaveErr error
	// SaveCount tracks mutations so tests can assert no-op deletes.
	SaveCount int
}

// NewMemoryKV creates an empty in-memory kv store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

// Load returns the value for key and whether it exists.
func (m *MemoryKV) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save writes the value for key.
func (m *MemoryKV) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCount++
	m.values[key] = value
	return nil
}

// Raw returns the stored value for key, for round-trip assertions.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// TranscriptionCall records one call into the stub transcriber.
type TranscriptionCall struct {
	AudioBase64 string
	MimeType    string
	Settings    model.TranscriptionSettings
}

// StubTranscriber is a configurable flow.Transcriber double.
type StubTranscriber struct {
	mu       sync.Mutex
	Response string
	Err      error
	// Block, when set, is closed by the test to release an in-flight call.
	Block chan struct{}
	Calls []TranscriptionCall
}

// Transcribe records the call and returns the configured response or error.
func (s *StubTranscriber) Transcribe(ctx context.Context, audioBase64, mimeType string, settings model.TranscriptionSettings) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, TranscriptionCall{
		AudioBase64: audioBase64,
		MimeType:    mimeType,
		Settings:    settings,
	})
	block := s.Block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

// CallCount returns how many calls the stub has seen.
func (s *StubTranscriber) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// CustomSettings returns a settings fixture with two ordered sections.
func CustomSettings() model.TranscriptionSettings {
	settings := model.DefaultSettings()
	settings.Structure = model.StructureCustom
	settings.Sections = []model.StructureSection{
		{ID: "1", Title: "Partijen", Instruction: "Wie zijn de aanwezigen en wat is hun rol?"},
		{ID: "2", Title: "Feiten", Instruction: "Wat zijn de onbetwiste feiten die zijn besproken?"},
	}
	return settings
}
