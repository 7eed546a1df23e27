// Package flow drives the user-facing session sequence:
// configure -> upload -> process -> result.
package flow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "xcribe/internal/app/errors"
	"xcribe/internal/app/model"
)

// State is the controller's position in the session sequence.
type State string

const (
	StateConfiguring   State = "configuring"
	StateReadyToUpload State = "ready_to_upload"
	StateProcessing    State = "processing"
	StateDone          State = "done"
)

// Transcriber performs the external service round trip.
type Transcriber interface {
	Transcribe(ctx context.Context, audioBase64, mimeType string, settings model.TranscriptionSettings) (string, error)
}

// Controller owns one session. At most one transcription is in flight at a
// time; re-submission while processing is rejected.
type Controller struct {
	mu          sync.Mutex
	state       State
	settings    model.TranscriptionSettings
	audioBase64 string
	mimeType    string
	result      *model.TranscriptionResult
	lastErr     string
	// generation tags the session; Reset bumps it so a call that was in
	// flight when the session was reset cannot install its resolution.
	generation uint64

	transcriber Transcriber
	logger      *zap.Logger
}

// NewController starts a session in the configuring state with default
// settings.
func NewController(transcriber Transcriber, logger *zap.Logger) *Controller {
	return &Controller{
		state:       StateConfiguring,
		settings:    model.DefaultSettings(),
		transcriber: transcriber,
		logger:      logger,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Settings returns the current settings snapshot.
func (c *Controller) Settings() model.TranscriptionSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Result returns the session's transcription result, if any.
func (c *Controller) Result() *model.TranscriptionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// LastError returns the message of the most recent failed transcription.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ApplyProfile copies a profile's fields into the current settings. Allowed
// only while configuring.
func (c *Controller) ApplyProfile(p model.TranscriptionProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfiguring {
		return apperrors.Newf("cannot apply a profile in state %q", c.state)
	}
	c.settings = p.Apply(c.settings)
	return nil
}

// ConfirmSettings fixes the settings snapshot and moves to ready-to-upload.
func (c *Controller) ConfirmSettings(settings model.TranscriptionSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfiguring {
		return apperrors.Newf("cannot confirm settings in state %q", c.state)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	c.settings = settings
	c.state = StateReadyToUpload
	return nil
}

// SelectAudio records the audio to transcribe. Allowed while ready to
// upload; reselecting replaces the previous choice.
func (c *Controller) SelectAudio(audioBase64, mimeType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReadyToUpload {
		return apperrors.Newf("cannot select audio in state %q", c.state)
	}
	if audioBase64 == "" {
		return apperrors.ErrEmptyAudio
	}
	if mimeType == "" {
		return apperrors.ErrMissingMimeType
	}
	c.audioBase64 = audioBase64
	c.mimeType = mimeType
	return nil
}

// Transcribe runs the single round trip. On success the controller moves to
// done carrying the result and a capture timestamp; on failure it falls back
// to ready-to-upload carrying the error message, never leaving a dangling
// processing state.
func (c *Controller) Transcribe(ctx context.Context) (*model.TranscriptionResult, error) {
	c.mu.Lock()
	if c.state == StateProcessing {
		c.mu.Unlock()
		return nil, apperrors.New("a transcription is already in progress")
	}
	if c.state != StateReadyToUpload {
		c.mu.Unlock()
		return nil, apperrors.Newf("cannot transcribe in state %q", c.state)
	}
	if c.audioBase64 == "" {
		c.mu.Unlock()
		return nil, apperrors.ErrNoAudioSelected
	}
	audio, mime, settings := c.audioBase64, c.mimeType, c.settings
	gen := c.generation
	c.state = StateProcessing
	c.lastErr = ""
	c.mu.Unlock()

	c.logger.Info("transcription started",
		zap.String("structure", string(settings.Structure)),
		zap.String("rendering_mode", string(settings.RenderingMode)),
		zap.String("mime_type", mime),
	)

	text, err := c.transcriber.Transcribe(ctx, audio, mime, settings)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		// The session was reset while this call was in flight; its
		// resolution is dropped and the fresh session stays untouched.
		c.logger.Info("stale transcription dropped")
		return nil, apperrors.New("session was reset during transcription")
	}
	if err != nil {
		c.state = StateReadyToUpload
		c.lastErr = err.Error()
		c.logger.Warn("transcription failed", zap.Error(err))
		return nil, err
	}

	c.result = &model.TranscriptionResult{Text: text, Timestamp: time.Now()}
	c.state = StateDone
	c.logger.Info("transcription finished", zap.Int("chars", len(text)))
	return c.result, nil
}

// Reset discards the in-memory result and returns to configuring. The
// settings survive so the user can run again with the same configuration.
// Resetting while a call is in flight abandons that call.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.result = nil
	c.lastErr = ""
	c.audioBase64 = ""
	c.mimeType = ""
	c.state = StateConfiguring
}
