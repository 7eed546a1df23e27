package errors

import "fmt"

// Common error values, grouped by the four kinds the application surfaces.
var (
	// Configuration errors - wrong or missing process configuration,
	// detected before any network call.
	ErrMissingAPIKey = New("GEMINI_API_KEY is not configured")
	ErrInvalidConfig = New("invalid configuration")

	// Validation errors - local, recoverable user input problems.
	ErrNoAudioSelected = New("no audio file selected")
	ErrEmptyAudio      = New("audio data is empty")
	ErrMissingMimeType = New("audio MIME type is required")

	// Transcription errors - the external service call failed.
	ErrTranscriptionFailed = New("transcription failed, please check the audio file or try again later")

	// Unexpected-response - the service answered but produced no usable text.
	// Soft failure: callers substitute a placeholder instead of aborting.
	ErrNoTextGenerated = New("the service returned no text")
)

// Error is a message plus an optional cause, comparable by message via Is.
type Error struct {
	message string
	cause   error
}

// New creates a new error.
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by message so wrapped copies of a sentinel still compare
// equal to it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
