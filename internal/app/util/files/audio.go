package files

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MIME types for the audio formats the service accepts, keyed by extension.
var audioMimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
}

// DetectAudioMimeType maps a file name to its audio MIME type.
func DetectAudioMimeType(fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	mime, ok := audioMimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported audio format: %q", ext)
	}
	return mime, nil
}

// ReadAudioBase64 reads an audio file and returns its contents as base64
// text plus the detected MIME type.
func ReadAudioBase64(path string) (string, string, error) {
	mime, err := DetectAudioMimeType(path)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read audio file: %w", err)
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("audio file is empty: %s", path)
	}
	return base64.StdEncoding.EncodeToString(data), mime, nil
}

// ExportFileName returns the dated transcript download name for a given day.
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("Xcribe_Transcriptie_%s.txt", day.Format("2006-01-02"))
}

// WriteTranscript writes transcript text into dir under the dated export
// name and returns the full path.
func WriteTranscript(dir, text string, day time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportFileName(day))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
