package dto

import (
	"encoding/json"
	"time"

	"xcribe/internal/api/errors"
	"xcribe/internal/app/model"
)

// TranscriptionForm carries the settings fields of the multipart upload. The
// audio file itself travels as the "audio" form file.
type TranscriptionForm struct {
	Structure     string `form:"structure"`
	DetailLevel   string `form:"detail_level"`
	OutputStyle   string `form:"output_style"`
	Language      string `form:"language"`
	RenderingMode string `form:"rendering_mode"`
	// Sections is a JSON array of SectionPayload; only read when the
	// structure is custom.
	Sections string `form:"sections"`
	// ProfileID applies a stored profile before the explicit fields.
	ProfileID string `form:"profile_id"`
}

// ToSettings resolves the form into a settings snapshot, starting from the
// defaults so omitted fields keep their configured values.
func (f *TranscriptionForm) ToSettings(base model.TranscriptionSettings) (model.TranscriptionSettings, error) {
	settings := base
	validationErrors := make(map[string]string)

	if f.Structure != "" {
		s, err := model.ParseStructureType(f.Structure)
		if err != nil {
			validationErrors["structure"] = err.Error()
		} else {
			settings.Structure = s
		}
	}
	if f.DetailLevel != "" {
		d, err := model.ParseDetailLevel(f.DetailLevel)
		if err != nil {
			validationErrors["detail_level"] = err.Error()
		} else {
			settings.DetailLevel = d
		}
	}
	if f.OutputStyle != "" {
		o, err := model.ParseOutputStyle(f.OutputStyle)
		if err != nil {
			validationErrors["output_style"] = err.Error()
		} else {
			settings.OutputStyle = o
		}
	}
	if f.RenderingMode != "" {
		r, err := model.ParseRenderingMode(f.RenderingMode)
		if err != nil {
			validationErrors["rendering_mode"] = err.Error()
		} else {
			settings.RenderingMode = r
		}
	}
	if f.Language != "" {
		settings.Language = f.Language
	}
	if f.Sections != "" {
		var payload []SectionPayload
		if err := json.Unmarshal([]byte(f.Sections), &payload); err != nil {
			validationErrors["sections"] = "must be a JSON array of sections"
		} else {
			sections := make([]model.StructureSection, 0, len(payload))
			for _, s := range payload {
				sections = append(sections, model.StructureSection{
					ID:          s.ID,
					Title:       s.Title,
					Instruction: s.Instruction,
				})
			}
			settings.Sections = sections
		}
	}

	if len(validationErrors) > 0 {
		return settings, errors.NewValidationError("Invalid transcription settings", validationErrors)
	}
	return settings, nil
}

// TranscriptionResponse is the transcript returned for an upload.
type TranscriptionResponse struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportRequest carries transcript text to be returned as a file download.
type ExportRequest struct {
	Text string `json:"text" binding:"required"`
}
