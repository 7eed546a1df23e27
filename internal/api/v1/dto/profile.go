package dto

import (
	"xcribe/internal/api/errors"
	"xcribe/internal/app/model"
)

// SectionPayload is a custom section in API requests and responses.
type SectionPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title" binding:"required"`
	Instruction string `json:"instruction"`
}

// ProfilePayload represents a transcription profile in API requests and
// responses. Enum fields carry internal tags, not display labels.
type ProfilePayload struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" binding:"required"`
	Structure   string           `json:"structure" binding:"required"`
	Sections    []SectionPayload `json:"sections,omitempty"`
	OutputStyle string           `json:"output_style" binding:"required"`
	DetailLevel string           `json:"detail_level" binding:"required"`
}

// Validate performs domain-specific validation
func (p *ProfilePayload) Validate() error {
	validationErrors := make(map[string]string)

	if _, err := model.ParseStructureType(p.Structure); err != nil {
		validationErrors["structure"] = err.Error()
	}
	if _, err := model.ParseOutputStyle(p.OutputStyle); err != nil {
		validationErrors["output_style"] = err.Error()
	}
	if _, err := model.ParseDetailLevel(p.DetailLevel); err != nil {
		validationErrors["detail_level"] = err.Error()
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid profile", validationErrors)
	}
	return nil
}

// ToModel converts the payload into a domain profile. Call Validate first.
func (p *ProfilePayload) ToModel() model.TranscriptionProfile {
	sections := make([]model.StructureSection, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections = append(sections, model.StructureSection{
			ID:          s.ID,
			Title:       s.Title,
			Instruction: s.Instruction,
		})
	}
	if len(sections) == 0 {
		sections = nil
	}
	return model.TranscriptionProfile{
		ID:          p.ID,
		Name:        p.Name,
		Structure:   model.StructureType(p.Structure),
		Sections:    sections,
		OutputStyle: model.OutputStyle(p.OutputStyle),
		DetailLevel: model.DetailLevel(p.DetailLevel),
	}
}

// ProfileFromModel converts a domain profile into its API representation.
func ProfileFromModel(p model.TranscriptionProfile) ProfilePayload {
	sections := make([]SectionPayload, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections = append(sections, SectionPayload{
			ID:          s.ID,
			Title:       s.Title,
			Instruction: s.Instruction,
		})
	}
	if len(sections) == 0 {
		sections = nil
	}
	return ProfilePayload{
		ID:          p.ID,
		Name:        p.Name,
		Structure:   string(p.Structure),
		Sections:    sections,
		OutputStyle: string(p.OutputStyle),
		DetailLevel: string(p.DetailLevel),
	}
}
