package model

import (
	"fmt"
	"time"
)

// StructureType selects the overall shape of the transcript.
// Values are stable internal tags; display text lives in the label tables.
type StructureType string

const (
	StructureWordForWord StructureType = "word_for_word"
	StructureSummary     StructureType = "summary"
	StructureReport      StructureType = "structured_report"
	StructureInterview   StructureType = "interview"
	StructureMinutes     StructureType = "minutes"
	StructureCustom      StructureType = "custom"
)

// DetailLevel controls how much spoken filler survives into the transcript.
type DetailLevel string

const (
	DetailLiteral DetailLevel = "literal"
	DetailCleaned DetailLevel = "cleaned"
	DetailEdited  DetailLevel = "edited"
)

// OutputStyle sets the tone of the final text.
type OutputStyle string

const (
	StyleRaw          OutputStyle = "raw"
	StyleProfessional OutputStyle = "professional"
	StyleBusiness     OutputStyle = "business"
	StyleInformal     OutputStyle = "informal"
)

// RenderingMode trades latency against quality by selecting the model tier.
type RenderingMode string

const (
	RenderingFast    RenderingMode = "fast"
	RenderingQuality RenderingMode = "quality"
)

// Display labels as shown in the Xcribe UI. Logic must branch on the tags
// above, never on these strings.
var structureLabels = map[StructureType]string{
	StructureWordForWord: "Puur woordelijke tekst",
	StructureSummary:     "Samenvatting",
	StructureReport:      "Gestructureerd verslag (standaard)",
	StructureInterview:   "Interviewvorm (spreker per spreker)",
	StructureMinutes:     "Notulen / meeting notes",
	StructureCustom:      "Custom Modulaire Structuur (zelf samenstellen)",
}

var detailLabels = map[DetailLevel]string{
	DetailLiteral: "Volledig woordelijk (alles letterlijk)",
	DetailCleaned: "Licht opgeschoond (zonder stopwoorden en herhalingen)",
	DetailEdited:  "Sterk geredigeerd (inhoudelijk, professioneel)",
}

var styleLabels = map[OutputStyle]string{
	StyleRaw:          "Ruwe transcriptie",
	StyleProfessional: "Professioneel verslag",
	StyleBusiness:     "Zakelijk / formeel",
	StyleInformal:     "Informeel / creatief",
}

var renderingLabels = map[RenderingMode]string{
	RenderingFast:    "Snelle rendering (Prioriteit: snelheid)",
	RenderingQuality: "Kwaliteitsvolle rendering (Prioriteit: nauwkeurigheid)",
}

func (s StructureType) Valid() bool { _, ok := structureLabels[s]; return ok }
func (d DetailLevel) Valid() bool   { _, ok := detailLabels[d]; return ok }
func (o OutputStyle) Valid() bool   { _, ok := styleLabels[o]; return ok }
func (r RenderingMode) Valid() bool { _, ok := renderingLabels[r]; return ok }

func (s StructureType) Label() string { return structureLabels[s] }
func (d DetailLevel) Label() string   { return detailLabels[d] }
func (o OutputStyle) Label() string   { return styleLabels[o] }
func (r RenderingMode) Label() string { return renderingLabels[r] }

// ParseStructureType converts an external tag into a StructureType.
func ParseStructureType(tag string) (StructureType, error) {
	s := StructureType(tag)
	if !s.Valid() {
		return "", fmt.Errorf("unknown structure type: %q", tag)
	}
	return s, nil
}

// ParseDetailLevel converts an external tag into a DetailLevel.
func ParseDetailLevel(tag string) (DetailLevel, error) {
	d := DetailLevel(tag)
	if !d.Valid() {
		return "", fmt.Errorf("unknown detail level: %q", tag)
	}
	return d, nil
}

// ParseOutputStyle converts an external tag into an OutputStyle.
func ParseOutputStyle(tag string) (OutputStyle, error) {
	o := OutputStyle(tag)
	if !o.Valid() {
		return "", fmt.Errorf("unknown output style: %q", tag)
	}
	return o, nil
}

// ParseRenderingMode converts an external tag into a RenderingMode.
func ParseRenderingMode(tag string) (RenderingMode, error) {
	r := RenderingMode(tag)
	if !r.Valid() {
		return "", fmt.Errorf("unknown rendering mode: %q", tag)
	}
	return r, nil
}

// StructureSection is a user-defined heading plus the instruction for filling
// it. Only meaningful when the structure type is custom; slice order becomes
// heading order in the output.
type StructureSection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Instruction string `json:"instruction"`
}

// TranscriptionSettings is the immutable snapshot of the user's configuration
// handed to the core at request time.
type TranscriptionSettings struct {
	Structure     StructureType      `json:"structure"`
	Sections      []StructureSection `json:"sections,omitempty"`
	DetailLevel   DetailLevel        `json:"detail_level"`
	OutputStyle   OutputStyle        `json:"output_style"`
	Language      string             `json:"language"`
	RenderingMode RenderingMode      `json:"rendering_mode"`
}

// DefaultSettings mirrors the configuration the UI starts with.
func DefaultSettings() TranscriptionSettings {
	return TranscriptionSettings{
		Structure:     StructureWordForWord,
		DetailLevel:   DetailLiteral,
		OutputStyle:   StyleRaw,
		Language:      "Automatisch detecteren",
		RenderingMode: RenderingFast,
	}
}

// Validate checks that all enum fields carry known tags.
func (s TranscriptionSettings) Validate() error {
	if !s.Structure.Valid() {
		return fmt.Errorf("invalid structure type: %q", s.Structure)
	}
	if !s.DetailLevel.Valid() {
		return fmt.Errorf("invalid detail level: %q", s.DetailLevel)
	}
	if !s.OutputStyle.Valid() {
		return fmt.Errorf("invalid output style: %q", s.OutputStyle)
	}
	if !s.RenderingMode.Valid() {
		return fmt.Errorf("invalid rendering mode: %q", s.RenderingMode)
	}
	return nil
}

// TranscriptionProfile is a named, persisted subset of settings. Rendering
// mode and language are deliberately not part of a profile.
type TranscriptionProfile struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Structure   StructureType      `json:"structure"`
	Sections    []StructureSection `json:"sections,omitempty"`
	OutputStyle OutputStyle        `json:"output_style"`
	DetailLevel DetailLevel        `json:"detail_level"`
}

// Apply copies the profile's fields onto a settings snapshot, leaving
// language and rendering mode as they were.
func (p TranscriptionProfile) Apply(s TranscriptionSettings) TranscriptionSettings {
	s.Structure = p.Structure
	s.OutputStyle = p.OutputStyle
	s.DetailLevel = p.DetailLevel
	s.Sections = append([]StructureSection(nil), p.Sections...)
	return s
}

// TranscriptionResult holds the transcript for the current session only; it
// is never persisted.
type TranscriptionResult struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
