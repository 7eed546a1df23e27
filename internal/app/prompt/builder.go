// Package prompt renders a TranscriptionSettings value into the instruction
// text sent to the model. Rendering is a pure function: identical settings
// always produce byte-identical output.
package prompt

import (
	"fmt"
	"strings"

	"xcribe/internal/app/model"
)

// SystemInstruction is the fixed persona and global output rules sent with
// every transcription request, separate from the per-request prompt.
const SystemInstruction = `You are Xcribe, a professional AI transcriber powered by OPTRIX.
You turn audio recordings into accurate, readable and purpose-built transcripts.

Transcription rules:
- Never invent information that is not present in the audio.
- Preserve the original meaning and context.
- Only correct grammar when the chosen structure allows it.
- Use clear headings, paragraphs and bullet lists for structured output.
- Mark unclear audio as [inaudible].

When the user supplies custom sections, you MUST use them as headings,
exactly in the order given.

Deliver the transcript in the requested format only; add no explanations or
meta commentary.`

// Clauses for the non-custom structure types.
var structureClauses = map[model.StructureType]string{
	model.StructureWordForWord: "Render a fully verbatim transcript, exactly as spoken.",
	model.StructureSummary:     "Produce a concise summary of the key points.",
	model.StructureReport:      "Produce a structured report with clear headings and paragraphs.",
	model.StructureInterview:   `Transcribe in interview form, labelling turns as "Speaker 1:", "Speaker 2:", and so on.`,
	model.StructureMinutes:     "Produce professional meeting minutes covering agenda, decisions and action items.",
}

var detailClauses = map[model.DetailLevel]string{
	model.DetailLiteral: "Keep every repetition, filler word and hesitation.",
	model.DetailCleaned: "Remove repetitions and filler words, but keep the full meaning.",
	model.DetailEdited:  "Rewrite the content into polished, professional prose.",
}

var styleClauses = map[model.OutputStyle]string{
	model.StyleRaw:          "Render the spoken text directly, without adjusting the tone.",
	model.StyleProfessional: "Use a professional, publication-ready tone.",
	model.StyleBusiness:     "Use a formal business register.",
	model.StyleInformal:     "Use an informal, accessible style.",
}

// emptySectionsFallback is emitted when the structure is custom but no
// sections were supplied, so the builder never produces a structure-less
// prompt for the custom branch.
const emptySectionsFallback = "Structure the transcript into clearly titled sections that fit the content."

// Build renders the instruction prompt for one transcription request. The
// language is interpolated verbatim; the clause order is fixed: opening,
// structure, detail level, output style.
func Build(settings model.TranscriptionSettings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcribe the following audio into text in language: %s.", settings.Language)
	b.WriteString("\n\n")

	if settings.Structure == model.StructureCustom {
		writeSections(&b, settings.Sections)
	} else {
		b.WriteString(structureClauses[settings.Structure])
	}

	b.WriteString("\n\n")
	b.WriteString(detailClauses[settings.DetailLevel])
	b.WriteString("\n\n")
	b.WriteString(styleClauses[settings.OutputStyle])

	return b.String()
}

func writeSections(b *strings.Builder, sections []model.StructureSection) {
	if len(sections) == 0 {
		b.WriteString(emptySectionsFallback)
		return
	}
	b.WriteString("Structure the transcript into the following sections, using each title as a heading, in this order:\n")
	for _, s := range sections {
		fmt.Fprintf(b, "\n## %s\nInstruction for this section: %s\n", s.Title, s.Instruction)
	}
}
