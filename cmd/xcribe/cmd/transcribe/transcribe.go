package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"xcribe/internal/app"
	"xcribe/internal/app/flow"
	"xcribe/internal/app/logger"
	"xcribe/internal/app/model"
	"xcribe/internal/app/progress"
	"xcribe/internal/app/util/files"
	"xcribe/internal/config"
)

var (
	audioFile     string
	structureTag  string
	detailTag     string
	styleTag      string
	language      string
	modeTag       string
	profileRef    string
	outputPath    string
	configPath    string
	noProgress    bool
)

func init() {
	Cmd.Flags().StringVarP(&audioFile, "file", "f", "", "audio file to transcribe (mp3, wav, m4a, aac, ogg, flac, webm)")
	Cmd.Flags().StringVar(&structureTag, "structure", "", "transcript structure: word_for_word, summary, structured_report, interview, minutes, custom")
	Cmd.Flags().StringVar(&detailTag, "detail", "", "detail level: literal, cleaned, edited")
	Cmd.Flags().StringVar(&styleTag, "style", "", "output style: raw, professional, business, informal")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "target language, passed to the model as-is")
	Cmd.Flags().StringVarP(&modeTag, "mode", "m", "", "rendering mode: fast or quality")
	Cmd.Flags().StringVarP(&profileRef, "profile", "p", "", "apply a stored profile by id or name before the explicit flags")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the transcript to this file instead of stdout")
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an xcribe.yaml config file")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress spinner")

	Cmd.MarkFlagRequired("file")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a local audio file",
	Long: `Transcribe a local audio file using the configured structure, detail level,
output style, target language and rendering mode. A stored profile can be
applied first; explicit flags override the profile's fields.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.Context()); err != nil {
			log.Fatalf("transcription failed: %v", err)
		}
	},
}

func run(ctx context.Context) error {
	zl := logger.MustNew(false)
	defer zl.Sync()

	transcriber, err := app.ProvideTranscriber()
	if err != nil {
		return err
	}

	settings, err := resolveSettings()
	if err != nil {
		return err
	}

	audioBase64, mimeType, err := files.ReadAudioBase64(audioFile)
	if err != nil {
		return err
	}

	controller := flow.NewController(transcriber, zl)
	if err := controller.ConfirmSettings(settings); err != nil {
		return err
	}
	if err := controller.SelectAudio(audioBase64, mimeType); err != nil {
		return err
	}

	spinner := progress.Start(progress.Config{Enabled: !noProgress}, "Transcribing")
	result, err := controller.Transcribe(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
		fmt.Printf("Transcript written to %s\n", outputPath)
		return nil
	}

	fmt.Println(result.Text)
	fmt.Fprintf(os.Stderr, "\nGenerated at %s\n", result.Timestamp.Format(time.RFC3339))
	return nil
}

func resolveSettings() (model.TranscriptionSettings, error) {
	settings := model.DefaultSettings()

	if profileRef != "" {
		applied, err := applyStoredProfile(settings)
		if err != nil {
			return settings, err
		}
		settings = applied
	}

	if structureTag != "" {
		s, err := model.ParseStructureType(structureTag)
		if err != nil {
			return settings, err
		}
		settings.Structure = s
	}
	if detailTag != "" {
		d, err := model.ParseDetailLevel(detailTag)
		if err != nil {
			return settings, err
		}
		settings.DetailLevel = d
	}
	if styleTag != "" {
		o, err := model.ParseOutputStyle(styleTag)
		if err != nil {
			return settings, err
		}
		settings.OutputStyle = o
	}
	if modeTag != "" {
		r, err := model.ParseRenderingMode(modeTag)
		if err != nil {
			return settings, err
		}
		settings.RenderingMode = r
	}
	if language != "" {
		settings.Language = language
	}

	return settings, nil
}

func applyStoredProfile(settings model.TranscriptionSettings) (model.TranscriptionSettings, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return settings, err
	}

	store, closer, err := app.ProvideStore(cfg.Store)
	if err != nil {
		return settings, err
	}
	defer closer.Close()

	if p, ok := store.Get(profileRef); ok {
		return p.Apply(settings), nil
	}
	if p, ok := lo.Find(store.List(), func(p model.TranscriptionProfile) bool {
		return p.Name == profileRef
	}); ok {
		return p.Apply(settings), nil
	}
	return settings, fmt.Errorf("profile not found: %q", profileRef)
}
