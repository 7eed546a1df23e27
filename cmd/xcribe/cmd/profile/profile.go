package profile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xcribe/internal/app"
	"xcribe/internal/app/model"
	"xcribe/internal/app/repository"
	"xcribe/internal/config"
)

var (
	configPath   string
	profileName  string
	structureTag string
	detailTag    string
	styleTag     string
	sections     []string
)

// Cmd represents the profile command
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage reusable transcription profiles",
	Long: `Manage the persisted transcription profiles: named presets bundling
structure, detail level, output style and custom sections. Rendering mode and
language are never part of a profile.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored profiles",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *repository.Store) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTRUCTURE\tDETAIL\tSTYLE\tSECTIONS")
			for _, p := range store.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.Name, p.Structure, p.DetailLevel, p.OutputStyle, len(p.Sections))
			}
			return w.Flush()
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one profile as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *repository.Store) error {
			p, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("profile not found: %q", args[0])
			}
			out, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new profile",
	Long: `Create a new profile. Custom sections are given as repeated --section
flags in "Title:Instruction" form; their order is preserved and becomes the
heading order of the transcript.`,
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *repository.Store) error {
			p, err := buildProfile()
			if err != nil {
				return err
			}
			saved, err := store.Save(p)
			if err != nil {
				return err
			}
			fmt.Printf("Profile %q saved with id %s\n", saved.Name, saved.ID)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *repository.Store) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Profile %s deleted\n", args[0])
			return nil
		})
	},
}

func init() {
	Cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to an xcribe.yaml config file")

	addCmd.Flags().StringVarP(&profileName, "name", "n", "", "profile name")
	addCmd.Flags().StringVar(&structureTag, "structure", string(model.StructureReport), "transcript structure tag")
	addCmd.Flags().StringVar(&detailTag, "detail", string(model.DetailCleaned), "detail level tag")
	addCmd.Flags().StringVar(&styleTag, "style", string(model.StyleProfessional), "output style tag")
	addCmd.Flags().StringArrayVar(&sections, "section", nil, `custom section as "Title:Instruction", repeatable, order preserved`)
	addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
}

func withStore(fn func(store *repository.Store) error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, closer, err := app.ProvideStore(cfg.Store)
	if err != nil {
		log.Fatalf("failed to open profile store: %v", err)
	}
	defer closer.Close()

	if err := fn(store); err != nil {
		log.Fatalf("profile command failed: %v", err)
	}
}

func buildProfile() (model.TranscriptionProfile, error) {
	var p model.TranscriptionProfile

	structure, err := model.ParseStructureType(structureTag)
	if err != nil {
		return p, err
	}
	detail, err := model.ParseDetailLevel(detailTag)
	if err != nil {
		return p, err
	}
	style, err := model.ParseOutputStyle(styleTag)
	if err != nil {
		return p, err
	}

	p = model.TranscriptionProfile{
		Name:        profileName,
		Structure:   structure,
		DetailLevel: detail,
		OutputStyle: style,
	}

	for i, raw := range sections {
		title, instruction, found := strings.Cut(raw, ":")
		if !found || title == "" {
			return p, fmt.Errorf("invalid --section %q, expected \"Title:Instruction\"", raw)
		}
		p.Sections = append(p.Sections, model.StructureSection{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       strings.TrimSpace(title),
			Instruction: strings.TrimSpace(instruction),
		})
	}

	return p, nil
}
