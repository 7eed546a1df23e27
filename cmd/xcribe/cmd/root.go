package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"xcribe/cmd/xcribe/cmd/export"
	"xcribe/cmd/xcribe/cmd/profile"
	"xcribe/cmd/xcribe/cmd/serve"
	"xcribe/cmd/xcribe/cmd/transcribe"
	"xcribe/cmd/xcribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xcribe",
	Short: "Turn audio recordings into configurable, profile-driven transcripts",
	Long: `Xcribe converts audio files into transcripts shaped by your configuration:
structure (verbatim, summary, report, interview, minutes or custom sections),
detail level, output style and target language.

- transcribe a local audio file from the command line
- manage reusable transcription profiles
- serve the HTTP API used by the web front end`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(profile.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
