package export

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"xcribe/internal/app/util/files"
)

var (
	text      string
	outputDir string
)

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "transcript text to export; reads stdin when omitted")
	Cmd.Flags().StringVarP(&outputDir, "dir", "d", ".", "directory to write the export into")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Write a transcript to a dated text file",
	Long:  `Write transcript text to Xcribe_Transcriptie_<date>.txt, matching the download the web front end offers.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := text
		if content == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("failed to read stdin: %v", err)
			}
			content = string(data)
		}
		if content == "" {
			log.Fatal("nothing to export: pass --text or pipe the transcript to stdin")
		}

		path, err := files.WriteTranscript(outputDir, content, time.Now())
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Printf("Transcript written to %s\n", path)
	},
}
