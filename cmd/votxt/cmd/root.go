package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	modelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "votxt",
	Short: "Voice to text with summarization",
	Long: `votxt records speech from the microphone or takes an uploaded audio
file, transcribes it with Whisper and summarizes transcripts of 90 words
or more.

Commands:
  record      - interactive recording console
  transcribe  - transcribe and summarize one audio file
  watch       - process audio files dropped into the inbox
  devices     - list audio input devices`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "whisper model size (tiny, base, small, medium, large)")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
