package cmd

import (
	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe and summarize an audio file (.wav, .mp3, .m4a)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	res, err := a.proc.Process(ctx, args[0])
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}
