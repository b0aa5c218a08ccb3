package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/votxt/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := audio.ListInputDevices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No input devices found")
			return nil
		}

		for _, d := range devices {
			marker := " "
			if d.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %s (%d ch, %.0f Hz)\n", marker, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
