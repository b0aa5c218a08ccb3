package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/votxt/internal/audio"
	"github.com/nguyentantai21042004/votxt/internal/recorder"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone in an interactive console",
	Long: `Record from the microphone, then transcribe and summarize on save.

Keys (followed by Enter):
  r  start recording
  p  pause
  c  resume
  s  save, transcribe and summarize
  q  quit`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	rc := a.cfg.Recording

	mic, err := audio.NewMicrophone(audio.MicrophoneConfig{
		SampleRate: rc.SampleRate,
		DeviceName: rc.Device,
	})
	if err != nil {
		return err
	}
	defer mic.Close()

	rec := recorder.NewRecorder(mic, audio.NewBuffer(rc.SampleRate), recorder.Options{
		Block: rc.BlockDuration(),
		Max:   rc.MaxDuration(),
	})

	handler := func(ctx context.Context, path string) error {
		fmt.Printf("\nSaved recording: %s\n", path)
		res, err := a.proc.Process(ctx, path)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	}

	ctrl := recorder.New(rec, a.cfg.Paths.Temp, handler, a.log)
	return newConsole(ctrl).run(ctx)
}

// console maps typed keys onto a Controller and shows the elapsed time.
type console struct {
	ctrl    recorder.Controller
	loopErr chan error
}

func newConsole(ctrl recorder.Controller) *console {
	return &console{ctrl: ctrl, loopErr: make(chan error, 1)}
}

func (c *console) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
		close(lines)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Println("Keys: r=record p=pause c=resume s=save q=quit")

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-c.loopErr:
			fmt.Printf("\nRecording paused: %v\n", err)

		case <-ticker.C:
			if c.ctrl.State() == recorder.StateRecording {
				fmt.Printf("\rRecording: %ds ", int(c.ctrl.Elapsed().Seconds()))
			}

		case line, ok := <-lines:
			if !ok {
				return c.quit(ctx)
			}
			if done, err := c.handle(ctx, line); done || err != nil {
				return err
			}
		}
	}
}

// handle runs one key. It reports true when the console should exit.
func (c *console) handle(ctx context.Context, key string) (bool, error) {
	switch key {
	case "r", "c":
		before := c.ctrl.State()
		if before == recorder.StateRecording {
			return false, nil
		}
		if key == "c" && before != recorder.StatePaused {
			fmt.Println("Nothing to resume")
			return false, nil
		}
		go func() {
			if err := c.ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				select {
				case c.loopErr <- err:
				default:
				}
			}
		}()
		if before == recorder.StatePaused {
			fmt.Println("Resumed recording")
		} else {
			fmt.Println("Recording... speak now")
		}

	case "p":
		if c.ctrl.State() == recorder.StateRecording {
			c.ctrl.Pause(ctx)
			fmt.Printf("\nRecording paused at %ds\n", int(c.ctrl.Elapsed().Seconds()))
		}

	case "s":
		path, err := c.ctrl.Save(ctx)
		if err != nil {
			printError(err)
			return false, nil
		}
		if path == "" {
			fmt.Println("Nothing to save")
		}

	case "q":
		return true, c.quit(ctx)

	case "":
	default:
		fmt.Printf("Unknown key %q\n", key)
	}
	return false, nil
}

func (c *console) quit(ctx context.Context) error {
	c.ctrl.Pause(ctx)
	if c.ctrl.Samples() > 0 {
		fmt.Println("Unsaved recording discarded")
	}
	return nil
}
