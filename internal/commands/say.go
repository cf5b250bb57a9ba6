package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/voicechat/internal/api"
	"github.com/diogo/voicechat/internal/audio"
	"github.com/diogo/voicechat/internal/config"
)

var (
	sayNoPlayFlag   bool
	sayDurationFlag int
)

var sayCmd = &cobra.Command{
	Use:   "say [file.wav]",
	Short: "Send one voice turn from the microphone or a WAV file",
	Long: `Send a single voice turn to the backend.

With a file argument the WAV file is sent as if it had just been
recorded. Without one, voicechat records from the default microphone for
--duration seconds and sends that.

Prints the transcript and the reply. The spoken reply plays through the
default output device unless --no-play is given or autoplay is disabled
in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			wav, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}
			return runSay(wav)
		}

		wav, err := recordClip(time.Duration(sayDurationFlag) * time.Second)
		if err != nil {
			return err
		}
		return runSay(wav)
	},
}

func init() {
	sayCmd.Flags().BoolVar(&sayNoPlayFlag, "no-play", false, "Do not play the reply audio")
	sayCmd.Flags().IntVarP(&sayDurationFlag, "duration", "d", 5, "Recording length in seconds")
}

// recordClip captures from the default microphone for the given duration
// and returns the encoded WAV payload.
func recordClip(duration time.Duration) ([]byte, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	cfg, _ := config.LoadConfig()
	recorder, err := audio.NewRecorder(cfg.SampleRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to open microphone"))
		return nil, fmt.Errorf("failed to open microphone: %w", err)
	}
	defer recorder.Close()

	var samples []float32
	if err := recorder.Start(func(chunk []float32) {
		samples = append(samples, chunk...)
	}); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to start recording"))
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}

	fmt.Fprintf(os.Stderr, "● Recording for %s...\n", duration)
	time.Sleep(duration)

	if err := recorder.Stop(); err != nil {
		return nil, fmt.Errorf("failed to stop recording: %w", err)
	}

	rate := recorder.SampleRate()
	return audio.EncodeWAV(audio.PadToMinimum(samples, rate), rate, audio.Channels)
}

func runSay(wav []byte) error {
	cfg, _ := config.LoadConfig()

	client, err := api.NewClient(
		api.WithEndpoint(getEndpoint(cfg)),
		api.WithTimeout(time.Duration(getTimeoutSeconds(cfg))*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	rawOutput := !isStdoutTTY()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Sending recording")
		spin.start()
	}

	reply, err := client.SendAudio(context.Background(), wav)
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Request failed"))
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	if rawOutput {
		fmt.Print(reply.Reply)
		return nil
	}

	fmt.Fprintln(os.Stderr)
	printReply(reply.Transcript, reply.Reply)

	if reply.HasAudio() && cfg.Autoplay && !sayNoPlayFlag {
		player := audio.NewPlayer(audio.NewOutputEngine())
		defer player.Release()
		if err := player.Play(reply.Audio); err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Playback failed"))
			return nil
		}
		player.Wait()
	}

	return nil
}
