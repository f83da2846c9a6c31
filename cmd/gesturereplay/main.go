// Command gesturereplay replays recorded contact scripts through the
// gesture recognizer and logs every classified gesture. Use it to tune
// thresholds against real traces without a device.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gesture"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "gesturereplay",
	Short: "Replay contact scripts through the gesture recognizer",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
		if !jsonOutput {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay a YAML or JSON script and log the gestures it produces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		events, err := replayFile(args[0], cfg, log.Logger)
		if err != nil {
			return err
		}
		log.Info().Int("gestures", len(events)).Str("script", args[0]).Msg("Replay complete")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective recognizer configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "recognizer config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log recognizer transitions and dropped input")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "log as JSON instead of console text")
	rootCmd.AddCommand(runCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (gesture.Config, error) {
	if configPath == "" {
		return gesture.DefaultConfig(), nil
	}
	return gesture.LoadConfig(configPath)
}

// replayFile runs the script at path through a fresh recognizer and returns
// the gestures in emission order. Each gesture is also logged to logger.
func replayFile(path string, cfg gesture.Config, logger zerolog.Logger) ([]gesture.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := gesture.LoadScript(data)
	if err != nil {
		return nil, err
	}
	return replay(script, cfg, logger), nil
}

func replay(script *gesture.Script, cfg gesture.Config, logger zerolog.Logger) []gesture.Event {
	sched := gesture.NewManualScheduler()
	rec := gesture.NewRecognizer(cfg, sched)
	rec.SetLogger(logger)
	rec.SetHaptics(gesture.HapticsFunc(func(i gesture.Intensity) {
		logger.Debug().Stringer("intensity", i).Msg("Haptic pulse")
	}))

	var events []gesture.Event
	rec.OnGesture(func(ev gesture.Event) {
		events = append(events, ev)
		logger.Info().
			Dur("at", ev.Time).
			Stringer("kind", ev.Kind).
			Stringer("phase", ev.Phase).
			Float64("x", ev.Position.X).
			Float64("y", ev.Position.Y).
			Dur("duration", ev.Duration).
			Msg("Gesture")
	})

	script.Run(rec, sched)
	// Let any timer armed by a trailing start fire.
	sched.Advance(script.Duration() + cfg.LongPressDelay)
	return events
}

func writeConfig(w io.Writer, cfg gesture.Config) error {
	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
