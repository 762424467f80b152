// fruitcatch is a terminal fruit catcher: tap falling fruit before it
// reaches the ground, avoid the bombs, and climb through five levels.
//
// Usage:
//
//	fruitcatch play             - Play in this terminal
//	fruitcatch serve            - Start SSH server for remote play
//	fruitcatch tiers            - Show the level table
//	fruitcatch replays          - Browse recorded runs
//	fruitcatch replay <id>      - Re-simulate a recorded run
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set replay journal path (default: ~/.fruitcatch/replays.db)
//	--log-file <path>  - Write logs to a file
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitcatch/internal/config"
	"github.com/vovakirdan/fruitcatch/internal/engine"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool

	// Rule flags shared by play, serve and tiers
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitcatch",
	Short: "Fruit Catcher - catch falling fruit in your terminal",
	Long: `Fruit Catcher is a terminal arcade game. Fruit falls from the top of
the screen; click it before it hits the ground. Each catch scores points,
each miss costs a life, and bombs take points away when clicked.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  tiers    - Show the level table
  replays  - Browse recorded runs
  replay   - Re-simulate a recorded run

Examples:
  fruitcatch play
  fruitcatch play --difficulty easy
  fruitcatch serve --ssh :2222
  fruitcatch replay 12`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitcatch/replays.db", "Path to replay journal")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// addRuleFlags registers --config and --difficulty on cmd.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// loadRules resolves the game config and applies the difficulty preset.
func loadRules() (fruit.Rules, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fruit.Rules{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	cfg, err := config.LoadFruit(flagConfig)
	if err != nil {
		return fruit.Rules{}, err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))

	return fruit.NewRules(cfg)
}

// engineConfig builds the controller config from the global flags.
func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// newLogger creates the CLI logger. Interactive play owns the terminal,
// so without --log-file everything is discarded.
func newLogger() (*log.Logger, func(), error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitcatch",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
