package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruitcatch/internal/engine"
	"github.com/vovakirdan/fruitcatch/internal/platform/tui"
	"github.com/vovakirdan/fruitcatch/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game of Fruit Catcher in the current terminal.

Controls:
  Mouse click  - Catch the fruit under the cursor
  Enter/Space  - Start
  R            - Restart (after game over or victory)
  M/Esc        - Back to menu
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 lives
  normal - 3 lives
  hard   - 2 lives

Every finished run is recorded in the replay journal unless
--no-record is given.

Examples:
  fruitcatch play
  fruitcatch play --difficulty hard
  fruitcatch play --seed 42 --no-record
  fruitcatch play --config ./my-fruit.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addRuleFlags(playCmd)
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record finished runs")
}

func runPlay(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	controller := engine.NewController(rules, engineConfig())
	controller.SetLogger(logger)

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
			logger.Warn("recording disabled", "error", err)
			// Continue without recording - game still works
			store = nil
		} else {
			controller.SetReplaySaver(store)
		}
	}

	logger.Info("starting game", "fps", flagFPS, "seed", flagSeed, "lives", rules.Lives, "record", store != nil)
	runErr := tui.Run(controller, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
