package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the level table",
	Long: `Shows the difficulty levels and fruit values of the active
configuration, after --config and --difficulty are applied.

Examples:
  fruitcatch tiers
  fruitcatch tiers --config ./my-fruit.yaml`,
	Args: cobra.NoArgs,
	Run:  runTiers,
}

func init() {
	addRuleFlags(tiersCmd)
}

func runTiers(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Lives: %d\n", rules.Lives)
	fmt.Println()

	// Print header
	fmt.Printf("  %-5s  %-8s  %-10s  %-6s  %-7s  %s\n", "Level", "Name", "Next at", "Speed", "Spawn", "Bombs")
	fmt.Printf("  %-5s  %-8s  %-10s  %-6s  %-7s  %s\n", "-----", "----", "-------", "-----", "-----", "-----")

	for _, t := range rules.Tiers {
		next := fmt.Sprintf("%d", t.RequiredScore)
		if t.Number == len(rules.Tiers) {
			next = fmt.Sprintf("%d (win)", t.RequiredScore)
		}
		fmt.Printf("  %-5d  %-8s  %-10s  %-6.1f  %-7s  %.0f%%\n",
			t.Number, t.Name, next, t.FruitSpeed, t.SpawnInterval, t.BombChance*100)
	}

	fmt.Println()
	fmt.Println("Points:")
	for _, k := range fruit.Kinds() {
		fmt.Printf("  %-11s %+d\n", k, rules.Points(k))
	}
}
