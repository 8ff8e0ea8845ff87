// pong is a two-paddle board game for the terminal.
//
// Usage:
//
//	pong play     - Play against the CPU
//	pong sim      - Run a CPU vs CPU match without a terminal
//	pong config   - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Custom config YAML
//	--seed <value>        - RNG seed for reproducible serves
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Log file for interactive play
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - a first-to-three paddle match in your terminal",
	Long: `Pong plays a first-to-three match against a CPU paddle.

Available commands:
  play     - Play interactively
  sim      - Watch two CPU paddles play a match in the log
  config   - Print the effective configuration

Examples:
  pong play
  pong play --difficulty hard
  pong sim --seed 42 --log-level debug
  pong config --config ./my-pong.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play mode (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
