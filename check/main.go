// check plays rounds of a game description and reports what they pay.
//
// Usage:
//
//	check sim    - play many rounds and print the return to player
//	check show   - play one round and print the window and its wins
package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"

	"github.com/zeebo/reels"
	"github.com/zeebo/reels/config"
)

var (
	flagConfig string
	flagSeed   uint64
	flagMon    string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "check",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("failed", "error", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "check",
	Short:         "Play rounds of a game description",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagMon != "" {
			go func() {
				if err := http.ListenAndServe(flagMon, monhandler.Handler{}); err != nil {
					logger.Warn("monitoring handler stopped", "error", err)
				}
			}()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game description (default: built in game)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagMon, "mon", "", "Address to serve timing stats on")

	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(showCmd)
}

// load reads and compiles the configured game.
func load() (*config.Game, *reels.Game, error) {
	return config.LoadGame(flagConfig)
}

func seed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return pcg.Uint64()
}

func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}
