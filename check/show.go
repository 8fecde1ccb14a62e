package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/zeebo/reels"
)

var flagJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Play one round and print it",
	Long: `Play one round of the game and print the window and every win.

Examples:
  check show
  check show --seed 42 --json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the round as JSON")
}

// shownRound is the printed form of a round.
type shownRound struct {
	ID     string     `json:"id"`
	Seed   uint64     `json:"seed"`
	Stops  []int      `json:"stops"`
	Window [][]string `json:"window"`
	Wins   []shownWin `json:"wins"`
	Total  int64      `json:"total"`
}

type shownWin struct {
	Name  string   `json:"name"`
	Side  string   `json:"side"`
	Hits  int      `json:"hits"`
	Pay   int64    `json:"pay"`
	Cells []string `json:"cells"`
}

func runShow(cmd *cobra.Command, args []string) error {
	_, game, err := load()
	if err != nil {
		return err
	}

	s := seed()
	round, err := game.Play(reels.NewPCG(s))
	if err != nil {
		return err
	}

	out := shownRound{
		ID:     uuid.New().String(),
		Seed:   s,
		Stops:  round.Window.Stops(),
		Window: round.Window.Names(),
		Total:  round.Total,
	}
	for _, r := range round.Results {
		w := shownWin{Name: r.Name, Side: r.Side.String(), Hits: r.HitCount, Pay: r.Pay}
		for _, c := range r.Cells {
			w.Cells = append(w.Cells, c.String())
		}
		out.Wins = append(out.Wins, w)
	}

	if flagJSON {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
		if err != nil {
			return errs.Wrap(err)
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return errs.Wrap(err)
	}

	logger.Info("round", "id", out.ID, "seed", out.Seed, "stops", out.Stops)
	printWindow(out.Window)
	for _, w := range out.Wins {
		fmt.Printf("%-8s %-5s %d hits pays %d at %s\n",
			w.Name, w.Side, w.Hits, w.Pay, strings.Join(w.Cells, " "))
	}
	fmt.Printf("total: %d\n", out.Total)
	return nil
}

// printWindow prints the populations as columns.
func printWindow(cols [][]string) {
	rows := 0
	for _, col := range cols {
		if len(col) > rows {
			rows = len(col)
		}
	}
	for r := 0; r < rows; r++ {
		for _, col := range cols {
			name := ""
			if r < len(col) {
				name = col[r]
			}
			fmt.Printf("%-4s", name)
		}
		fmt.Println()
	}
}
