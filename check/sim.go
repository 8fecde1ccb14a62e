package main

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/zeebo/reels"
)

var (
	flagRounds  int
	flagWorkers int
	flagStats   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play many rounds and report the return to player",
	Long: `Play rounds of the game against independent generators, one per
worker, and report the return to player, the hit rate and the largest win.

Examples:
  check sim --rounds 1000000
  check sim --config ./game.yaml --seed 7 --workers 1`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRounds, "rounds", 100000, "Number of rounds to play")
	simCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Number of concurrent players")
	simCmd.Flags().BoolVar(&flagStats, "stats", false, "Print timing stats while playing")
}

// tally is what a worker learned from its rounds.
type tally struct {
	rounds int64
	hits   int64
	win    int64
	max    int64
	byName map[string]int64
}

func (t *tally) add(round *reels.Round) {
	t.rounds++
	t.win += round.Total
	if round.Total > 0 {
		t.hits++
	}
	if round.Total > t.max {
		t.max = round.Total
	}
	for _, r := range round.Results {
		t.byName[r.Name] += r.Pay
	}
}

func (t *tally) merge(o *tally) {
	t.rounds += o.rounds
	t.hits += o.hits
	t.win += o.win
	if o.max > t.max {
		t.max = o.max
	}
	for name, win := range o.byName {
		t.byName[name] += win
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	desc, game, err := load()
	if err != nil {
		return err
	}
	if flagRounds <= 0 || flagWorkers <= 0 {
		return errs.New("rounds and workers must be positive")
	}
	if desc.Bet <= 0 {
		return errs.New("game has no bet to measure returns against")
	}

	base := seed()
	logger.Info("simulating", "rounds", flagRounds, "workers", flagWorkers, "seed", base)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    = &tally{byName: make(map[string]int64)}
		firstErr error
	)

	per := (flagRounds + flagWorkers - 1) / flagWorkers
	for i := 0; i < flagWorkers; i++ {
		rounds := per
		if left := flagRounds - i*per; left < rounds {
			rounds = left
		}
		if rounds <= 0 {
			break
		}

		wg.Add(1)
		go func(worker, rounds int) {
			defer wg.Done()

			src := reels.NewPCG(base + uint64(worker))
			local := &tally{byName: make(map[string]int64)}
			step := rounds / 10

			for n := 0; n < rounds; n++ {
				if worker == 0 && step > 0 && n > 0 && n%step == 0 {
					logger.Info("progress", "percent", fmt.Sprintf("%0.2f", 100*float64(n)/float64(rounds)))
					if flagStats {
						stats()
					}
				}

				round, err := game.Play(src)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				local.add(round)
			}

			mu.Lock()
			total.merge(local)
			mu.Unlock()
		}(i, rounds)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	report(desc.Bet, total)
	stats()
	return nil
}

func report(bet int64, t *tally) {
	wagered := decimal.NewFromInt(bet).Mul(decimal.NewFromInt(t.rounds))
	percent := func(x decimal.Decimal, of decimal.Decimal) string {
		if of.IsZero() {
			return "0"
		}
		return x.Mul(decimal.NewFromInt(100)).Div(of).StringFixed(4)
	}

	fmt.Printf("rounds:   %d\n", t.rounds)
	fmt.Printf("wagered:  %s\n", wagered)
	fmt.Printf("won:      %d\n", t.win)
	fmt.Printf("rtp:      %s%%\n", percent(decimal.NewFromInt(t.win), wagered))
	fmt.Printf("hit rate: %s%%\n", percent(decimal.NewFromInt(t.hits), decimal.NewFromInt(t.rounds)))
	fmt.Printf("max win:  %sx\n", decimal.NewFromInt(t.max).Div(decimal.NewFromInt(bet)).StringFixed(2))

	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-8s %s%%\n", name, percent(decimal.NewFromInt(t.byName[name]), wagered))
	}
	fmt.Println()
}
