package config

import (
	_ "embed"
	"fmt"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/zeebo/reels"
)

// Error is the class of errors loading or compiling a game description.
var Error = errs.Class("config")

//go:embed default.yaml
var defaultGame []byte

// Game is the authored description of a game.
type Game struct {
	// Bet is what one round costs in the units of the pay tables.
	Bet int64 `yaml:"bet"`

	Symbols []string `yaml:"symbols"`
	Grid    Grid     `yaml:"grid"`
	Strips  []Strip  `yaml:"strips"`

	Lines   *Lines    `yaml:"lines"`
	Scatter *Clusters `yaml:"scatter"`
	Ways    *Clusters `yaml:"ways"`
}

// Grid is a layout of Cols populations with Rows cells each.
type Grid struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Strip is either a list of unit weight symbols or a list of weighted stops.
type Strip struct {
	Symbols    []string `yaml:"symbols"`
	Stops      []Stop   `yaml:"stops"`
	ZeroWeight bool     `yaml:"zero_weight"`
}

type Stop struct {
	Symbol string `yaml:"symbol"`
	Weight uint64 `yaml:"weight"`
}

// Lines lists line patterns by the row picked in every column.
type Lines struct {
	Policy string  `yaml:"policy"`
	Rows   [][]int `yaml:"rows"`
	Prizes []Prize `yaml:"prizes"`
}

// Clusters lists cluster patterns. Each pattern is a list of clusters and
// each cluster a list of [col, row] cells. With no patterns, every column is
// one cluster of a single pattern.
type Clusters struct {
	Policy   string      `yaml:"policy"`
	Patterns [][][][]int `yaml:"patterns"`
	Prizes   []Prize     `yaml:"prizes"`
}

type Prize struct {
	Name     string         `yaml:"name"`
	Strategy string         `yaml:"strategy"`
	Symbols  []string       `yaml:"symbols"`
	Start    int            `yaml:"start"`
	Pays     []int64        `yaml:"pays"`
	Required map[string]int `yaml:"required"`
}

// Parse decodes a game description.
func Parse(data []byte) (*Game, error) {
	var g Game
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, Error.Wrap(err)
	}
	return &g, nil
}

// Default returns the embedded default game.
func Default() (*Game, error) {
	return Parse(defaultGame)
}

// Compile validates the description and builds the game.
func (g *Game) Compile() (*reels.Game, error) {
	if g.Bet < 0 {
		return nil, Error.New("negative bet %d", g.Bet)
	}

	list, err := reels.NewSymbolList(g.Symbols...)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	st, err := reels.GridStructure(g.Grid.Cols, g.Grid.Rows)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if len(g.Strips) != g.Grid.Cols {
		return nil, Error.New("got %d strips for %d columns", len(g.Strips), g.Grid.Cols)
	}

	out := &reels.Game{
		Symbols:   list,
		Structure: st,
	}

	for i, s := range g.Strips {
		strip, err := s.compile(list)
		if err != nil {
			return nil, annotate(err, "strip %d", i)
		}
		out.Strips = append(out.Strips, strip)
	}

	if g.Lines != nil {
		if out.Lines, out.LinePrizes, err = g.Lines.compile(list, st); err != nil {
			return nil, annotate(err, "lines")
		}
	}
	if g.Scatter != nil {
		if out.Scatter, out.ScatterPrizes, err = g.Scatter.compileScatter(list, st); err != nil {
			return nil, annotate(err, "scatter")
		}
	}
	if g.Ways != nil {
		if out.Ways, out.WaysPrizes, err = g.Ways.compileWays(list, st); err != nil {
			return nil, annotate(err, "ways")
		}
	}

	return out, nil
}

func (s Strip) compile(list *reels.SymbolList) (*reels.SymbolStrip, error) {
	var strip reels.Strip
	var err error

	switch {
	case len(s.Symbols) > 0 && len(s.Stops) > 0:
		return nil, Error.New("both symbols and stops given")
	case len(s.Symbols) > 0:
		strip, err = reels.NamesStrip(s.Symbols...)
	case s.ZeroWeight:
		strip, err = reels.NewZeroWeightStopStrip(s.stops())
	default:
		strip, err = reels.NewStopStrip(s.stops())
	}
	if err != nil {
		return nil, err
	}

	return reels.NewSymbolStrip(list, strip)
}

func (s Strip) stops() []reels.Stop {
	out := make([]reels.Stop, len(s.Stops))
	for i, st := range s.Stops {
		out[i] = reels.Stop{Symbol: st.Symbol, Weight: st.Weight}
	}
	return out
}

func (l *Lines) compile(list *reels.SymbolList, st *reels.Structure) (
	*reels.LineEvaluator, []*reels.MaskPrize, error) {

	policy, err := reels.ParsePolicy(l.Policy)
	if err != nil {
		return nil, nil, err
	}
	lines, err := reels.RowLines(st, l.Rows...)
	if err != nil {
		return nil, nil, err
	}
	eval, err := reels.NewLineEvaluator(policy, lines...)
	if err != nil {
		return nil, nil, err
	}
	prizes, err := compilePrizes(list, l.Prizes)
	if err != nil {
		return nil, nil, err
	}
	return eval, prizes, nil
}

func (c *Clusters) compileScatter(list *reels.SymbolList, st *reels.Structure) (
	*reels.ScatterEvaluator, []*reels.MaskPrize, error) {

	policy, pats, prizes, err := c.compile(list, st)
	if err != nil {
		return nil, nil, err
	}
	eval, err := reels.NewScatterEvaluator(policy, pats...)
	if err != nil {
		return nil, nil, err
	}
	return eval, prizes, nil
}

func (c *Clusters) compileWays(list *reels.SymbolList, st *reels.Structure) (
	*reels.WaysEvaluator, []*reels.MaskPrize, error) {

	policy, pats, prizes, err := c.compile(list, st)
	if err != nil {
		return nil, nil, err
	}
	eval, err := reels.NewWaysEvaluator(policy, pats...)
	if err != nil {
		return nil, nil, err
	}
	return eval, prizes, nil
}

func (c *Clusters) compile(list *reels.SymbolList, st *reels.Structure) (
	reels.Policy, []*reels.ClusterPattern, []*reels.MaskPrize, error) {

	policy, err := reels.ParsePolicy(c.Policy)
	if err != nil {
		return 0, nil, nil, err
	}

	var pats []*reels.ClusterPattern
	if len(c.Patterns) == 0 {
		pats = append(pats, reels.ReelClusters(st))
	}
	for i, pattern := range c.Patterns {
		clusters := make([][]reels.Cell, len(pattern))
		for k, cluster := range pattern {
			for _, cell := range cluster {
				if len(cell) != 2 {
					return 0, nil, nil, Error.New("pattern %d cluster %d: cell %v is not [col, row]", i, k, cell)
				}
				clusters[k] = append(clusters[k], reels.Cell{Col: cell[0], Row: cell[1]})
			}
		}
		cp, err := reels.NewClusterPattern(st, clusters...)
		if err != nil {
			return 0, nil, nil, annotate(err, "pattern %d", i)
		}
		pats = append(pats, cp)
	}

	prizes, err := compilePrizes(list, c.Prizes)
	if err != nil {
		return 0, nil, nil, err
	}
	return policy, pats, prizes, nil
}

func compilePrizes(list *reels.SymbolList, prizes []Prize) ([]*reels.MaskPrize, error) {
	defs := make([]reels.PrizeDef, 0, len(prizes))
	for _, p := range prizes {
		strategy, err := reels.ParseStrategy(p.Strategy)
		if err != nil {
			return nil, err
		}
		def := reels.PrizeDef{
			Name:     p.Name,
			Strategy: strategy,
			Symbols:  p.Symbols,
			Start:    p.Start,
			Pays:     p.Pays,
		}
		// requirements follow the prize symbol order so compilation is
		// deterministic.
		for _, sym := range p.Symbols {
			if n, ok := p.Required[sym]; ok {
				def.Required = append(def.Required, reels.Requirement{Symbol: sym, Count: n})
			}
		}
		for sym := range p.Required {
			if !contains(p.Symbols, sym) {
				return nil, Error.New("prize %q: required symbol %q is not a prize symbol", p.Name, sym)
			}
		}
		defs = append(defs, def)
	}
	return reels.CompilePrizes(list, defs)
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

// annotate prefixes err with some context while keeping its error classes
// visible to Has.
func annotate(err error, format string, args ...interface{}) error {
	return Error.Wrap(&contextError{msg: fmt.Sprintf(format, args...), err: err})
}

type contextError struct {
	msg string
	err error
}

func (c *contextError) Error() string { return c.msg + ": " + c.err.Error() }
func (c *contextError) Cause() error  { return c.err }
func (c *contextError) Unwrap() error { return c.err }
