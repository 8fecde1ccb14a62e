package reels

// Game is a compiled game configuration. It is read only once built, so any
// number of rounds may be played against it concurrently as long as each uses
// its own Source.
type Game struct {
	Symbols   *SymbolList
	Structure *Structure
	Strips    []SymbolSource

	Lines      *LineEvaluator
	LinePrizes []*MaskPrize

	Scatter       *ScatterEvaluator
	ScatterPrizes []*MaskPrize

	Ways       *WaysEvaluator
	WaysPrizes []*MaskPrize
}

// Round is the outcome of one spin.
type Round struct {
	Window  *Window
	Results []*CellPrizeResult
	Total   int64
}

// Play spins the strips and evaluates the window.
func (g *Game) Play(src Source) (*Round, error) {
	w, err := Spin(src, g.Structure, g.Strips)
	if err != nil {
		return nil, err
	}
	return g.Evaluate(w)
}

// Evaluate runs every configured evaluator over the window. Line wins come
// first, then scatter wins, then ways wins.
func (g *Game) Evaluate(w *Window) (*Round, error) {
	if w.Symbols() != g.Symbols {
		return nil, Error.New("window uses a different symbol list")
	}

	var results []*CellPrizeResult
	if g.Lines != nil {
		rs, err := g.Lines.Evaluate(w, g.LinePrizes)
		if err != nil {
			return nil, err
		}
		results = append(results, rs...)
	}
	if g.Scatter != nil {
		rs, err := g.Scatter.Evaluate(w, g.ScatterPrizes)
		if err != nil {
			return nil, err
		}
		results = append(results, rs...)
	}
	if g.Ways != nil {
		rs, err := g.Ways.Evaluate(w, g.WaysPrizes)
		if err != nil {
			return nil, err
		}
		results = append(results, rs...)
	}

	return &Round{
		Window:  w,
		Results: results,
		Total:   Total(results),
	}, nil
}
