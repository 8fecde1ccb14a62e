package reels

import "strings"

// Strategy is the direction a prize is evaluated in.
type Strategy int

const (
	// Left pays a run of hits anchored at the front of a pattern.
	Left Strategy = iota
	// Right pays a run of hits anchored at the back of a pattern.
	Right
	// Any pays the number of hits anywhere in a pattern.
	Any
	// Both pays the front and back runs separately, or once if they meet.
	Both
)

func (s Strategy) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Any:
		return "any"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return Left, nil
	case "right":
		return Right, nil
	case "any":
		return Any, nil
	case "both":
		return Both, nil
	default:
		return 0, Error.New("unknown strategy %q", s)
	}
}

// Requirement is the minimum number of cells of a symbol a win must contain.
type Requirement struct {
	Symbol string
	Count  int
}

// PrizeDef is a prize as authored.
type PrizeDef struct {
	Name     string
	Strategy Strategy
	Symbols  []string
	Required []Requirement

	// Start is the smallest hit count that pays. Pays[i] is the pay for
	// Start+i hits.
	Start int
	Pays  []int64
}

// MaskPrize is a PrizeDef resolved against a SymbolList.
type MaskPrize struct {
	name     string
	strategy Strategy
	start    int
	pays     []int64
	symbols  []int
	required []int // parallel to symbols, nil if nothing is required
}

// CompilePrizes resolves every definition against the list.
func CompilePrizes(list *SymbolList, defs []PrizeDef) ([]*MaskPrize, error) {
	out := make([]*MaskPrize, 0, len(defs))
	for _, def := range defs {
		p, err := CompilePrize(list, def)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func CompilePrize(list *SymbolList, def PrizeDef) (*MaskPrize, error) {
	switch def.Strategy {
	case Left, Right, Any, Both:
	default:
		return nil, Error.New("prize %q: unknown strategy %d", def.Name, def.Strategy)
	}
	if def.Start < 1 {
		return nil, Error.New("prize %q: start %d must be at least 1", def.Name, def.Start)
	}
	if len(def.Pays) == 0 {
		return nil, Error.New("prize %q: no pays", def.Name)
	}
	if len(def.Symbols) == 0 {
		return nil, Error.New("prize %q: no symbols", def.Name)
	}

	p := &MaskPrize{
		name:     def.Name,
		strategy: def.Strategy,
		start:    def.Start,
		pays:     append([]int64(nil), def.Pays...),
		symbols:  make([]int, 0, len(def.Symbols)),
	}

	for _, name := range def.Symbols {
		sym, ok := list.Index(name)
		if !ok {
			return nil, Error.New("prize %q: unknown symbol %q", def.Name, name)
		}
		for _, have := range p.symbols {
			if have == sym {
				return nil, Error.New("prize %q: symbol %q listed twice", def.Name, name)
			}
		}
		p.symbols = append(p.symbols, sym)
	}

	for _, req := range def.Required {
		if req.Count < 0 {
			return nil, Error.New("prize %q: negative requirement for %q", def.Name, req.Symbol)
		}
		if req.Count == 0 {
			continue
		}
		sym, ok := list.Index(req.Symbol)
		if !ok {
			return nil, Error.New("prize %q: unknown required symbol %q", def.Name, req.Symbol)
		}
		slot := -1
		for i, have := range p.symbols {
			if have == sym {
				slot = i
			}
		}
		if slot < 0 {
			return nil, Error.New("prize %q: required symbol %q is not a prize symbol", def.Name, req.Symbol)
		}
		if p.required == nil {
			p.required = make([]int, len(p.symbols))
		}
		p.required[slot] = req.Count
	}

	return p, nil
}

func (p *MaskPrize) Name() string       { return p.name }
func (p *MaskPrize) Strategy() Strategy { return p.strategy }
func (p *MaskPrize) Start() int         { return p.start }
func (p *MaskPrize) Pays() []int64      { return append([]int64(nil), p.pays...) }
func (p *MaskPrize) Symbols() []int     { return append([]int(nil), p.symbols...) }

// Required returns the minimum count of the symbol index a win must contain.
func (p *MaskPrize) Required(sym int) int {
	for i, have := range p.symbols {
		if have == sym && p.required != nil {
			return p.required[i]
		}
	}
	return 0
}

// Pay returns the pay for hits, using the last entry for any count past the
// end of the table. Counts below Start pay nothing.
func (p *MaskPrize) Pay(hits int) int64 {
	if hits < p.start {
		return 0
	}
	i := hits - p.start
	if i >= len(p.pays) {
		i = len(p.pays) - 1
	}
	return p.pays[i]
}

// ExactPay returns the pay for hits only if the table has an entry for
// exactly that count.
func (p *MaskPrize) ExactPay(hits int) (int64, bool) {
	i := hits - p.start
	if i < 0 || i >= len(p.pays) {
		return 0, false
	}
	return p.pays[i], true
}

// prizeSymbols returns the cells of w showing any symbol of the prize.
func (p *MaskPrize) prizeSymbols(w *Window) Mask {
	mb := newMaskBuilder(w.st.Len())
	for _, sym := range p.symbols {
		mb.Or(w.masks[sym])
	}
	return mb.Lock()
}

// checkRequired reports if the cells hold at least the required count of
// every required symbol.
func (p *MaskPrize) checkRequired(w *Window, cells []int) bool {
	if p.required == nil {
		return true
	}
	for i, req := range p.required {
		if req == 0 {
			continue
		}
		n := 0
		for _, cell := range cells {
			if w.cells[cell] == p.symbols[i] {
				n++
			}
		}
		if n < req {
			return false
		}
	}
	return true
}
