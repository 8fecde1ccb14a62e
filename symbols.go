package reels

// SymbolList is the fixed alphabet of a game. The index of a name in the list
// is the identity of that symbol everywhere else in the package.
type SymbolList struct {
	names []string
	index map[string]int
}

func NewSymbolList(names ...string) (*SymbolList, error) {
	if len(names) == 0 {
		return nil, Error.New("symbol list is empty")
	}
	l := &SymbolList{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, name := range l.names {
		if name == "" {
			return nil, Error.New("symbol %d has no name", i)
		}
		if _, ok := l.index[name]; ok {
			return nil, Error.New("duplicate symbol %q", name)
		}
		l.index[name] = i
	}
	return l, nil
}

func (l *SymbolList) Len() int           { return len(l.names) }
func (l *SymbolList) Name(i int) string  { return l.names[i] }
func (l *SymbolList) Names() []string    { return append([]string(nil), l.names...) }
func (l *SymbolList) valid(sym int) bool { return sym >= 0 && sym < len(l.names) }

func (l *SymbolList) Index(name string) (int, bool) {
	i, ok := l.index[name]
	return i, ok
}

// SymbolSource is a strip whose positions resolve to symbol indexes of a
// SymbolList.
type SymbolSource interface {
	Strip
	Symbols() *SymbolList
	SymbolIndexAt(pos int) int

	// Positions returns the ascending strip positions holding sym. The
	// returned slice must not be modified.
	Positions(sym int) []int
}

//
// bound strip
//

// SymbolStrip binds a Strip to a SymbolList.
type SymbolStrip struct {
	Strip
	list      *SymbolList
	syms      []int
	positions [][]int
}

// NewSymbolStrip resolves every position of strip against list. It fails if
// the strip names a symbol the list does not have.
func NewSymbolStrip(list *SymbolList, strip Strip) (*SymbolStrip, error) {
	s := &SymbolStrip{
		Strip:     strip,
		list:      list,
		syms:      make([]int, strip.Len()),
		positions: make([][]int, list.Len()),
	}
	for pos := range s.syms {
		name := strip.Symbol(pos)
		sym, ok := list.Index(name)
		if !ok {
			return nil, Error.New("strip position %d: unknown symbol %q", pos, name)
		}
		s.syms[pos] = sym
		s.positions[sym] = append(s.positions[sym], pos)
	}
	return s, nil
}

func (s *SymbolStrip) Symbols() *SymbolList      { return s.list }
func (s *SymbolStrip) SymbolIndexAt(pos int) int { return s.syms[pos] }

func (s *SymbolStrip) Positions(sym int) []int {
	if !s.list.valid(sym) {
		return nil
	}
	return s.positions[sym]
}

//
// replacement
//

// ReplacedStrip substitutes the symbol of every position of a base strip
// through a function. Weights are those of the base strip. The position index
// is built per symbol on first use, so a ReplacedStrip must not be shared
// between goroutines.
type ReplacedStrip struct {
	SymbolSource
	replace func(pos, sym int) int
	cache   map[int][]int
}

func NewReplacedStrip(base SymbolSource, replace func(pos, sym int) int) *ReplacedStrip {
	return &ReplacedStrip{
		SymbolSource: base,
		replace:      replace,
		cache:        make(map[int][]int),
	}
}

func (r *ReplacedStrip) SymbolIndexAt(pos int) int {
	return r.replace(pos, r.SymbolSource.SymbolIndexAt(pos))
}

func (r *ReplacedStrip) Symbol(pos int) string {
	sym := r.SymbolIndexAt(pos)
	if !r.Symbols().valid(sym) {
		return ""
	}
	return r.Symbols().Name(sym)
}

func (r *ReplacedStrip) Positions(sym int) []int {
	if out, ok := r.cache[sym]; ok {
		return out
	}
	var out []int
	for pos, n := 0, r.Len(); pos < n; pos++ {
		if r.SymbolIndexAt(pos) == sym {
			out = append(out, pos)
		}
	}
	r.cache[sym] = out
	return out
}
