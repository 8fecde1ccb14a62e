package reels

// Unlocked marks a cell of a lock vector that is filled from its strip.
const Unlocked = -1

// Window is the symbol grid of one round: one mask per symbol index of the
// symbol list, where every cell is set in exactly one mask. A Window is
// immutable.
type Window struct {
	list   *SymbolList
	st     *Structure
	masks  []Mask
	cells  []int
	strips []SymbolSource
	stops  []int
}

func (w *Window) Symbols() *SymbolList   { return w.list }
func (w *Window) Structure() *Structure  { return w.st }
func (w *Window) Mask(sym int) Mask      { return w.masks[sym] }
func (w *Window) SymbolAt(cell int) int  { return w.cells[cell] }
func (w *Window) Strips() []SymbolSource { return w.strips }

// Stops returns the strip index chosen per population, or nil if the window
// was built from symbol names.
func (w *Window) Stops() []int { return w.stops }

// Names returns the symbol names of each population in cell order.
func (w *Window) Names() [][]string {
	out := make([][]string, w.st.Populations())
	for p := range out {
		for _, cell := range w.st.Population(p) {
			out[p] = append(out[p], w.list.Name(w.cells[cell]))
		}
	}
	return out
}

// buildWindow fills every cell through symbolAt, which receives the
// population, the position of the cell inside it and the cell index.
func buildWindow(list *SymbolList, st *Structure,
	symbolAt func(pop, pos, cell int) (int, error)) (w *Window, err error) {

	timer := windowThunk.Start()
	defer timer.Stop(&err)

	width := st.Len()
	builders := make([]*maskBuilder, list.Len())
	cells := make([]int, width)

	for p := 0; p < st.Populations(); p++ {
		for pos, cell := range st.Population(p) {
			sym, err := symbolAt(p, pos, cell)
			if err != nil {
				return nil, err
			}
			if !list.valid(sym) {
				return nil, Error.New("population %d position %d: invalid symbol index %d", p, pos, sym)
			}
			if builders[sym] == nil {
				builders[sym] = newMaskBuilder(width)
			}
			builders[sym].Set(cell)
			cells[cell] = sym
		}
	}

	empty := newMaskBuilder(width).Lock()
	masks := make([]Mask, len(builders))
	for sym, mb := range builders {
		if mb == nil {
			masks[sym] = empty
		} else {
			masks[sym] = mb.Lock()
		}
	}

	return &Window{
		list:  list,
		st:    st,
		masks: masks,
		cells: cells,
	}, nil
}

// WindowFromNames builds a window from the symbol names of every population.
func WindowFromNames(list *SymbolList, st *Structure, names [][]string) (*Window, error) {
	if len(names) != st.Populations() {
		return nil, Error.New("got symbols for %d populations, want %d", len(names), st.Populations())
	}
	for p, pop := range names {
		if len(pop) != len(st.Population(p)) {
			return nil, Error.New("population %d: got %d symbols, want %d",
				p, len(pop), len(st.Population(p)))
		}
	}
	return buildWindow(list, st, func(p, pos, cell int) (int, error) {
		sym, ok := list.Index(names[p][pos])
		if !ok {
			return 0, Error.New("population %d: unknown symbol %q", p, names[p][pos])
		}
		return sym, nil
	})
}

// WindowFromStops builds a window where population i shows strips[i]
// starting at stops[i] and wrapping around the end of the strip.
func WindowFromStops(st *Structure, strips []SymbolSource, stops []int) (*Window, error) {
	list, err := checkStrips(st, strips, stops)
	if err != nil {
		return nil, err
	}
	w, err := buildWindow(list, st, func(p, pos, cell int) (int, error) {
		return strips[p].SymbolIndexAt(wrap(stops[p]+pos, strips[p].Len())), nil
	})
	if err != nil {
		return nil, err
	}
	w.strips, w.stops = strips, append([]int(nil), stops...)
	return w, nil
}

// WindowFromLocks is WindowFromStops except that every cell with a lock that
// is not Unlocked shows the locked symbol index instead.
func WindowFromLocks(st *Structure, strips []SymbolSource, stops []int, locks []int) (*Window, error) {
	list, err := checkStrips(st, strips, stops)
	if err != nil {
		return nil, err
	}
	if len(locks) != st.Len() {
		return nil, Error.New("got %d locks for %d cells", len(locks), st.Len())
	}
	w, err := buildWindow(list, st, func(p, pos, cell int) (int, error) {
		if sym := locks[cell]; sym != Unlocked {
			return sym, nil
		}
		return strips[p].SymbolIndexAt(wrap(stops[p]+pos, strips[p].Len())), nil
	})
	if err != nil {
		return nil, err
	}
	w.strips, w.stops = strips, append([]int(nil), stops...)
	return w, nil
}

// Spin draws one stop per population from src and builds the window.
func Spin(src Source, st *Structure, strips []SymbolSource) (*Window, error) {
	stops, err := drawStops(src, strips)
	if err != nil {
		return nil, err
	}
	return WindowFromStops(st, strips, stops)
}

// Respin is Spin keeping the locked cells.
func Respin(src Source, st *Structure, strips []SymbolSource, locks []int) (*Window, error) {
	stops, err := drawStops(src, strips)
	if err != nil {
		return nil, err
	}
	return WindowFromLocks(st, strips, stops, locks)
}

// Locks returns a lock vector that keeps every cell of w holding one of the
// symbols.
func Locks(w *Window, syms ...int) []int {
	locks := make([]int, len(w.cells))
	for cell, sym := range w.cells {
		locks[cell] = Unlocked
		for _, keep := range syms {
			if sym == keep {
				locks[cell] = sym
				break
			}
		}
	}
	return locks
}

func drawStops(src Source, strips []SymbolSource) ([]int, error) {
	stops := make([]int, len(strips))
	for i, s := range strips {
		idx, err := DrawIndex(src, s)
		if err != nil {
			return nil, err
		}
		stops[i] = idx
	}
	return stops, nil
}

// checkStrips makes sure there is one strip and in range stop per population
// and that every strip uses the same symbol list, which it returns.
func checkStrips(st *Structure, strips []SymbolSource, stops []int) (*SymbolList, error) {
	if len(strips) != st.Populations() {
		return nil, Error.New("got %d strips for %d populations", len(strips), st.Populations())
	}
	if len(stops) != len(strips) {
		return nil, Error.New("got %d stops for %d strips", len(stops), len(strips))
	}
	list := strips[0].Symbols()
	for i, s := range strips {
		if s.Symbols() != list {
			return nil, Error.New("strip %d uses a different symbol list", i)
		}
		if s.Len() == 0 {
			return nil, Error.New("strip %d is empty", i)
		}
		if stops[i] < 0 || stops[i] >= s.Len() {
			return nil, Error.New("stop %d out of range [0, %d) for strip %d", stops[i], s.Len(), i)
		}
	}
	return list, nil
}

func wrap(pos, n int) int {
	pos %= n
	if pos < 0 {
		pos += n
	}
	return pos
}
