package reels

// LineEvaluator pays prizes along line patterns.
type LineEvaluator struct {
	policy Policy
	width  int
	lines  []*LinePattern
	sum    summary
}

func NewLineEvaluator(policy Policy, lines ...*LinePattern) (*LineEvaluator, error) {
	if len(lines) == 0 {
		return nil, Error.New("no lines")
	}
	width := lines[0].union.Len()
	pats := make([]Pattern, len(lines))
	for i, l := range lines {
		if l.union.Len() != width {
			return nil, Error.New("line %d is for %d cells, want %d", i, l.union.Len(), width)
		}
		pats[i] = l
	}
	return &LineEvaluator{
		policy: policy,
		width:  width,
		lines:  append([]*LinePattern(nil), lines...),
		sum: newSummary(width, pats, func(p, k int) Mask {
			return NewMask(width, lines[p].cells[k])
		}),
	}, nil
}

func (e *LineEvaluator) Lines() int { return len(e.lines) }

// Evaluate pays the prizes on every line.
func (e *LineEvaluator) Evaluate(w *Window, prizes []*MaskPrize) ([]*CellPrizeResult, error) {
	return e.EvaluateLines(w, prizes, nil)
}

// EvaluateLines pays the prizes on the active lines only. A nil active slice
// selects every line.
func (e *LineEvaluator) EvaluateLines(w *Window, prizes []*MaskPrize, active []int) (
	_ []*CellPrizeResult, err error) {

	timer := lineThunk.Start()
	defer timer.Stop(&err)

	if w.st.Len() != e.width {
		return nil, Error.New("window has %d cells, lines are for %d", w.st.Len(), e.width)
	}
	for _, li := range active {
		if li < 0 || li >= len(e.lines) {
			return nil, Error.New("line %d out of range [0, %d)", li, len(e.lines))
		}
	}

	col := newCollector(e.policy, len(e.lines))
	for _, p := range prizes {
		syms := p.prizeSymbols(w)
		if syms.IsEmpty() || e.sum.skip(p, syms) {
			continue
		}
		if active == nil {
			for li := range e.lines {
				e.evaluateLine(w, p, syms, li, col)
			}
		} else {
			for _, li := range active {
				e.evaluateLine(w, p, syms, li, col)
			}
		}
	}
	return col.finish(), nil
}

func (e *LineEvaluator) evaluateLine(w *Window, p *MaskPrize, syms Mask, li int, col *collector) {
	line := e.lines[li]
	cells := line.cells
	n := len(cells)

	switch p.strategy {
	case Left:
		if f := frontRun(cells, syms); f >= p.start {
			col.emit(w, p, line, li, Left, p.Pay(f), cells[:f])
		}

	case Right:
		if b := backRun(cells, syms); b >= p.start {
			col.emit(w, p, line, li, Right, p.Pay(b), cells[n-b:])
		}

	case Any:
		hits := line.union.CountAnd(syms)
		if hits < p.start {
			return
		}
		out := make([]int, 0, hits)
		for _, cell := range cells {
			if syms.Has(cell) {
				out = append(out, cell)
			}
		}
		col.emit(w, p, line, li, Any, p.Pay(hits), out)

	case Both:
		f := frontRun(cells, syms)
		if f == n {
			col.emit(w, p, line, li, Both, p.Pay(f), cells)
			return
		}
		b := backRun(cells, syms)
		if f >= p.start {
			col.emit(w, p, line, li, Left, p.Pay(f), cells[:f])
		}
		if b >= p.start {
			col.emit(w, p, line, li, Right, p.Pay(b), cells[n-b:])
		}

	default:
		panic("reels: unknown strategy")
	}
}

// frontRun counts the hits before the first miss.
func frontRun(cells []int, syms Mask) int {
	n := 0
	for n < len(cells) && syms.Has(cells[n]) {
		n++
	}
	return n
}

// backRun counts the hits after the last miss.
func backRun(cells []int, syms Mask) int {
	n := 0
	for n < len(cells) && syms.Has(cells[len(cells)-1-n]) {
		n++
	}
	return n
}
