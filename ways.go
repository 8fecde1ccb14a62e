package reels

// WaysEvaluator pays every combination of one matching cell per cluster
// along a run of matching clusters.
type WaysEvaluator struct {
	policy   Policy
	width    int
	patterns []*ClusterPattern
	sum      summary
}

// NewWaysEvaluator returns an evaluator over the patterns. Every way is its
// own result, so under PayBest a pattern keeps a single way: the first one
// of the highest pay, not the sum over the ways of a run.
func NewWaysEvaluator(policy Policy, patterns ...*ClusterPattern) (*WaysEvaluator, error) {
	width, pats, err := clusterPatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &WaysEvaluator{
		policy:   policy,
		width:    width,
		patterns: append([]*ClusterPattern(nil), patterns...),
		sum: newSummary(width, pats, func(p, k int) Mask {
			return patterns[p].clusters[k]
		}),
	}, nil
}

// Evaluate pays the prizes on every pattern. Runs pay only when the table has
// an entry for exactly their length, and every way of a run is its own
// result.
func (e *WaysEvaluator) Evaluate(w *Window, prizes []*MaskPrize) (_ []*CellPrizeResult, err error) {
	timer := waysThunk.Start()
	defer timer.Stop(&err)

	if w.st.Len() != e.width {
		return nil, Error.New("window has %d cells, patterns are for %d", w.st.Len(), e.width)
	}

	col := newCollector(e.policy, len(e.patterns))
	for _, p := range prizes {
		syms := p.prizeSymbols(w)
		if syms.IsEmpty() || e.sum.skip(p, syms) {
			continue
		}
		for pi := range e.patterns {
			e.evaluatePattern(w, p, syms, pi, col)
		}
	}
	return col.finish(), nil
}

func (e *WaysEvaluator) evaluatePattern(w *Window, p *MaskPrize, syms Mask, pi int, col *collector) {
	cp := e.patterns[pi]
	n := len(cp.clusters)

	// matches[k] holds the matching cells of cluster k in ascending order.
	matches := make([][]int, n)
	for k, cl := range cp.clusters {
		if cnt, m := cl.AndCount(syms); cnt > 0 {
			matches[k] = m.Indexes()
		}
	}

	switch p.strategy {
	case Left:
		e.expand(w, p, pi, Left, col, frontClusters(matches), matches)

	case Right:
		e.expand(w, p, pi, Right, col, backClusters(matches), matches)

	case Any:
		var run []int
		for k := range matches {
			if len(matches[k]) > 0 {
				run = append(run, k)
			}
		}
		e.expand(w, p, pi, Any, col, run, matches)

	case Both:
		front := frontClusters(matches)
		if len(front) == n {
			e.expand(w, p, pi, Both, col, front, matches)
			return
		}
		e.expand(w, p, pi, Left, col, front, matches)
		e.expand(w, p, pi, Right, col, backClusters(matches), matches)

	default:
		panic("reels: unknown strategy")
	}
}

// frontClusters returns the leading clusters that have matches.
func frontClusters(matches [][]int) []int {
	var run []int
	for k := 0; k < len(matches) && len(matches[k]) > 0; k++ {
		run = append(run, k)
	}
	return run
}

// backClusters returns the trailing clusters that have matches, in cluster
// order.
func backClusters(matches [][]int) []int {
	k := len(matches)
	for k > 0 && len(matches[k-1]) > 0 {
		k--
	}
	var run []int
	for ; k < len(matches); k++ {
		run = append(run, k)
	}
	return run
}

// expand emits one result per combination of the matches of the clusters in
// run. The first cluster changes slowest.
func (e *WaysEvaluator) expand(w *Window, p *MaskPrize, pi int, side Strategy,
	col *collector, run []int, matches [][]int) {

	if len(run) < p.start {
		return
	}
	pay, ok := p.ExactPay(len(run))
	if !ok || pay <= 0 {
		return
	}

	ways := 1
	for _, k := range run {
		ways *= len(matches[k])
	}

	cp := e.patterns[pi]
	for i := 0; i < ways; i++ {
		cells := make([]int, len(run))
		rem := i
		for j := len(run) - 1; j >= 0; j-- {
			opts := matches[run[j]]
			cells[j] = opts[rem%len(opts)]
			rem /= len(opts)
		}
		col.emit(w, p, cp, pi, side, pay, cells)
	}
}
