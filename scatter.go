package reels

// ScatterEvaluator pays prizes over cluster patterns where each cluster may
// show at most one prize symbol.
type ScatterEvaluator struct {
	policy   Policy
	width    int
	patterns []*ClusterPattern
	sum      summary
}

func NewScatterEvaluator(policy Policy, patterns ...*ClusterPattern) (*ScatterEvaluator, error) {
	width, pats, err := clusterPatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &ScatterEvaluator{
		policy:   policy,
		width:    width,
		patterns: append([]*ClusterPattern(nil), patterns...),
		sum: newSummary(width, pats, func(p, k int) Mask {
			return patterns[p].clusters[k]
		}),
	}, nil
}

func clusterPatterns(patterns []*ClusterPattern) (int, []Pattern, error) {
	if len(patterns) == 0 {
		return 0, nil, Error.New("no cluster patterns")
	}
	width := patterns[0].union.Len()
	pats := make([]Pattern, len(patterns))
	for i, cp := range patterns {
		if cp.union.Len() != width {
			return 0, nil, Error.New("pattern %d is for %d cells, want %d", i, cp.union.Len(), width)
		}
		pats[i] = cp
	}
	return width, pats, nil
}

// Evaluate pays the prizes on every pattern. A cluster showing more than one
// prize symbol is an error: scatter patterns must be authored so that it can
// not happen.
func (e *ScatterEvaluator) Evaluate(w *Window, prizes []*MaskPrize) (_ []*CellPrizeResult, err error) {
	timer := scatterThunk.Start()
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
			if err := e.evaluatePattern(w, p, syms, pi, col); err != nil {
				return nil, err
			}
		}
	}
	return col.finish(), nil
}

// scatterHits finds the single hit cell of each cluster on demand.
type scatterHits struct {
	cp   *ClusterPattern
	syms Mask
	hits []int // -2 unknown, -1 miss
}

func newScatterHits(cp *ClusterPattern, syms Mask) *scatterHits {
	h := &scatterHits{cp: cp, syms: syms, hits: make([]int, len(cp.clusters))}
	for k := range h.hits {
		h.hits[k] = -2
	}
	return h
}

func (h *scatterHits) at(k int) (int, error) {
	if hit := h.hits[k]; hit != -2 {
		return hit, nil
	}
	n, m := h.cp.clusters[k].AndCount(h.syms)
	switch {
	case n > 1:
		return 0, Error.New("cluster %d shows %d prize symbols", k, n)
	case n == 1:
		h.hits[k] = m.First()
	default:
		h.hits[k] = -1
	}
	return h.hits[k], nil
}

func (e *ScatterEvaluator) evaluatePattern(w *Window, p *MaskPrize, syms Mask, pi int, col *collector) error {
	cp := e.patterns[pi]
	n := len(cp.clusters)
	hits := newScatterHits(cp, syms)

	switch p.strategy {
	case Left:
		var cells []int
		for k := 0; k < n; k++ {
			hit, err := hits.at(k)
			if err != nil {
				return err
			}
			if hit < 0 {
				break
			}
			cells = append(cells, hit)
		}
		if len(cells) >= p.start {
			col.emit(w, p, cp, pi, Left, p.Pay(len(cells)), cells)
		}

	case Right:
		var cells []int
		for k := n - 1; k >= 0; k-- {
			hit, err := hits.at(k)
			if err != nil {
				return err
			}
			if hit < 0 {
				break
			}
			cells = append(cells, hit)
		}
		if len(cells) >= p.start {
			reverse(cells)
			col.emit(w, p, cp, pi, Right, p.Pay(len(cells)), cells)
		}

	case Any:
		var cells []int
		for k := 0; k < n; k++ {
			hit, err := hits.at(k)
			if err != nil {
				return err
			}
			if hit >= 0 {
				cells = append(cells, hit)
			}
		}
		if len(cells) >= p.start {
			col.emit(w, p, cp, pi, Any, p.Pay(len(cells)), cells)
		}

	case Both:
		var front, back []int
		frontOn, backOn := true, true
		for k := 0; k < n && (frontOn || backOn); k++ {
			if frontOn {
				hit, err := hits.at(k)
				if err != nil {
					return err
				}
				if hit < 0 {
					frontOn = false
				} else {
					front = append(front, hit)
				}
			}
			if backOn {
				hit, err := hits.at(n - 1 - k)
				if err != nil {
					return err
				}
				if hit < 0 {
					backOn = false
				} else {
					back = append(back, hit)
				}
			}
		}
		if len(front) == n {
			col.emit(w, p, cp, pi, Both, p.Pay(n), front)
			return nil
		}
		if len(front) >= p.start {
			col.emit(w, p, cp, pi, Left, p.Pay(len(front)), front)
		}
		if len(back) >= p.start {
			reverse(back)
			col.emit(w, p, cp, pi, Right, p.Pay(len(back)), back)
		}

	default:
		panic("reels: unknown strategy")
	}

	return nil
}

func reverse(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
