package reels

// Pattern is a static shape that prizes are evaluated along.
type Pattern interface {
	// Len returns the number of positions (lines) or clusters (clusters).
	Len() int

	// Union returns every cell the pattern touches.
	Union() Mask
}

//
// lines
//

// LinePattern is an ordered list of distinct cells.
type LinePattern struct {
	cells []int
	union Mask
}

func NewLinePattern(st *Structure, cells ...Cell) (*LinePattern, error) {
	idxs := make([]int, len(cells))
	for i, c := range cells {
		idx, ok := st.Index(c)
		if !ok {
			return nil, Error.New("line cell %v is not part of the structure", c)
		}
		idxs[i] = idx
	}
	return newLinePattern(st.Len(), idxs)
}

func newLinePattern(width int, idxs []int) (*LinePattern, error) {
	if len(idxs) == 0 {
		return nil, Error.New("line has no cells")
	}
	mb := newMaskBuilder(width)
	for _, idx := range idxs {
		if idx < 0 || idx >= width {
			return nil, Error.New("line cell index %d out of range [0, %d)", idx, width)
		}
		if mb.Has(idx) {
			return nil, Error.New("line visits cell index %d twice", idx)
		}
		mb.Set(idx)
	}
	return &LinePattern{
		cells: append([]int(nil), idxs...),
		union: mb.Lock(),
	}, nil
}

// RowLines builds one line per row vector, where rows[p] selects the cell at
// that position of population p.
func RowLines(st *Structure, rows ...[]int) ([]*LinePattern, error) {
	out := make([]*LinePattern, 0, len(rows))
	for i, row := range rows {
		if len(row) != st.Populations() {
			return nil, Error.New("line %d has %d rows for %d populations", i, len(row), st.Populations())
		}
		idxs := make([]int, len(row))
		for p, r := range row {
			pop := st.Population(p)
			if r < 0 || r >= len(pop) {
				return nil, Error.New("line %d: row %d out of range for population %d", i, r, p)
			}
			idxs[p] = pop[r]
		}
		line, err := newLinePattern(st.Len(), idxs)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

func (l *LinePattern) Len() int           { return len(l.cells) }
func (l *LinePattern) Union() Mask        { return l.union }
func (l *LinePattern) Position(k int) int { return l.cells[k] }

//
// clusters
//

// ClusterPattern is an ordered list of clusters, each holding one or more
// cells.
type ClusterPattern struct {
	clusters  []Mask
	positions [][]int
	union     Mask
}

func NewClusterPattern(st *Structure, clusters ...[]Cell) (*ClusterPattern, error) {
	if len(clusters) == 0 {
		return nil, Error.New("cluster pattern has no clusters")
	}
	cp := &ClusterPattern{
		clusters:  make([]Mask, len(clusters)),
		positions: make([][]int, len(clusters)),
	}
	all := newMaskBuilder(st.Len())
	for k, cells := range clusters {
		if len(cells) == 0 {
			return nil, Error.New("cluster %d is empty", k)
		}
		m, err := st.Mask(cells...)
		if err != nil {
			return nil, err
		}
		if all.intersects(m) {
			return nil, Error.New("cluster %d overlaps an earlier cluster", k)
		}
		cp.clusters[k] = m
		cp.positions[k] = m.Indexes()
		all.Or(m)
	}
	cp.union = all.Lock()
	return cp, nil
}

// ReelClusters returns the pattern with one cluster per population.
func ReelClusters(st *Structure) *ClusterPattern {
	cp := &ClusterPattern{
		clusters:  make([]Mask, st.Populations()),
		positions: make([][]int, st.Populations()),
	}
	all := newMaskBuilder(st.Len())
	for p := range cp.clusters {
		mb := newMaskBuilder(st.Len())
		for _, idx := range st.Population(p) {
			mb.Set(idx)
			all.Set(idx)
		}
		cp.clusters[p] = mb.Lock()
		cp.positions[p] = append([]int(nil), st.Population(p)...)
	}
	cp.union = all.Lock()
	return cp
}

func (c *ClusterPattern) Len() int              { return len(c.clusters) }
func (c *ClusterPattern) Union() Mask           { return c.union }
func (c *ClusterPattern) Cluster(k int) Mask    { return c.clusters[k] }
func (c *ClusterPattern) Positions(k int) []int { return c.positions[k] }

//
// summaries
//

// summary holds, for every distance from either end of a set of patterns,
// the union of the cells at that distance. A prize whose symbols miss one of
// the first start summaries can not reach start hits from that end.
type summary struct {
	front []Mask
	back  []Mask
}

func newSummary(width int, patterns []Pattern, at func(p, k int) Mask) summary {
	longest := 0
	for _, p := range patterns {
		if p.Len() > longest {
			longest = p.Len()
		}
	}
	front := make([]*maskBuilder, longest)
	back := make([]*maskBuilder, longest)
	for k := range front {
		front[k] = newMaskBuilder(width)
		back[k] = newMaskBuilder(width)
	}
	for i, p := range patterns {
		n := p.Len()
		for k := 0; k < n; k++ {
			front[k].Or(at(i, k))
			back[k].Or(at(i, n-1-k))
		}
	}
	s := summary{front: make([]Mask, longest), back: make([]Mask, longest)}
	for k := range front {
		s.front[k] = front[k].Lock()
		s.back[k] = back[k].Lock()
	}
	return s
}

func earlyOut(sums []Mask, syms Mask, start int) bool {
	if start > len(sums) {
		return true
	}
	for k := 0; k < start; k++ {
		if sums[k].AndIsEmpty(syms) {
			return true
		}
	}
	return false
}

// leftEarlyOut reports that no pattern can start a run of start hits at its
// front.
func (s summary) leftEarlyOut(syms Mask, start int) bool { return earlyOut(s.front, syms, start) }

// rightEarlyOut reports that no pattern can start a run of start hits at its
// back.
func (s summary) rightEarlyOut(syms Mask, start int) bool { return earlyOut(s.back, syms, start) }

// skip reports if the prize can not pay on any of the patterns.
func (s summary) skip(p *MaskPrize, syms Mask) bool {
	switch p.strategy {
	case Left:
		return s.leftEarlyOut(syms, p.start)
	case Right:
		return s.rightEarlyOut(syms, p.start)
	case Both:
		return s.leftEarlyOut(syms, p.start) && s.rightEarlyOut(syms, p.start)
	case Any:
		return false
	default:
		panic("reels: unknown strategy")
	}
}
