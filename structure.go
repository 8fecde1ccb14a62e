package reels

import "fmt"

// Cell is a position of the symbol window.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// Structure lays out the cells of a window and groups them into populations,
// each filled from one strip. Cell indexes follow population order.
type Structure struct {
	cells []Cell
	index map[Cell]int
	pops  [][]int
}

// NewStructure builds a structure from its populations. Every cell must
// appear exactly once.
func NewStructure(populations [][]Cell) (*Structure, error) {
	if len(populations) == 0 {
		return nil, Error.New("structure has no populations")
	}
	s := &Structure{
		index: make(map[Cell]int),
		pops:  make([][]int, len(populations)),
	}
	for p, pop := range populations {
		if len(pop) == 0 {
			return nil, Error.New("population %d is empty", p)
		}
		for _, c := range pop {
			if _, ok := s.index[c]; ok {
				return nil, Error.New("cell %v appears twice", c)
			}
			s.index[c] = len(s.cells)
			s.pops[p] = append(s.pops[p], len(s.cells))
			s.cells = append(s.cells, c)
		}
	}
	return s, nil
}

// GridStructure returns cols populations of rows cells each, top to bottom.
func GridStructure(cols, rows int) (*Structure, error) {
	if cols <= 0 || rows <= 0 {
		return nil, Error.New("invalid grid %dx%d", cols, rows)
	}
	pops := make([][]Cell, cols)
	for c := range pops {
		for r := 0; r < rows; r++ {
			pops[c] = append(pops[c], Cell{Col: c, Row: r})
		}
	}
	return NewStructure(pops)
}

func (s *Structure) Len() int               { return len(s.cells) }
func (s *Structure) Cell(idx int) Cell      { return s.cells[idx] }
func (s *Structure) Populations() int       { return len(s.pops) }
func (s *Structure) Population(p int) []int { return s.pops[p] }

func (s *Structure) Index(c Cell) (int, bool) {
	idx, ok := s.index[c]
	return idx, ok
}

// Mask returns the mask of the given cells.
func (s *Structure) Mask(cells ...Cell) (Mask, error) {
	mb := newMaskBuilder(len(s.cells))
	for _, c := range cells {
		idx, ok := s.index[c]
		if !ok {
			return Mask{}, Error.New("cell %v is not part of the structure", c)
		}
		mb.Set(idx)
	}
	return mb.Lock(), nil
}

func (s *Structure) cellsOf(idxs []int) []Cell {
	out := make([]Cell, len(idxs))
	for i, idx := range idxs {
		out[i] = s.cells[idx]
	}
	return out
}
