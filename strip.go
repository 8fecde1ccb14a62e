package reels

import "sort"

// IndexAtWeight returns the first index in [0, n) whose cumulative weight
// exceeds weight. It fails if the weights of all n indexes do not exceed it.
func IndexAtWeight(weight uint64, n int, weightOf func(int) uint64) (int, error) {
	var cum uint64
	for i := 0; i < n; i++ {
		cum += weightOf(i)
		if cum > weight {
			return i, nil
		}
	}
	return 0, Error.New("weight %d out of range [0, %d)", weight, cum)
}

// IndexAtWeightTotal is IndexAtWeight for a caller that knows the total
// weight. It additionally fails as soon as the running sum exceeds total.
func IndexAtWeightTotal(weight, total uint64, n int, weightOf func(int) uint64) (int, error) {
	if weight >= total {
		return 0, Error.New("weight %d out of range [0, %d)", weight, total)
	}
	var cum uint64
	for i := 0; i < n; i++ {
		cum += weightOf(i)
		if cum > total {
			return 0, Error.New("cumulative weight %d at index %d exceeds total %d", cum, i, total)
		}
		if cum > weight {
			return i, nil
		}
	}
	return 0, Error.New("weight %d out of range [0, %d)", weight, cum)
}

// IndexAtWeightSkip is IndexAtWeight where the indexes in skip carry no
// weight and are never returned.
func IndexAtWeightSkip(weight uint64, n int, weightOf func(int) uint64, skip []int) (int, error) {
	var cum uint64
	for i := 0; i < n; i++ {
		if skipped(skip, i) {
			continue
		}
		cum += weightOf(i)
		if cum > weight {
			return i, nil
		}
	}
	return 0, Error.New("weight %d out of range [0, %d)", weight, cum)
}

// Strip is an indexable sequence of weighted symbols.
type Strip interface {
	Len() int
	Symbol(i int) string
	Weight(i int) uint64
	TotalWeight() uint64

	// IndexAtWeight maps a weight in [0, TotalWeight()) to an index.
	IndexAtWeight(weight uint64) (int, error)

	// IndexAtWeightSkip maps a weight in [0, RemainingWeight(skip)) to an
	// index that is not in skip.
	IndexAtWeightSkip(weight uint64, skip []int) (int, error)
}

// RemainingWeight returns the total weight of the strip indexes not in skip.
func RemainingWeight(s Strip, skip []int) uint64 {
	var total uint64
	for i, n := 0, s.Len(); i < n; i++ {
		if !skipped(skip, i) {
			total += s.Weight(i)
		}
	}
	return total
}

//
// unweighted
//

// FuncStrip is a strip of n symbols that all weigh one, so a weight is its
// own index.
type FuncStrip struct {
	n      int
	symbol func(int) string
}

func NewFuncStrip(n int, symbol func(int) string) (*FuncStrip, error) {
	if n <= 0 {
		return nil, Error.New("strip needs at least one symbol")
	}
	return &FuncStrip{n: n, symbol: symbol}, nil
}

// NamesStrip returns a FuncStrip over the names.
func NamesStrip(names ...string) (*FuncStrip, error) {
	names = append([]string(nil), names...)
	return NewFuncStrip(len(names), func(i int) string { return names[i] })
}

func (f *FuncStrip) Len() int            { return f.n }
func (f *FuncStrip) Symbol(i int) string { return f.symbol(i) }
func (f *FuncStrip) Weight(i int) uint64 { return 1 }
func (f *FuncStrip) TotalWeight() uint64 { return uint64(f.n) }
func (f *FuncStrip) unit(i int) uint64   { return 1 }

func (f *FuncStrip) IndexAtWeight(weight uint64) (int, error) {
	if weight >= uint64(f.n) {
		return 0, Error.New("weight %d out of range [0, %d)", weight, f.n)
	}
	return int(weight), nil
}

func (f *FuncStrip) IndexAtWeightSkip(weight uint64, skip []int) (int, error) {
	if len(skip) == 0 {
		return f.IndexAtWeight(weight)
	}
	return IndexAtWeightSkip(weight, f.n, f.unit, skip)
}

//
// weight function
//

// WeightedFuncStrip is a strip of n symbols with weights given by a function.
// The weight function must be stable: the total is computed once.
type WeightedFuncStrip struct {
	n      int
	symbol func(int) string
	weight func(int) uint64
	total  uint64
}

func NewWeightedFuncStrip(n int, symbol func(int) string, weight func(int) uint64) (*WeightedFuncStrip, error) {
	if n <= 0 {
		return nil, Error.New("strip needs at least one symbol")
	}
	var total uint64
	for i := 0; i < n; i++ {
		w := weight(i)
		if total+w < total {
			return nil, Error.New("strip total weight overflows")
		}
		total += w
	}
	if total == 0 {
		return nil, Error.New("strip has zero total weight")
	}
	return &WeightedFuncStrip{
		n:      n,
		symbol: symbol,
		weight: weight,
		total:  total,
	}, nil
}

func (w *WeightedFuncStrip) Len() int            { return w.n }
func (w *WeightedFuncStrip) Symbol(i int) string { return w.symbol(i) }
func (w *WeightedFuncStrip) Weight(i int) uint64 { return w.weight(i) }
func (w *WeightedFuncStrip) TotalWeight() uint64 { return w.total }

func (w *WeightedFuncStrip) IndexAtWeight(weight uint64) (int, error) {
	return IndexAtWeightTotal(weight, w.total, w.n, w.weight)
}

func (w *WeightedFuncStrip) IndexAtWeightSkip(weight uint64, skip []int) (int, error) {
	return IndexAtWeightSkip(weight, w.n, w.weight, skip)
}

//
// stop list
//

// Stop is one weighted position of a StopStrip.
type Stop struct {
	Symbol string
	Weight uint64
}

// StopStrip is a strip built from an explicit list of stops.
type StopStrip struct {
	stops []Stop
	cum   []uint64 // cum[i] is the weight of stops[:i+1]
	unit  bool     // every weight is one
	zero  bool     // zero weights were allowed
}

// NewStopStrip builds a strip from the stops. A stop with zero weight can
// never be drawn and is rejected.
func NewStopStrip(stops []Stop) (*StopStrip, error) {
	return newStopStrip(stops, false)
}

// NewZeroWeightStopStrip builds a strip from the stops, keeping stops with
// zero weight as unreachable placeholders.
func NewZeroWeightStopStrip(stops []Stop) (*StopStrip, error) {
	return newStopStrip(stops, true)
}

func newStopStrip(stops []Stop, zero bool) (*StopStrip, error) {
	if len(stops) == 0 {
		return nil, Error.New("strip needs at least one stop")
	}

	s := &StopStrip{
		stops: append([]Stop(nil), stops...),
		cum:   make([]uint64, len(stops)),
		unit:  !zero,
		zero:  zero,
	}

	var total uint64
	for i, st := range s.stops {
		if st.Weight == 0 && !zero {
			return nil, Error.New("stop %d (%q) has zero weight", i, st.Symbol)
		}
		if st.Weight != 1 {
			s.unit = false
		}
		if total+st.Weight < total {
			return nil, Error.New("strip total weight overflows")
		}
		total += st.Weight
		s.cum[i] = total
	}
	if total == 0 {
		return nil, Error.New("strip has zero total weight")
	}

	return s, nil
}

func (s *StopStrip) Len() int            { return len(s.stops) }
func (s *StopStrip) Symbol(i int) string { return s.stops[i].Symbol }
func (s *StopStrip) Weight(i int) uint64 { return s.stops[i].Weight }
func (s *StopStrip) TotalWeight() uint64 { return s.cum[len(s.cum)-1] }

func (s *StopStrip) IndexAtWeight(weight uint64) (int, error) {
	total := s.TotalWeight()
	switch {
	case s.unit:
		if weight >= total {
			return 0, Error.New("weight %d out of range [0, %d)", weight, total)
		}
		return int(weight), nil

	case s.zero:
		return IndexAtWeightTotal(weight, total, len(s.stops), s.Weight)

	default:
		idx := sort.Search(len(s.cum), func(i int) bool { return s.cum[i] > weight })
		if idx == len(s.cum) {
			return 0, Error.New("weight %d out of range [0, %d)", weight, total)
		}
		return idx, nil
	}
}

func (s *StopStrip) IndexAtWeightSkip(weight uint64, skip []int) (int, error) {
	if len(skip) == 0 {
		return s.IndexAtWeight(weight)
	}
	return IndexAtWeightSkip(weight, len(s.stops), s.Weight, skip)
}
