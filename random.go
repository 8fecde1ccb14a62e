package reels

import (
	"math"

	"github.com/zeebo/pcg"
)

// Source picks weights for strip draws.
type Source interface {
	// Draw returns a uniform value in [0, total). total is never zero.
	Draw(total uint64) uint64
}

// PCG is a Source backed by a pcg generator. It is not safe for concurrent
// use; give every goroutine its own.
type PCG struct {
	rng pcg.T
}

func NewPCG(seed uint64) *PCG {
	return &PCG{rng: pcg.New(seed)}
}

func (p *PCG) Draw(total uint64) uint64 {
	if total <= math.MaxUint32 {
		return uint64(p.rng.Uint32n(uint32(total)))
	}
	// reject the top partial bucket so every value is equally likely.
	limit := math.MaxUint64 - math.MaxUint64%total
	for {
		if v := p.rng.Uint64(); v < limit {
			return v % total
		}
	}
}

// DrawIndex draws one index from the strip.
func DrawIndex(src Source, s Strip) (int, error) {
	total := s.TotalWeight()
	if total == 0 {
		return 0, Error.New("strip has zero total weight")
	}
	return s.IndexAtWeight(src.Draw(total))
}

// DrawDistinct draws n different indexes from the strip, each draw weighted
// over the indexes not chosen yet.
func DrawDistinct(src Source, s Strip, n int) ([]int, error) {
	if n > s.Len() {
		return nil, Error.New("cannot draw %d distinct indexes from %d", n, s.Len())
	}
	out := make([]int, 0, n)
	for len(out) < n {
		remaining := RemainingWeight(s, out)
		if remaining == 0 {
			return nil, Error.New("no weight left after %d distinct draws", len(out))
		}
		idx, err := s.IndexAtWeightSkip(src.Draw(remaining), out)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}
