package reels

import (
	"math"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestIndexAtWeight(t *testing.T) {
	weights := []uint64{1, 3}
	weightOf := func(i int) uint64 { return weights[i] }

	t.Run("Basic", func(t *testing.T) {
		for _, c := range []struct {
			weight uint64
			idx    int
		}{{0, 0}, {1, 1}, {2, 1}, {3, 1}} {
			idx, err := IndexAtWeight(c.weight, 2, weightOf)
			assert.NoError(t, err)
			assert.Equal(t, idx, c.idx)
		}

		_, err := IndexAtWeight(4, 2, weightOf)
		assert.That(t, Error.Has(err))
	})

	t.Run("Total", func(t *testing.T) {
		idx, err := IndexAtWeightTotal(3, 4, 2, weightOf)
		assert.NoError(t, err)
		assert.Equal(t, idx, 1)

		_, err = IndexAtWeightTotal(4, 4, 2, weightOf)
		assert.That(t, Error.Has(err))

		// a stale total smaller than the real sum is caught.
		_, err = IndexAtWeightTotal(2, 3, 2, weightOf)
		assert.That(t, Error.Has(err))
	})

	t.Run("Skip", func(t *testing.T) {
		weights := []uint64{1, 2, 3, 4}
		weightOf := func(i int) uint64 { return weights[i] }

		for w := uint64(0); w < 8; w++ {
			idx, err := IndexAtWeightSkip(w, 4, weightOf, []int{1})
			assert.NoError(t, err)
			assert.That(t, idx != 1)
		}
		idx, err := IndexAtWeightSkip(0, 4, weightOf, []int{0, 1})
		assert.NoError(t, err)
		assert.Equal(t, idx, 2)

		_, err = IndexAtWeightSkip(8, 4, weightOf, []int{1})
		assert.That(t, Error.Has(err))
	})

	t.Run("Fuzz", func(t *testing.T) {
		for iter := 0; iter < 100; iter++ {
			n := int(pcg.Uint32n(20)) + 1
			ws := make([]uint64, n)
			var total uint64
			for i := range ws {
				ws[i] = uint64(pcg.Uint32n(5))
				total += ws[i]
			}
			if total == 0 {
				continue
			}
			weightOf := func(i int) uint64 { return ws[i] }

			// every index is returned for exactly its own weight.
			counts := make([]uint64, n)
			for w := uint64(0); w < total; w++ {
				idx, err := IndexAtWeight(w, n, weightOf)
				assert.NoError(t, err)
				counts[idx]++
			}
			for i := range ws {
				assert.Equal(t, counts[i], ws[i])
			}
		}
	})
}

func TestStrips(t *testing.T) {
	t.Run("FuncStrip", func(t *testing.T) {
		s, err := NamesStrip("A", "B", "C")
		assert.NoError(t, err)
		assert.Equal(t, s.Len(), 3)
		assert.Equal(t, s.TotalWeight(), uint64(3))
		assert.Equal(t, s.Symbol(2), "C")

		idx, err := s.IndexAtWeight(2)
		assert.NoError(t, err)
		assert.Equal(t, idx, 2)

		_, err = s.IndexAtWeight(3)
		assert.That(t, Error.Has(err))

		idx, err = s.IndexAtWeightSkip(1, []int{0})
		assert.NoError(t, err)
		assert.Equal(t, idx, 2)

		_, err = NamesStrip()
		assert.That(t, Error.Has(err))
	})

	t.Run("WeightedFuncStrip", func(t *testing.T) {
		names := []string{"A", "B"}
		weights := []uint64{1, 3}
		s, err := NewWeightedFuncStrip(2,
			func(i int) string { return names[i] },
			func(i int) uint64 { return weights[i] })
		assert.NoError(t, err)
		assert.Equal(t, s.TotalWeight(), uint64(4))

		for w, exp := range []int{0, 1, 1, 1} {
			idx, err := s.IndexAtWeight(uint64(w))
			assert.NoError(t, err)
			assert.Equal(t, idx, exp)
		}
		_, err = s.IndexAtWeight(4)
		assert.That(t, Error.Has(err))

		_, err = NewWeightedFuncStrip(2,
			func(i int) string { return names[i] },
			func(i int) uint64 { return 0 })
		assert.That(t, Error.Has(err))
	})

	t.Run("StopStrip", func(t *testing.T) {
		s, err := NewStopStrip([]Stop{{"A", 1}, {"B", 3}, {"C", 2}})
		assert.NoError(t, err)
		assert.Equal(t, s.TotalWeight(), uint64(6))

		for w, exp := range []int{0, 1, 1, 1, 2, 2} {
			idx, err := s.IndexAtWeight(uint64(w))
			assert.NoError(t, err)
			assert.Equal(t, idx, exp)
		}
		_, err = s.IndexAtWeight(6)
		assert.That(t, Error.Has(err))

		idx, err := s.IndexAtWeightSkip(1, []int{1})
		assert.NoError(t, err)
		assert.Equal(t, idx, 2)
		assert.Equal(t, RemainingWeight(s, []int{1}), uint64(3))
	})

	t.Run("StopStrip Unit", func(t *testing.T) {
		s, err := NewStopStrip([]Stop{{"A", 1}, {"B", 1}, {"C", 1}})
		assert.NoError(t, err)
		assert.That(t, s.unit)

		for w := 0; w < 3; w++ {
			idx, err := s.IndexAtWeight(uint64(w))
			assert.NoError(t, err)
			assert.Equal(t, idx, w)
		}
		_, err = s.IndexAtWeight(3)
		assert.That(t, Error.Has(err))
	})

	t.Run("StopStrip Zero Weight", func(t *testing.T) {
		stops := []Stop{{"A", 2}, {"B", 0}, {"C", 1}}

		_, err := NewStopStrip(stops)
		assert.That(t, Error.Has(err))

		s, err := NewZeroWeightStopStrip(stops)
		assert.NoError(t, err)
		assert.Equal(t, s.Len(), 3)
		for w, exp := range []int{0, 0, 2} {
			idx, err := s.IndexAtWeight(uint64(w))
			assert.NoError(t, err)
			assert.Equal(t, idx, exp)
		}

		_, err = NewZeroWeightStopStrip([]Stop{{"A", 0}})
		assert.That(t, Error.Has(err))

		_, err = NewStopStrip(nil)
		assert.That(t, Error.Has(err))
	})

	t.Run("Total Overflow", func(t *testing.T) {
		_, err := NewStopStrip([]Stop{{"A", math.MaxUint64}, {"B", 2}})
		assert.That(t, Error.Has(err))

		_, err = NewZeroWeightStopStrip([]Stop{{"A", math.MaxUint64}, {"B", 0}, {"C", 1}})
		assert.That(t, Error.Has(err))

		weights := []uint64{math.MaxUint64, 1}
		_, err = NewWeightedFuncStrip(2,
			func(i int) string { return "A" },
			func(i int) uint64 { return weights[i] })
		assert.That(t, Error.Has(err))

		s, err := NewStopStrip([]Stop{{"A", math.MaxUint64 - 1}, {"B", 1}})
		assert.NoError(t, err)
		assert.Equal(t, s.TotalWeight(), uint64(math.MaxUint64))
		idx, err := s.IndexAtWeight(math.MaxUint64 - 1)
		assert.NoError(t, err)
		assert.Equal(t, idx, 1)
	})

	t.Run("Skip Distribution", func(t *testing.T) {
		s, err := NewStopStrip([]Stop{{"A", 1}, {"B", 2}, {"C", 3}, {"D", 4}})
		assert.NoError(t, err)

		skip := []int{2}
		total := RemainingWeight(s, skip)
		assert.Equal(t, total, uint64(7))

		counts := make([]uint64, 4)
		for w := uint64(0); w < total; w++ {
			idx, err := s.IndexAtWeightSkip(w, skip)
			assert.NoError(t, err)
			counts[idx]++
		}
		assert.Equal(t, counts[0], uint64(1))
		assert.Equal(t, counts[1], uint64(2))
		assert.Equal(t, counts[2], uint64(0))
		assert.Equal(t, counts[3], uint64(4))
	})
}

func BenchmarkStrip(b *testing.B) {
	stops := make([]Stop, 100)
	for i := range stops {
		stops[i] = Stop{Symbol: "A", Weight: uint64(i%7) + 1}
	}
	s, err := NewStopStrip(stops)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("IndexAtWeight", func(b *testing.B) {
		total := uint32(s.TotalWeight())
		for i := 0; i < b.N; i++ {
			_, _ = s.IndexAtWeight(uint64(pcg.Uint32n(total)))
		}
	})

	b.Run("IndexAtWeightSkip", func(b *testing.B) {
		skip := []int{3, 50, 97}
		total := uint32(RemainingWeight(s, skip))
		for i := 0; i < b.N; i++ {
			_, _ = s.IndexAtWeightSkip(uint64(pcg.Uint32n(total)), skip)
		}
	})
}
