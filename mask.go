package reels

import (
	"math/bits"
	"strings"
)

// Mask is an immutable set of cell indexes in [0, Len()). Masks are shared
// freely between windows, patterns and evaluators; every operation returns a
// new Mask. Combining masks of different widths panics.
type Mask struct {
	words []uint64
	width int
}

func maskWords(width int) int { return (width + 63) / 64 }

// NewMask returns a mask of the given width with the indexes set.
func NewMask(width int, idxs ...int) Mask {
	mb := newMaskBuilder(width)
	for _, idx := range idxs {
		mb.Set(idx)
	}
	return mb.Lock()
}

func (m Mask) Len() int { return m.width }

func (m Mask) Has(idx int) bool {
	if idx < 0 || idx >= m.width {
		return false
	}
	return m.words[idx/64]>>(uint(idx)%64)&1 != 0
}

func (m Mask) same(o Mask) {
	if m.width != o.width {
		panic("reels: mask width mismatch")
	}
}

func (m Mask) And(o Mask) Mask {
	m.same(o)
	out := make([]uint64, len(m.words))
	for i, w := range m.words {
		out[i] = w & o.words[i]
	}
	return Mask{words: out, width: m.width}
}

func (m Mask) Or(o Mask) Mask {
	m.same(o)
	out := make([]uint64, len(m.words))
	for i, w := range m.words {
		out[i] = w | o.words[i]
	}
	return Mask{words: out, width: m.width}
}

// Not returns the complement of m within its width.
func (m Mask) Not() Mask {
	out := make([]uint64, len(m.words))
	for i, w := range m.words {
		out[i] = ^w
	}
	if tail := uint(m.width % 64); tail != 0 {
		out[len(out)-1] &= 1<<tail - 1
	}
	return Mask{words: out, width: m.width}
}

func (m Mask) IsEmpty() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set indexes.
func (m Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// AndIsEmpty reports if m and o share no index without allocating.
func (m Mask) AndIsEmpty(o Mask) bool {
	m.same(o)
	for i, w := range m.words {
		if w&o.words[i] != 0 {
			return false
		}
	}
	return true
}

// CountAnd returns the size of the intersection of m and o without
// allocating.
func (m Mask) CountAnd(o Mask) int {
	m.same(o)
	n := 0
	for i, w := range m.words {
		n += bits.OnesCount64(w & o.words[i])
	}
	return n
}

// AndCount returns the intersection of m and o along with its size.
func (m Mask) AndCount(o Mask) (int, Mask) {
	m.same(o)
	out := make([]uint64, len(m.words))
	n := 0
	for i, w := range m.words {
		out[i] = w & o.words[i]
		n += bits.OnesCount64(out[i])
	}
	return n, Mask{words: out, width: m.width}
}

// First returns the smallest set index or -1 if m is empty.
func (m Mask) First() int {
	for i, w := range m.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

func (m Mask) Equal(o Mask) bool {
	if m.width != o.width {
		return false
	}
	for i, w := range m.words {
		if w != o.words[i] {
			return false
		}
	}
	return true
}

// Indexes returns the set indexes in ascending order.
func (m Mask) Indexes() []int {
	out := make([]int, 0, m.Count())
	for it := m.Iter(); it.Next(); {
		out = append(out, it.Index())
	}
	return out
}

func (m Mask) String() string {
	var sb strings.Builder
	sb.Grow(m.width)
	for i := 0; i < m.width; i++ {
		if m.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

//
// iterator
//

// MaskIter walks the set indexes of a mask in ascending order. It reads the
// mask lazily so callers may stop early at no extra cost.
type MaskIter struct {
	words []uint64
	word  uint64
	wi    int
	idx   int
}

// Iter returns a fresh iterator. Every call starts over from the lowest index.
func (m Mask) Iter() (it MaskIter) {
	it.words = m.words
	it.wi = -1
	return it
}

func (it *MaskIter) Next() bool {
	for it.word == 0 {
		it.wi++
		if it.wi >= len(it.words) {
			return false
		}
		it.word = it.words[it.wi]
	}
	it.idx = it.wi*64 + bits.TrailingZeros64(it.word)
	it.word &= it.word - 1
	return true
}

func (it *MaskIter) Index() int { return it.idx }

//
// builder
//

// maskBuilder is the only mutable form of a mask. It never leaves the function
// constructing the mask.
type maskBuilder struct {
	words []uint64
	width int
}

func newMaskBuilder(width int) *maskBuilder {
	return &maskBuilder{
		words: make([]uint64, maskWords(width)),
		width: width,
	}
}

func (mb *maskBuilder) Set(idx int) {
	if idx < 0 || idx >= mb.width {
		panic("reels: mask index out of range")
	}
	mb.words[idx/64] |= 1 << (uint(idx) % 64)
}

func (mb *maskBuilder) Has(idx int) bool {
	return mb.words[idx/64]>>(uint(idx)%64)&1 != 0
}

func (mb *maskBuilder) intersects(m Mask) bool {
	for i, w := range m.words {
		if mb.words[i]&w != 0 {
			return true
		}
	}
	return false
}

func (mb *maskBuilder) Or(m Mask) {
	if m.width != mb.width {
		panic("reels: mask width mismatch")
	}
	for i, w := range m.words {
		mb.words[i] |= w
	}
}

// Lock hands the words over to an immutable Mask. The builder must not be
// used afterwards.
func (mb *maskBuilder) Lock() Mask {
	m := Mask{words: mb.words, width: mb.width}
	mb.words = nil
	return m
}
