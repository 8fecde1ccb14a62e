package reels

import (
	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
)

// Error is the class of every configuration or caller contract error returned
// by this package. Rounds that simply do not win are never errors.
var Error = errs.Class("reels")

var (
	windowThunk  mon.Thunk
	lineThunk    mon.Thunk
	scatterThunk mon.Thunk
	waysThunk    mon.Thunk
)

// skipped reports if i is contained in skip. skip sets are small enough that a
// scan beats building a set.
func skipped(skip []int, i int) bool {
	for _, s := range skip {
		if s == i {
			return true
		}
	}
	return false
}
