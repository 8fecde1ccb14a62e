package reels

import "strings"

// CellPrizeResult is one win. It is never modified after an evaluator
// returns it.
type CellPrizeResult struct {
	Name     string
	Side     Strategy // Left, Right, Both or Any: the end the run counted from
	HitCount int
	Pay      int64
	Pattern  Pattern
	Cells    []Cell
}

// Policy decides how wins on the same pattern accumulate.
type Policy int

const (
	// PayMany keeps every win.
	PayMany Policy = iota
	// PayBest keeps one win per pattern, replacing it only with a strictly
	// better pay.
	PayBest
)

func (p Policy) String() string {
	switch p {
	case PayMany:
		return "many"
	case PayBest:
		return "best"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "many", "":
		return PayMany, nil
	case "best":
		return PayBest, nil
	default:
		return 0, Error.New("unknown policy %q", s)
	}
}

// Total sums the pays of the results.
func Total(results []*CellPrizeResult) int64 {
	var total int64
	for _, r := range results {
		total += r.Pay
	}
	return total
}

// collector gathers the wins of one evaluation call.
type collector struct {
	policy  Policy
	results []*CellPrizeResult
	best    []*CellPrizeResult
}

func newCollector(policy Policy, patterns int) *collector {
	c := &collector{policy: policy}
	if policy == PayBest {
		c.best = make([]*CellPrizeResult, patterns)
	}
	return c
}

// emit records a win of prize p on pattern idx if it pays and meets the
// required counts.
func (c *collector) emit(w *Window, p *MaskPrize, pat Pattern, idx int,
	side Strategy, pay int64, cells []int) {

	if pay <= 0 || !p.checkRequired(w, cells) {
		return
	}
	r := &CellPrizeResult{
		Name:     p.name,
		Side:     side,
		HitCount: len(cells),
		Pay:      pay,
		Pattern:  pat,
		Cells:    w.st.cellsOf(cells),
	}

	switch c.policy {
	case PayMany:
		c.results = append(c.results, r)
	case PayBest:
		if cur := c.best[idx]; cur == nil || r.Pay > cur.Pay {
			c.best[idx] = r
		}
	default:
		panic("reels: unknown policy")
	}
}

func (c *collector) finish() []*CellPrizeResult {
	if c.policy != PayBest {
		return c.results
	}
	for _, r := range c.best {
		if r != nil {
			c.results = append(c.results, r)
		}
	}
	return c.results
}
