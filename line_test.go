package reels

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func testPrizes(t testing.TB, list *SymbolList, defs ...PrizeDef) []*MaskPrize {
	prizes, err := CompilePrizes(list, defs)
	if err != nil {
		t.Fatal(err)
	}
	return prizes
}

// testRow returns a one row window of the names and the evaluator of the
// single line across it.
func testRow(t testing.TB, list *SymbolList, policy Policy, names ...string) (*Window, *LineEvaluator) {
	cols := make([][]string, len(names))
	for i, name := range names {
		cols[i] = []string{name}
	}
	w := testWindow(t, list, cols...)
	lines, err := RowLines(w.Structure(), make([]int, len(names)))
	if err != nil {
		t.Fatal(err)
	}
	eval, err := NewLineEvaluator(policy, lines...)
	if err != nil {
		t.Fatal(err)
	}
	return w, eval
}

func checkCells(t *testing.T, r *CellPrizeResult, cols ...int) {
	t.Helper()
	assert.Equal(t, len(r.Cells), len(cols))
	assert.Equal(t, r.HitCount, len(cols))
	for i, col := range cols {
		assert.Equal(t, r.Cells[i].Col, col)
	}
}

func TestLineEvaluator(t *testing.T) {
	list := testList(t)

	t.Run("Left Short Run", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "B", "A", "A")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Left, Symbols: []string{"A"}, Start: 3, Pays: []int64{5, 10, 20},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 0)
	})

	t.Run("Zero Pay", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "B", "A", "A")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Left, Symbols: []string{"A"}, Start: 2, Pays: []int64{0, 10},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 0)
	})

	t.Run("Right", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "B", "A", "A")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Right, Symbols: []string{"A"}, Start: 2, Pays: []int64{7},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Side, Right)
		assert.Equal(t, results[0].Pay, int64(7))
		checkCells(t, results[0], 3, 4)
	})

	t.Run("Clamp", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "A", "A", "A")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Left, Symbols: []string{"A"}, Start: 3, Pays: []int64{5},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Pay, int64(5))
		checkCells(t, results[0], 0, 1, 2, 3, 4)
	})

	t.Run("Both Full Line", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "A", "A", "A")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Both, Symbols: []string{"A"}, Start: 3, Pays: []int64{1, 2, 3},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Side, Both)
		assert.Equal(t, results[0].Pay, int64(3))
		checkCells(t, results[0], 0, 1, 2, 3, 4)
	})

	t.Run("Both Separate Runs", func(t *testing.T) {
		def := PrizeDef{
			Name: "A", Strategy: Both, Symbols: []string{"A"}, Start: 2, Pays: []int64{5, 9},
		}

		w, eval := testRow(t, list, PayMany, "A", "A", "B", "A", "A")
		results, err := eval.Evaluate(w, testPrizes(t, list, def))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 2)
		assert.Equal(t, results[0].Side, Left)
		checkCells(t, results[0], 0, 1)
		assert.Equal(t, results[1].Side, Right)
		checkCells(t, results[1], 3, 4)

		// equal pays keep the first win.
		w, eval = testRow(t, list, PayBest, "A", "A", "B", "A", "A")
		results, err = eval.Evaluate(w, testPrizes(t, list, def))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Side, Left)
		assert.Equal(t, Total(results), int64(5))
	})

	t.Run("Any", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "B", "A", "A", "C")
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Any, Symbols: []string{"A"}, Start: 2, Pays: []int64{5, 9},
		})
		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Side, Any)
		assert.Equal(t, results[0].Pay, int64(9))
		checkCells(t, results[0], 0, 2, 3)
	})

	t.Run("Substitution And Requirements", func(t *testing.T) {
		def := PrizeDef{
			Name: "A", Strategy: Left, Symbols: []string{"A", "W"}, Start: 3, Pays: []int64{5, 10, 20},
			Required: []Requirement{{Symbol: "A", Count: 1}},
		}

		w, eval := testRow(t, list, PayMany, "W", "A", "W", "B", "A")
		results, err := eval.Evaluate(w, testPrizes(t, list, def))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Pay, int64(5))
		checkCells(t, results[0], 0, 1, 2)

		w, eval = testRow(t, list, PayMany, "W", "W", "W", "B", "A")
		results, err = eval.Evaluate(w, testPrizes(t, list, def))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 0)
	})

	t.Run("Best Across Prizes", func(t *testing.T) {
		defs := []PrizeDef{
			{Name: "A", Strategy: Left, Symbols: []string{"A", "W"}, Start: 3, Pays: []int64{5, 10, 20}},
			{Name: "W", Strategy: Left, Symbols: []string{"W"}, Start: 3, Pays: []int64{50}},
		}

		w, eval := testRow(t, list, PayMany, "W", "W", "W", "A", "A")
		results, err := eval.Evaluate(w, testPrizes(t, list, defs...))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 2)
		assert.Equal(t, results[0].Name, "A")
		assert.Equal(t, results[0].Pay, int64(20))
		assert.Equal(t, results[1].Name, "W")
		assert.Equal(t, Total(results), int64(70))

		w, eval = testRow(t, list, PayBest, "W", "W", "W", "A", "A")
		results, err = eval.Evaluate(w, testPrizes(t, list, defs...))
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Name, "W")
		assert.Equal(t, results[0].Pay, int64(50))
	})

	t.Run("Active Lines", func(t *testing.T) {
		w := testWindow(t, list, []string{"A", "B"}, []string{"A", "B"}, []string{"A", "B"})
		lines, err := RowLines(w.Structure(), []int{0, 0, 0}, []int{1, 1, 1})
		assert.NoError(t, err)
		eval, err := NewLineEvaluator(PayMany, lines...)
		assert.NoError(t, err)
		assert.Equal(t, eval.Lines(), 2)

		prizes := testPrizes(t, list,
			PrizeDef{Name: "A", Symbols: []string{"A"}, Start: 3, Pays: []int64{5}},
			PrizeDef{Name: "B", Symbols: []string{"B"}, Start: 3, Pays: []int64{3}},
		)

		results, err := eval.Evaluate(w, prizes)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 2)

		results, err = eval.EvaluateLines(w, prizes, []int{1})
		assert.NoError(t, err)
		assert.Equal(t, len(results), 1)
		assert.Equal(t, results[0].Name, "B")
		assert.That(t, results[0].Pattern == Pattern(lines[1]))

		_, err = eval.EvaluateLines(w, prizes, []int{2})
		assert.That(t, Error.Has(err))
	})

	t.Run("Invalid", func(t *testing.T) {
		w, eval := testRow(t, list, PayMany, "A", "A", "A")
		other := testWindow(t, list, []string{"A"}, []string{"A"})
		_, err := eval.Evaluate(other, nil)
		assert.That(t, Error.Has(err))

		results, err := eval.Evaluate(w, nil)
		assert.NoError(t, err)
		assert.Equal(t, len(results), 0)

		_, err = RowLines(w.Structure(), []int{0, 1, 0})
		assert.That(t, Error.Has(err))

		_, err = NewLinePattern(w.Structure(), Cell{0, 0}, Cell{0, 0})
		assert.That(t, Error.Has(err))

		_, err = NewLineEvaluator(PayMany)
		assert.That(t, Error.Has(err))
	})

	t.Run("Fuzz", func(t *testing.T) {
		// the left win of a line is its longest prefix of prize symbols.
		names := []string{"A", "B", "W"}
		prizes := testPrizes(t, list, PrizeDef{
			Name: "A", Strategy: Left, Symbols: []string{"A", "W"}, Start: 1, Pays: []int64{1, 2, 3, 4, 5},
		})
		for iter := 0; iter < 200; iter++ {
			row := make([]string, 5)
			exp := -1
			for i := range row {
				row[i] = names[pcg.Uint32n(3)]
				if row[i] == "B" && exp < 0 {
					exp = i
				}
			}
			if exp < 0 {
				exp = 5
			}

			w, eval := testRow(t, list, PayMany, row...)
			results, err := eval.Evaluate(w, prizes)
			assert.NoError(t, err)
			if exp == 0 {
				assert.Equal(t, len(results), 0)
				continue
			}
			assert.Equal(t, len(results), 1)
			assert.Equal(t, results[0].HitCount, exp)
			assert.Equal(t, results[0].Pay, int64(exp))
		}
	})
}

func TestPrize(t *testing.T) {
	list := testList(t)

	p, err := CompilePrize(list, PrizeDef{
		Name: "A", Strategy: Left, Symbols: []string{"A", "W"}, Start: 3, Pays: []int64{5, 10},
		Required: []Requirement{{Symbol: "A", Count: 2}},
	})
	assert.NoError(t, err)

	assert.Equal(t, p.Pay(2), int64(0))
	assert.Equal(t, p.Pay(3), int64(5))
	assert.Equal(t, p.Pay(4), int64(10))
	assert.Equal(t, p.Pay(9), int64(10))

	pay, ok := p.ExactPay(4)
	assert.That(t, ok)
	assert.Equal(t, pay, int64(10))
	_, ok = p.ExactPay(5)
	assert.That(t, !ok)
	_, ok = p.ExactPay(2)
	assert.That(t, !ok)

	assert.Equal(t, p.Required(testSymbol(t, list, "A")), 2)
	assert.Equal(t, p.Required(testSymbol(t, list, "W")), 0)

	for _, def := range []PrizeDef{
		{Name: "start", Symbols: []string{"A"}, Start: 0, Pays: []int64{1}},
		{Name: "pays", Symbols: []string{"A"}, Start: 1},
		{Name: "symbols", Start: 1, Pays: []int64{1}},
		{Name: "unknown", Symbols: []string{"Z"}, Start: 1, Pays: []int64{1}},
		{Name: "twice", Symbols: []string{"A", "A"}, Start: 1, Pays: []int64{1}},
		{Name: "strategy", Strategy: Strategy(9), Symbols: []string{"A"}, Start: 1, Pays: []int64{1}},
		{Name: "required", Symbols: []string{"A"}, Start: 1, Pays: []int64{1},
			Required: []Requirement{{Symbol: "B", Count: 1}}},
	} {
		_, err := CompilePrize(list, def)
		assert.That(t, Error.Has(err))
	}

	s, err := ParseStrategy("Both")
	assert.NoError(t, err)
	assert.Equal(t, s, Both)
	_, err = ParseStrategy("sideways")
	assert.That(t, Error.Has(err))

	pol, err := ParsePolicy("best")
	assert.NoError(t, err)
	assert.Equal(t, pol, PayBest)
	assert.Equal(t, pol.String(), "best")
}

func BenchmarkLineEvaluator(b *testing.B) {
	list := testList(b)
	w := testWindow(b, list,
		[]string{"A", "B", "C"},
		[]string{"A", "W", "C"},
		[]string{"W", "B", "A"},
		[]string{"C", "B", "A"},
		[]string{"S", "B", "C"},
	)
	var rows [][]int
	for i := 0; i < 27; i++ {
		rows = append(rows, []int{i % 3, i / 3 % 3, i / 9 % 3, i % 3, i / 3 % 3})
	}
	lines, err := RowLines(w.Structure(), rows...)
	if err != nil {
		b.Fatal(err)
	}
	prizes := testPrizes(b, list,
		PrizeDef{Name: "A", Symbols: []string{"A", "W"}, Start: 3, Pays: []int64{5, 10, 20}},
		PrizeDef{Name: "B", Symbols: []string{"B", "W"}, Start: 3, Pays: []int64{4, 8, 16}},
		PrizeDef{Name: "C", Symbols: []string{"C", "W"}, Start: 3, Pays: []int64{3, 6, 12}},
	)

	for _, policy := range []Policy{PayMany, PayBest} {
		b.Run(policy.String(), func(b *testing.B) {
			eval, err := NewLineEvaluator(policy, lines...)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = eval.Evaluate(w, prizes)
			}
		})
	}
}
