package puzzle

import (
	"testing"
)

type stringTestcase struct {
	name     string
	value    interface{ String() string }
	expected string
}

func TestStringForms(t *testing.T) {
	grid := markedGrid(4, Cell{0, 1}, Cell{1, 3})
	grid[2][2] = CellExcluded
	tcs := []stringTestcase{
		{
			"placement",
			solution4,
			". Q . .\n. . . Q\nQ . . .\n. . Q .\n",
		},
		{
			"regions",
			regions4,
			"a a b b\na a b b\nc c c d\nc d d d\n",
		},
		{
			"grid",
			grid,
			". Q . .\n. . . Q\n. . x .\n. . . .\n",
		},
		{
			"puzzle",
			puzzle4,
			"4x4 easy puzzle:\na A b b\na a b B\nC c c d\nc d D d\n",
		},
		{
			"cell",
			Cell{2, 0},
			"(2,0)",
		},
	}
	for _, tc := range tcs {
		if got := tc.value.String(); got != tc.expected {
			t.Errorf("%s: got:\n%q\nexpected:\n%q", tc.name, got, tc.expected)
		}
	}
	if got := (*Puzzle)(nil).String(); got != "" {
		t.Errorf("nil puzzle: got %q", got)
	}
	if got := labelString(30); got != "?" {
		t.Errorf("out-of-range label: got %q", got)
	}
}
