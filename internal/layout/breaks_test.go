package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlanBreak(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		lines     int
		remaining int
		want      Placement
	}{
		{
			name:  "fits_exactly",
			lines: 4, remaining: 4,
			want: Placement{TakeNow: 4},
		},
		{
			name:  "fits_with_room",
			lines: 2, remaining: 10,
			want: Placement{TakeNow: 2},
		},
		{
			// One line of space would strand a single-line orphan, so the
			// whole paragraph moves to the next page.
			name:  "five_lines_one_remaining",
			lines: 5, remaining: 1,
			want: Placement{TakeNow: 0, NewPage: true},
		},
		{
			// Three lines fit, which is above the two-line minimum on both
			// sides, so the paragraph splits three now and two later.
			name:  "five_lines_three_remaining",
			lines: 5, remaining: 3,
			want: Placement{TakeNow: 3, NewPage: true},
		},
		{
			name:  "single_line_no_room",
			lines: 1, remaining: 0,
			want: Placement{NewPage: true},
		},
		{
			name:  "two_remaining_is_enough_to_split",
			lines: 6, remaining: 2,
			want: Placement{TakeNow: 2, NewPage: true},
		},
		{
			name:  "zero_remaining_moves_all",
			lines: 3, remaining: 0,
			want: Placement{TakeNow: 0, NewPage: true},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := PlanBreak(tc.lines, tc.remaining)
			if got != tc.want {
				t.Errorf("PlanBreak(%d, %d) = %+v, want %+v", tc.lines, tc.remaining, got, tc.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	lines := []string{"one", "two", "three", "four", "five"}

	now, next := SplitLines(lines, 3)
	if diff := cmp.Diff([]string{"one", "two", "three"}, now); diff != "" {
		t.Errorf("now mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"four", "five"}, next); diff != "" {
		t.Errorf("next mismatch (-want +got):\n%s", diff)
	}

	now, next = SplitLines(lines, 1)
	if len(now) != 0 {
		t.Errorf("split below the widow minimum left %d lines behind", len(now))
	}
	if len(next) != len(lines) {
		t.Errorf("carry-over = %d lines, want all %d", len(next), len(lines))
	}

	now, next = SplitLines(lines, 10)
	if len(now) != len(lines) || next != nil {
		t.Errorf("fitting block split anyway: now=%d next=%d", len(now), len(next))
	}
}
