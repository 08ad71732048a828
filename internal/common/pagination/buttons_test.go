package pagination_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"egreen-site/internal/common/pagination"
)

// layout renders buttons as e.g. "1 … 4 [5] 6 … 10".
func layout(buttons []pagination.Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		switch {
		case b.Ellipsis:
			parts = append(parts, "…")
		case b.Current:
			parts = append(parts, "["+strconv.Itoa(b.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(b.Page))
		}
	}
	return strings.Join(parts, " ")
}

func TestButtons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, total int
		want           string
	}{
		{current: 1, total: 1, want: "[1]"},
		{current: 1, total: 2, want: "[1] 2"},
		{current: 2, total: 2, want: "1 [2]"},
		{current: 1, total: 5, want: "[1] 2 … 5"},
		{current: 3, total: 5, want: "1 2 [3] 4 5"},
		{current: 5, total: 5, want: "1 … 4 [5]"},
		{current: 5, total: 10, want: "1 … 4 [5] 6 … 10"},
		{current: 4, total: 10, want: "1 … 3 [4] 5 … 10"},
		{current: 3, total: 10, want: "1 2 [3] 4 … 10"},
		{current: 9, total: 10, want: "1 … 8 [9] 10"},
		{current: 12, total: 10, want: "1 … 9 [10]"},
		{current: 0, total: 3, want: "[1] 2 3"},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.current)+"/"+strconv.Itoa(tt.total), func(t *testing.T) {
			got := layout(pagination.Buttons(tt.current, tt.total))
			if got != tt.want {
				t.Errorf("Buttons(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestButtons_NoPages(t *testing.T) {
	t.Parallel()

	if got := pagination.Buttons(1, 0); got != nil {
		t.Errorf("Buttons(1, 0) = %v, want nil", got)
	}
}

func TestButtons_Deterministic(t *testing.T) {
	t.Parallel()

	for total := 1; total <= 12; total++ {
		for current := 1; current <= total; current++ {
			a := pagination.Buttons(current, total)
			b := pagination.Buttons(current, total)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("Buttons(%d, %d) not deterministic: %s", current, total, diff)
			}
			if a[0].Page != 1 || (total > 1 && a[len(a)-1].Page != total) {
				t.Fatalf("Buttons(%d, %d) = %s, want first and last page", current, total, layout(a))
			}
		}
	}
}

func TestNavFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		current, total int
		want           pagination.Nav
	}{
		{
			name: "first of five", current: 1, total: 5,
			want: pagination.Nav{PreviousPage: 1, NextPage: 2, PreviousEnabled: false, NextEnabled: true},
		},
		{
			name: "middle", current: 3, total: 5,
			want: pagination.Nav{PreviousPage: 2, NextPage: 4, PreviousEnabled: true, NextEnabled: true},
		},
		{
			name: "last", current: 5, total: 5,
			want: pagination.Nav{PreviousPage: 4, NextPage: 5, PreviousEnabled: true, NextEnabled: false},
		},
		{
			name: "single page", current: 1, total: 1,
			want: pagination.Nav{PreviousPage: 1, NextPage: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, pagination.NavFor(tt.current, tt.total)); diff != "" {
				t.Errorf("NavFor() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	m := pagination.Metadata{CurrentPage: 1, TotalPages: 5, Limit: 10, Total: 45}
	if !m.Known() {
		t.Errorf("Metadata %+v should be known", m)
	}
	if (pagination.Metadata{}).Known() {
		t.Error("zero Metadata should not be known")
	}
}
