package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"main", "12s"},
		{"research", "5m"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"main      12s",
		"research   5m",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatToleratesRaggedRows(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"long"},
	}
	got := Format(rows, nil)
	if got[0] != "a     b  c" {
		t.Fatalf("row 0 = %q", got[0])
	}
	if got[1] != "long" {
		t.Fatalf("row 1 = %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
