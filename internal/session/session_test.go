package session

import (
	"testing"
	"time"
)

func TestParseThinkingLevel(t *testing.T) {
	cases := []struct {
		input   string
		want    ThinkingLevel
		wantErr bool
	}{
		{"off", ThinkingOff, false},
		{"minimal", ThinkingMinimal, false},
		{"low", ThinkingLow, false},
		{"medium", ThinkingMedium, false},
		{"high", ThinkingHigh, false},
		{" High ", ThinkingHigh, false},
		{"HIGH", ThinkingHigh, false},
		{"", "", true},
		{"max", "", true},
	}
	for _, tc := range cases {
		got, err := ParseThinkingLevel(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseThinkingLevel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseVerboseLevel(t *testing.T) {
	if got, err := ParseVerboseLevel("On"); err != nil || got != VerboseOn {
		t.Fatalf("ParseVerboseLevel(On) = %q, %v", got, err)
	}
	if got, err := ParseVerboseLevel("off"); err != nil || got != VerboseOff {
		t.Fatalf("ParseVerboseLevel(off) = %q, %v", got, err)
	}
	if _, err := ParseVerboseLevel("loud"); err == nil {
		t.Fatal("expected error for invalid verbose level")
	}
}

func TestRowAge(t *testing.T) {
	now := time.Now()
	updated := now.Add(-90 * time.Minute)
	row := Row{Key: "discord", UpdatedAt: &updated}
	age, ok := row.Age(now)
	if !ok {
		t.Fatal("expected age to be known")
	}
	if age != 90*time.Minute {
		t.Fatalf("unexpected age %v", age)
	}
	if _, ok := (Row{Key: "bare"}).Age(now); ok {
		t.Fatal("expected unknown age for row without timestamp")
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	snap := Snapshot{Rows: []Row{{Key: MainKey}, {Key: "s1"}}, StorePath: "/tmp/store.json"}
	dup := snap.Clone()
	dup.Rows[1].Key = "mutated"
	if snap.Rows[1].Key != "s1" {
		t.Fatalf("clone mutated the original: %q", snap.Rows[1].Key)
	}
	if dup.StorePath != snap.StorePath {
		t.Fatalf("store path not carried over: %q", dup.StorePath)
	}
}
