package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		match   bool
	}{
		{"bdtemp*", "bdtemp", true},
		{"bdtemp*", "bdtemp-1", true},
		// * crosses path separators, as in the original tool.
		{"bdtemp*", "bdtemp/sub", true},
		{"bdtemp*", "xbdtemp", false},
		{"bdtemp*", "xbdtemp1", false},
		{"bdtemp*", "bdtem", false},
		{"ab?de", "abcde", true},
		{"ab?de", "abde", false},
		{"ab?de", "xabcde", false},
		{"ab[cx]de", "abxde", true},
		{"ab[cx]de", "abyde", false},
		{"*", "anything/at/all", true},
		{"team/bdtemp*", "team/bdtemp-1", true},
		{"team/bdtemp*", "other/bdtemp-1", false},
	}

	for _, tc := range tests {
		regex, err := compilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("compilePattern(%q): %v", tc.pattern, err)
		}
		if got := regex.MatchString(tc.name); got != tc.match {
			t.Errorf("pattern %q against %q: got %v; want %v", tc.pattern, tc.name, got, tc.match)
		}
	}
}

func TestCompilePatternInvalid(t *testing.T) {
	if _, err := compilePattern("bdtemp["); err == nil {
		t.Error("expected error for unterminated character class")
	}
}

func TestFilterRegex(t *testing.T) {
	ss := []string{"bdtemp-a", "bdtemp-b", "keep"}

	xwant := map[string][]string{
		"bdtemp*":         {"bdtemp-a", "bdtemp-b"},
		"bdtemp-?":        {"bdtemp-a", "bdtemp-b"},
		"bdtemp-[a]":      {"bdtemp-a"},
		"*":               ss,
		"nothing-matches": nil,
	}

	for pat, want := range xwant {
		regex, err := compilePattern(pat)
		if err != nil {
			t.Fatalf("compilePattern(%q): %v", pat, err)
		}
		got := filterRegex(ss, regex)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("filterRegex(%v, %q) mismatch (-want +got):\n%s", ss, pat, diff)
		}
	}
}
