package commands

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTrigger string
		wantArgs    []string
		wantOK      bool
	}{
		{"trigger with args", "!shoutout hello world", "!shoutout", []string{"hello", "world"}, true},
		{"collapses whitespace runs", "  !shoutout   hello\t world \n", "!shoutout", []string{"hello", "world"}, true},
		{"trigger only", "!hi", "!hi", []string{}, true},
		{"no prefix stripping", "hello there", "hello", []string{"there"}, true},
		{"case preserved", "!HI Bob", "!HI", []string{"Bob"}, true},
		{"empty", "", "", nil, false},
		{"spaces only", "    ", "", nil, false},
		{"mixed whitespace only", " \t\r\n ", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, args, ok := Tokenize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Tokenize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if trigger != tt.wantTrigger {
				t.Errorf("Tokenize(%q) trigger = %q, want %q", tt.raw, trigger, tt.wantTrigger)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("Tokenize(%q) args mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}
