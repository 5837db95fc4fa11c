package irc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"short", "hello world", 500, []string{"hello world"}},
		{"empty", "", 500, nil},
		{"newlines", "one\ntwo\r\n\nthree", 500, []string{"one", "two", "three"}},
		{"split at space", "Hello there friend", 15, []string{"Hello there", "friend"}},
		{"hard break", "abcdefghijklmnopqrstuvwxyz", 10, []string{"abcdefghij", "klmnopqrst", "uvwxyz"}},
		{"exact fit", "abcde", 5, []string{"abcde"}},
		{"multibyte", "ééééé", 3, []string{"é", "é", "é", "é", "é"}},
		{"zero max", "no limit here", 0, []string{"no limit here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMessage(tt.text, tt.max)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitMessage(%q, %d) mismatch (-want +got):\n%s", tt.text, tt.max, diff)
			}
		})
	}
}

func TestSplitMessageBounds(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 60)
	for _, chunk := range SplitMessage(text, 50) {
		if len(chunk) > 50 {
			t.Errorf("chunk length %d exceeds max: %q", len(chunk), chunk)
		}
	}
}
