package irc

import (
	"strings"
	"unicode/utf8"
)

// SplitMessage breaks text into lines of at most max bytes. Newlines always
// split; long lines break at the last space that fits, or mid-word when
// there is none. Breaks never fall inside a UTF-8 sequence. Empty lines are
// dropped.
func SplitMessage(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		for len(line) > max && max > 0 {
			chunk, rest := splitAt(line, max)
			if chunk != "" {
				out = append(out, chunk)
			}
			line = rest
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitAt(line string, max int) (string, string) {
	if idx := strings.LastIndexByte(line[:max], ' '); idx > 0 {
		return line[:idx], line[idx+1:]
	}
	end := max
	for end > 0 && !utf8.RuneStart(line[end]) {
		end--
	}
	if end == 0 {
		// a single rune wider than max; emit it whole
		_, size := utf8.DecodeRuneInString(line)
		end = size
	}
	return line[:end], line[end:]
}
