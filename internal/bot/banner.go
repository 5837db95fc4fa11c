package bot

import (
	"fmt"
	"strings"

	"github.com/mazznoer/colorgrad"
)

const bannerArt = `
 _             _          _           _
| |__   _   _ | |_   ___ | |__   ___ | |_
| '_ \ | | | || __| / _ \| '_ \ / _ \| __|
| |_) || |_| || |_ |  __/| |_) | (_) | |_
|_.__/  \__, | \__| \___||_.__/ \___/ \__|
        |___/   canned replies for twitch chat [v%s]
`

// GetBanner returns the startup banner. With color set, each column is
// tinted along a purple gradient using 24-bit ANSI escapes.
func GetBanner(version string, color bool) string {
	banner := fmt.Sprintf(bannerArt, version)
	if !color {
		return banner
	}

	grad, err := colorgrad.NewGradient().
		HtmlColors("#9146ff", "#e0d4ff").
		Build()
	if err != nil {
		return banner
	}

	lines := strings.Split(banner, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	if width == 0 {
		return banner
	}

	colors := grad.Colors(uint(width))
	var b strings.Builder
	for _, line := range lines {
		for i, ch := range []rune(line) {
			r, g, bl, _ := colors[i].RGBA255()
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm%c", r, g, bl, ch)
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}
