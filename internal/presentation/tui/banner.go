package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient-like color scheme (Indigo to Rose)
	lines := []struct {
		text  string
		color string
	}{
		{"   __                     __ _                 ", "#818cf8"},
		{"  / _| ___  _ __ _ __ ___  / _| | _____      __", "#a78bfa"},
		{" | |_ / _ \\| '__| '_ ` _ \\| |_| |/ _ \\ \\ /\\ / /", "#c084fc"},
		{" |  _| (_) | |  | | | | | |  _| | (_) \\ V  V / ", "#e879f9"},
		{" |_|  \\___/|_|  |_| |_| |_|_| |_|\\___/ \\_/\\_/  ", "#f472b6"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println(termenv.String("   v" + version).Foreground(p.Color("#fb7185")).Faint())
	fmt.Println()
}
