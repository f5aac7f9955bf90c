package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the Canvass CLI.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("   ____                                ").Foreground(p.Color("#34d399"))
	s2 := termenv.String("  / ___|__ _ _ ____   ____ _ ___ ___  ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(" | |   / _` | '_ \\ \\ / / _` / __/ __| ").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" | |__| (_| | | | \\ V / (_| \\__ \\__ \\ ").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String("  \\____\\__,_|_| |_|\\_/ \\__,_|___/___/ ").Foreground(p.Color("#60a5fa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
