package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// consoleObserver renders pipeline notifications on the terminal. Progress
// and check events redraw a single status line; everything else gets its own
// line.
type consoleObserver struct {
	extract *color.Color
	patch   *color.Color
	errc    *color.Color
	inline  bool
}

func newConsoleObserver() *consoleObserver {
	return &consoleObserver{
		extract: color.New(color.FgGreen),
		patch:   color.New(color.FgCyan),
		errc:    color.New(color.FgRed),
	}
}

func (c *consoleObserver) Progress(downloaded, total int64, label string) {
	if total > 0 {
		fmt.Printf("\r  %s: %.1f / %.1f MiB (%d%%)   ", label,
			float64(downloaded)/(1<<20), float64(total)/(1<<20), downloaded*100/total)
	} else {
		fmt.Printf("\r  %s: %.1f MiB   ", label, float64(downloaded)/(1<<20))
	}
	c.inline = true
}

func (c *consoleObserver) Extract(message string) {
	c.breakLine()
	//nolint:errcheck // Terminal output
	c.extract.Printf("  %s\n", message)
}

func (c *consoleObserver) Check(index, total int, label string) {
	fmt.Printf("\r  checking %s %d/%d   ", label, index, total)
	c.inline = true
}

func (c *consoleObserver) Patch(message string) {
	c.breakLine()
	//nolint:errcheck // Terminal output
	c.patch.Printf("  %s\n", message)
}

func (c *consoleObserver) Error(message string) {
	c.breakLine()
	//nolint:errcheck // Terminal output
	c.errc.Fprintf(os.Stderr, "  %s\n", message)
}

// Failure prints a final error line after the pipeline stops.
func (c *consoleObserver) Failure(message string) {
	c.breakLine()
	//nolint:errcheck // Terminal output
	c.errc.Fprintf(os.Stderr, "%s\n", message)
}

// Done terminates any in-place status line.
func (c *consoleObserver) Done() {
	c.breakLine()
}

func (c *consoleObserver) breakLine() {
	if c.inline {
		fmt.Println()
		c.inline = false
	}
}
