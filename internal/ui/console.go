package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Output writers for the console helpers. Tests point these at buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func OK(msg string) {
	fmt.Fprintln(Stdout, Current().Success.Render("✔ "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(Stderr, Current().Error.Render("✖ "+msg))
}

func Info(msg string) {
	fmt.Fprintln(Stdout, Current().Muted.Render(msg))
}
