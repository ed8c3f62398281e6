package tui

import (
	"io"
	"os"

	"github.com/thruflo/kaprekar/internal/config"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 60

// Terminal describes where narration is written.
type Terminal struct {
	out io.Writer
	fd  int // -1 when out is not backed by a file descriptor
}

// NewTerminal wraps out. If out is an *os.File its descriptor is used for
// TTY detection and sizing.
func NewTerminal(out io.Writer) *Terminal {
	fd := -1
	if f, ok := out.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Terminal{out: out, fd: fd}
}

// Writer returns the underlying writer.
func (t *Terminal) Writer() io.Writer {
	return t.out
}

// IsTTY reports whether output goes to an interactive terminal.
func (t *Terminal) IsTTY() bool {
	return t.fd >= 0 && term.IsTerminal(t.fd)
}

// Width returns the terminal width, or DefaultWidth when unknown.
func (t *Terminal) Width() int {
	if !t.IsTTY() {
		return DefaultWidth
	}
	width, _, err := term.GetSize(t.fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Palette resolves a config.Display color mode against this terminal.
func (t *Terminal) Palette(mode string) Palette {
	switch mode {
	case config.ColorAlways:
		return Palette{Enabled: true}
	case config.ColorNever:
		return Palette{}
	default:
		return Palette{Enabled: t.IsTTY() && os.Getenv("NO_COLOR") == ""}
	}
}

// ANSI escape sequences
const (
	// Text attributes
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Foreground colors
	FgRed     = "\033[31m"
	FgGreen   = "\033[32m"
	FgYellow  = "\033[33m"
	FgBlue    = "\033[34m"
	FgMagenta = "\033[35m"
	FgCyan    = "\033[36m"

	// Bright foreground colors
	FgBrightBlack = "\033[90m"
	FgBrightGreen = "\033[92m"

	// Bell
	Bell = "\a"
)

// Palette applies ANSI styling when Enabled and passes text through
// unchanged otherwise.
type Palette struct {
	Enabled bool
}

// Style wraps s in the given codes.
func (p Palette) Style(s string, codes ...string) string {
	if !p.Enabled || len(codes) == 0 {
		return s
	}
	return Style(s, codes...)
}
