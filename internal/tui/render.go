package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thruflo/kaprekar/internal/kaprekar"
	"github.com/thruflo/kaprekar/internal/routine"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// Intro describes the routine. Shown before a run unless quiet.
const Intro = "Kaprekar's constant (6174) is reached when you take any four-digit " +
	"number whose digits are not all the same, arrange its digits in " +
	"descending and ascending order, and subtract the smaller from the " +
	"larger. Repeat with the result and you arrive at 6174 within seven steps."

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	lines := make([]string, 0, len(content)+2)

	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTopRight)
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, innerWidth)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)

	return lines
}

// PadOrTruncate pads or truncates a string to exactly width characters.
// Uses visual width (rune count) for proper Unicode handling.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runeLen := utf8.RuneCountInString(s)
	if runeLen == width {
		return s
	}
	if runeLen < width {
		return s + strings.Repeat(" ", width-runeLen)
	}

	runes := []rune(s)
	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	lines = append(lines, currentLine)

	return lines
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// StateColor returns the color used for a run state.
func StateColor(state routine.RunState) string {
	switch state {
	case routine.StateRunning:
		return FgCyan
	case routine.StateReached:
		return FgBrightGreen
	case routine.StateStalled:
		return FgYellow
	case routine.StateInvalid:
		return FgRed
	default:
		return FgBrightBlack
	}
}

// RenderEntry renders trajectory value n at 1-based position index. The
// value is zero-padded for display; 6174 gets a badge.
func RenderEntry(index, n int, p Palette) string {
	line := fmt.Sprintf("%2d %s %s", index, BoxVertical, p.Style(kaprekar.Pad(n), Bold))
	if n == kaprekar.Constant {
		line += "  " + p.Style("Kaprekar's constant!", FgBrightGreen, Bold)
	}
	return line
}

// RenderStep renders the subtraction that produced the next value.
func RenderStep(step kaprekar.Step, p Palette) []string {
	gutter := "   " + BoxVertical + " "
	return []string{
		gutter + "  " + kaprekar.Pad(step.Descending) + p.Style("  descending", Dim),
		gutter + "- " + kaprekar.Pad(step.Ascending) + p.Style("  ascending", Dim),
		gutter + "= " + p.Style(kaprekar.Pad(step.Difference), FgBlue),
	}
}

// RenderTrajectory joins padded trajectory values with arrows.
func RenderTrajectory(trajectory []int) string {
	parts := make([]string, len(trajectory))
	for i, n := range trajectory {
		parts[i] = kaprekar.Pad(n)
	}
	return strings.Join(parts, " → ")
}

// Outcome returns a one-line description of a finished or failed run.
func Outcome(snap routine.Snapshot) string {
	steps := len(snap.Steps)
	switch snap.State {
	case routine.StateReached:
		return fmt.Sprintf("reached %d after %s", kaprekar.Constant, plural(steps, "step"))
	case routine.StateStalled:
		last, _ := snap.Current()
		return fmt.Sprintf("stopped at %s after %s without reaching %d", kaprekar.Pad(last), plural(steps, "step"), kaprekar.Constant)
	case routine.StateInvalid:
		return snap.Error
	default:
		return snap.State.String()
	}
}

// RenderSummary renders a boxed summary of a snapshot. Styling is applied
// after padding so escape codes never affect the box width.
func RenderSummary(snap routine.Snapshot, width int, p Palette) []string {
	content := []string{"state: " + snap.State.String()}
	if len(snap.Trajectory) > 0 {
		content = append(content, "path:  "+RenderTrajectory(snap.Trajectory))
	}
	content = append(content, Outcome(snap))

	lines := BoxWithContent(width, content)
	if len(lines) > 1 {
		lines[1] = p.Style(lines[1], StateColor(snap.State))
	}
	return lines
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
