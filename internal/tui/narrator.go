package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/thruflo/kaprekar/internal/routine"
)

// Narrator prints a run as it progresses. Pass Observe to
// routine.Simulator.Subscribe.
//
// Each trajectory value is printed once, preceded by the subtraction that
// produced it. When the run ends a summary box follows. Snapshots older
// than the last one handled are ignored.
type Narrator struct {
	out     io.Writer
	width   int
	palette Palette
	bell    bool

	mu       sync.Mutex
	version  uint64
	entries  int
	finished bool
}

// NarratorOptions configures a Narrator.
type NarratorOptions struct {
	Width   int     // Summary box width; DefaultWidth if zero
	Palette Palette // Styling
	Bell    bool    // Ring the terminal bell when the constant is reached
}

// NewNarrator creates a Narrator writing to out.
func NewNarrator(out io.Writer, opts NarratorOptions) *Narrator {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return &Narrator{
		out:     out,
		width:   width,
		palette: opts.Palette,
		bell:    opts.Bell,
	}
}

// Observe handles a snapshot.
func (n *Narrator) Observe(snap routine.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if snap.Version != 0 && snap.Version <= n.version {
		return
	}
	n.version = snap.Version

	if snap.State == routine.StateIdle {
		n.entries = 0
		n.finished = false
		return
	}

	if snap.State == routine.StateInvalid {
		if !n.finished {
			fmt.Fprintln(n.out, n.palette.Style("error: "+snap.Error, FgRed))
			n.finished = true
		}
		return
	}

	for n.entries < len(snap.Trajectory) {
		i := n.entries
		if i > 0 && i-1 < len(snap.Steps) {
			for _, line := range RenderStep(snap.Steps[i-1], n.palette) {
				fmt.Fprintln(n.out, line)
			}
		}
		fmt.Fprintln(n.out, RenderEntry(i+1, snap.Trajectory[i], n.palette))
		n.entries++
	}

	if snap.State.Terminal() && !n.finished {
		n.finished = true
		fmt.Fprintln(n.out)
		for _, line := range RenderSummary(snap, n.width, n.palette) {
			fmt.Fprintln(n.out, line)
		}
		if n.bell && snap.State == routine.StateReached {
			fmt.Fprint(n.out, Bell)
		}
	}
}

// WriteIntro prints the routine's description wrapped to the box width.
func (n *Narrator) WriteIntro() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, line := range WrapText(Intro, n.width) {
		fmt.Fprintln(n.out, n.palette.Style(line, Dim))
	}
	fmt.Fprintln(n.out)
}
