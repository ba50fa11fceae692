package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	fcolor "github.com/fatih/color"
	"golang.org/x/term"
)

const indicatorTickInterval = 100 * time.Millisecond

func getSpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// Indicator shows a single "waiting" line while something is in progress.
//
// On a terminal the line is animated in place and erased when stopped. Elsewhere
// (CI, pipes, tests) the label is printed once on Start and nothing is erased.
type Indicator struct {
	label  string
	writer io.Writer
	isTTY  bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewIndicator creates an indicator writing to writer (os.Stdout when nil).
func NewIndicator(label string, writer io.Writer) *Indicator {
	if writer == nil {
		writer = os.Stdout
	}

	isTTY := false
	if file, ok := writer.(*os.File); ok {
		isTTY = term.IsTerminal(int(file.Fd()))
	}

	return &Indicator{label: label, writer: writer, isTTY: isTTY}
}

// Start shows the indicator. Calling Start on a running indicator is a no-op.
func (ind *Indicator) Start() {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	if ind.running {
		return
	}

	ind.running = true

	if !ind.isTTY {
		WriteMessage(Message{Type: ActivityType, Content: ind.label, Writer: ind.writer})

		return
	}

	ind.stop = make(chan struct{})
	ind.done = make(chan struct{})

	go ind.spin(ind.stop, ind.done)
}

// Stop hides the indicator. Calling Stop on a stopped indicator is a no-op.
func (ind *Indicator) Stop() {
	ind.mu.Lock()

	if !ind.running {
		ind.mu.Unlock()

		return
	}

	ind.running = false
	stop, done := ind.stop, ind.done
	ind.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	<-done
}

// Running reports whether the indicator is shown.
func (ind *Indicator) Running() bool {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	return ind.running
}

func (ind *Indicator) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	frames := getSpinnerFrames()
	color := fcolor.New(fcolor.FgCyan)
	ticker := time.NewTicker(indicatorTickInterval)

	defer ticker.Stop()

	for frame := 0; ; frame = (frame + 1) % len(frames) {
		_, _ = color.Fprintf(ind.writer, "\r\033[K%s %s", frames[frame], ind.label)

		select {
		case <-stop:
			_, _ = fmt.Fprint(ind.writer, "\r\033[K")

			return
		case <-ticker.C:
		}
	}
}
