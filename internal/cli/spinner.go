package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner animates a status line with the elapsed time while a layout or
// render runs. It stops on Stop or when its context ends, and always leaves
// the line blank.
type Spinner struct {
	message string
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc

	start   sync.Once
	stop    sync.Once
	stopped chan struct{}
	width   int
}

// newSpinner draws on stderr when it is a terminal and does nothing
// otherwise, so piped or redirected output stays clean.
func newSpinner(ctx context.Context, message string) *Spinner {
	var w io.Writer = io.Discard
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		w = os.Stderr
	}
	return newSpinnerTo(ctx, w, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Later calls are ignored.
func (s *Spinner) Start() {
	s.start.Do(func() {
		go s.run(time.Now())
	})
}

func (s *Spinner) run(begin time.Time) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%*s\r", s.width, "")
			return
		case <-ticker.C:
			text := fmt.Sprintf("%s %s", s.message, time.Since(begin).Truncate(100*time.Millisecond))
			s.width = max(s.width, len(text)+2)
			fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]), StyleDim.Render(text))
		}
	}
}

// Stop ends the animation and waits for the line to be cleared. It is safe
// to call more than once, and before Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.start.Do(func() { close(s.stopped) })
		s.cancel()
		<-s.stopped
	})
}
