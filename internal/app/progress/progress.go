// Package progress renders a terminal spinner while a transcription request
// is in flight.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Config controls whether and where the spinner is rendered.
type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Spinner is an indeterminate progress indicator for a single in-flight
// call.
type Spinner struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
}

// Start renders a spinner with the given description. When disabled it
// returns a no-op spinner.
func Start(config Config, description string) *Spinner {
	if !config.Enabled {
		return &Spinner{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.New(1,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(decor.Name(description)),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		mpb.BarRemoveOnComplete(),
	)

	return &Spinner{container: container, bar: bar, enabled: true}
}

// Stop completes the spinner and waits for the final render.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.bar.Increment()
	s.container.Wait()
}
