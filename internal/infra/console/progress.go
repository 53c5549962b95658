package console

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ScanProgress draws a progress bar for the subnet sweep.
type ScanProgress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

func NewScanProgress(w io.Writer, total int) *ScanProgress {
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(40))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name("scanning ")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	return &ScanProgress{progress: p, bar: bar}
}

// Increment is safe for concurrent use.
func (s *ScanProgress) Increment() {
	s.bar.Increment()
}

// Done completes the bar at its current count and waits for the final render.
func (s *ScanProgress) Done() {
	s.bar.SetTotal(-1, true)
	s.progress.Wait()
}
