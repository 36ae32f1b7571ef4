package dataset

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progress is a file counter bar; a nil *progress does nothing.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgress(w io.Writer, total int) *progress {
	if w == nil || total <= 0 {
		return nil
	}
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Extracting: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.AverageETA(decor.ET_STYLE_GO),
		),
	)
	return &progress{p: p, bar: bar}
}

func (p *progress) increment() {
	if p == nil {
		return
	}
	p.bar.Increment()
}

func (p *progress) done(aborted bool) {
	if p == nil {
		return
	}
	if aborted {
		p.bar.Abort(false)
	}
	p.p.Wait()
}
