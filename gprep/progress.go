package gprep

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Progress counts records during a single pass and periodically logs how far along
// the pass is.  It never affects the result of an operation.
type Progress struct {
	name     string
	interval int
	count    int
	start    time.Time

	// report is called every interval records; defaults to an Infof line.
	report func(name string, count int, elapsed time.Duration)
}

// NewProgress returns a progress counter for the named pass.  An interval <= 0 only
// logs the final summary.
func NewProgress(name string, interval int) *Progress {
	return &Progress{
		name:     name,
		interval: interval,
		start:    time.Now(),
		report:   logProgress,
	}
}

// OnReport replaces the default log line with a callback.
func (p *Progress) OnReport(fn func(name string, count int, elapsed time.Duration)) {
	p.report = fn
}

// Incr records one more processed record.
func (p *Progress) Incr() {
	p.count++
	if p.interval > 0 && p.count%p.interval == 0 && p.report != nil {
		p.report(p.name, p.count, time.Since(p.start))
	}
}

// Count returns the number of records seen so far.
func (p *Progress) Count() int {
	return p.count
}

// Done logs a summary for the pass and returns the record count.
func (p *Progress) Done() int {
	elapsed := time.Since(p.start)
	Infof("%s: %s records in %s (%s/sec)\n", p.name, humanize.Comma(int64(p.count)),
		elapsed.Round(time.Millisecond), humanize.Comma(rate(p.count, elapsed)))
	return p.count
}

func logProgress(name string, count int, elapsed time.Duration) {
	Infof("%s: %s records (%s/sec)\n", name, humanize.Comma(int64(count)), humanize.Comma(rate(count, elapsed)))
}

func rate(count int, elapsed time.Duration) int64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return int64(count)
	}
	return int64(float64(count) / secs)
}
