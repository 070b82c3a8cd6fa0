package fetch

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProgressPrinter renders download progress on a single terminal line.
type ProgressPrinter struct {
	w           io.Writer
	label       string
	printer     *message.Printer
	lastPercent int
	lastKB      int64
	started     bool
}

// NewProgressPrinter returns a printer writing "\rDownloading <label>..." lines to w.
func NewProgressPrinter(w io.Writer, label string) *ProgressPrinter {
	return &ProgressPrinter{
		w:           w,
		label:       label,
		printer:     message.NewPrinter(language.English),
		lastPercent: -1,
		lastKB:      -1,
	}
}

// Update is a ProgressFunc.
func (p *ProgressPrinter) Update(transferred, total int64) {
	if total > 0 {
		percent := int(transferred * 100 / total)
		if percent == p.lastPercent {
			return
		}
		p.lastPercent = percent
		p.started = true
		fmt.Fprintf(p.w, "\rDownloading %s... %d%%", p.label, percent)
		return
	}

	// Unknown size: report whole kilobytes with thousands separators.
	kb := transferred / 1024
	if kb == p.lastKB {
		return
	}
	p.lastKB = kb
	p.started = true
	p.printer.Fprintf(p.w, "\rDownloading %s... %d KB", p.label, kb)
}

// Finish terminates the progress line if anything was printed.
func (p *ProgressPrinter) Finish() {
	if p.started {
		fmt.Fprintln(p.w)
		p.started = false
	}
}
