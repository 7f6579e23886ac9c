package output

import (
	"strings"

	"github.com/manav03panchal/weekly/internal/render"
)

// PlainFormatter prints one tab-separated line per item for scripts.
type PlainFormatter struct {
	*Formatter
}

// NewPlainFormatter creates a new plain formatter.
func NewPlainFormatter(f *Formatter) *PlainFormatter {
	return &PlainFormatter{Formatter: f}
}

// PrintWeek prints "day<TAB>done<TAB>priority<TAB>name" lines in display
// order. Names have tabs replaced so columns stay intact.
func (p *PlainFormatter) PrintWeek(days []render.Day) {
	for _, d := range days {
		for _, it := range d.Items {
			done := "0"
			if it.Completed {
				done = "1"
			}
			prio := it.Priority
			if prio == "" {
				prio = "-"
			}
			p.Printf("%d\t%s\t%s\t%s\n", int(d.Day), done, prio, strings.ReplaceAll(it.Name, "\t", " "))
		}
	}
}
