package extract

import (
	"slices"
	"strings"

	"github.com/fwojciec/novelex"
)

// summaryState tracks nesting inside the description container. Text is
// kept only at depth one, which excludes nested script and widget blocks.
type summaryState struct {
	depth int
	tag   string
	buf   strings.Builder
}

func (m *Machine) isBoundary(name string) bool {
	return name == m.summary.tag || slices.Contains(m.g.SummaryBoundary, name)
}

func (m *Machine) openSummary(ev novelex.Event) {
	if m.isBoundary(ev.Name) {
		m.summary.depth++
	}
}

func (m *Machine) textSummary(s string) {
	if m.summary.depth != 1 || strings.TrimSpace(s) == "" {
		return
	}
	m.summary.buf.WriteString(s)
}

func (m *Machine) closeSummary(name string) {
	switch name {
	case "p":
		m.summary.buf.WriteString("\n\n")
	case "br":
		m.summary.buf.WriteString("\n")
	}
	if !m.isBoundary(name) {
		return
	}
	m.summary.depth--
	if m.summary.depth == 0 {
		m.mode = modeIdle
	}
}
