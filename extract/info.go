package extract

import (
	"strings"

	"github.com/fwojciec/novelex"
)

// unknownCredit stands in for an author or artist whose label had no value.
const unknownCredit = "Unknown"

// infoState tracks the label/value pairs of the info block. A label
// element selects a field; text that follows while the label is open is
// the field's value. depth counts nested InfoEnd elements so only the
// block's own close ends it.
type infoState struct {
	readingLabel bool
	field        novelex.Field
	captured     bool
	depth        int
}

func (m *Machine) openInfo(ev novelex.Event) {
	// A genre container nested in an info block ends the block.
	if m.g.GenreList.Match(ev) {
		m.endInfo()
		m.openIdle(ev)
		return
	}
	if ev.Name == m.g.InfoEnd {
		m.info.depth++
	}
	if m.g.InfoLabel.Match(ev) {
		m.info.readingLabel = true
	}
}

func (m *Machine) textInfo(s string) {
	if !m.info.readingLabel || strings.TrimSpace(s) == "" {
		return
	}
	label := novelex.NormalizeLabel(s)

	switch m.info.field {
	case novelex.FieldAuthor:
		m.work.Author += s
		m.info.captured = true
	case novelex.FieldArtist:
		m.work.Artist += s
		m.info.captured = true
	case novelex.FieldStatus:
		m.work.Status = m.keywords.Status(label)
		m.info.captured = true
	}

	if f := m.keywords.Field(label); f != novelex.FieldNone {
		m.info.field = f
		m.info.captured = false
	}
}

func (m *Machine) closeInfo(name string) {
	if m.info.readingLabel && name == m.g.InfoLabelEnd {
		// A label that selected a field stays open until the field has a value.
		if m.info.field != novelex.FieldNone && !m.info.captured {
			return
		}
		m.info.readingLabel = false
		m.info.field = novelex.FieldNone
		m.info.captured = false
		return
	}
	if name != m.g.InfoEnd {
		return
	}
	if m.info.depth > 0 {
		m.info.depth--
		return
	}
	m.endInfo()
}

func (m *Machine) endInfo() {
	m.work.Author = strings.TrimSpace(m.work.Author)
	m.work.Artist = strings.TrimSpace(m.work.Artist)
	if m.info.readingLabel && !m.info.captured {
		switch {
		case m.info.field == novelex.FieldAuthor && m.work.Author == "":
			m.work.Author = unknownCredit
		case m.info.field == novelex.FieldArtist && m.work.Artist == "":
			m.work.Artist = unknownCredit
		}
	}
	m.info = infoState{}
	m.mode = modeIdle
}
