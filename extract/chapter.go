package extract

import (
	"strconv"
	"strings"

	"github.com/fwojciec/novelex"
)

type chapterField int

const (
	fieldNone chapterField = iota
	fieldNumber
	fieldTitle
	fieldDate
	fieldPrice
)

// chapterState holds the chapter under construction and the sticky lock
// flag. Once an item's number carries the lock glyph, following items start
// locked until one shows a number without it.
type chapterState struct {
	item   *chapterDraft
	sticky bool

	field chapterField
	depth int
	text  strings.Builder
	seen  bool

	out []novelex.Chapter
}

type chapterDraft struct {
	path        string
	hasPath     bool
	name        string
	releaseTime string
	number      int
	locked      bool
	classLocked bool
}

func (m *Machine) openChapters(ev novelex.Event) {
	c := &m.chapters
	if c.item == nil {
		if m.g.ChapterItem.Match(ev) {
			c.item = &chapterDraft{locked: c.sticky}
			if m.g.LockedItemClass != "" && ev.HasClass(m.g.LockedItemClass) {
				c.item.classLocked = true
			}
		}
		return
	}

	if !c.item.hasPath && m.g.ChapterLink.Match(ev) {
		if href, ok := ev.Attrs["href"]; ok {
			c.item.path = m.g.StripBase(href)
			c.item.hasPath = true
		}
	}

	if c.field != fieldNone {
		c.depth++
		return
	}

	switch {
	case m.g.ChapterNumber.Match(ev):
		m.startField(fieldNumber)
	case m.g.ChapterTitle.Match(ev):
		m.startField(fieldTitle)
	case m.g.ChapterDate.Match(ev):
		m.startField(fieldDate)
	case m.g.ChapterPrice.Match(ev):
		m.startField(fieldPrice)
	}
}

func (m *Machine) startField(f chapterField) {
	m.chapters.field = f
	m.chapters.depth = 1
	m.chapters.text.Reset()
	m.chapters.seen = false
}

func (m *Machine) textChapters(s string) {
	c := &m.chapters
	if c.item == nil || c.field == fieldNone {
		return
	}
	c.text.WriteString(s)
	c.seen = true
}

func (m *Machine) closeChapters(name string) {
	c := &m.chapters
	switch {
	case c.item != nil && c.field != fieldNone:
		c.depth--
		if c.depth == 0 {
			m.endField()
		}
	case c.item != nil && name == m.g.ChapterItemEnd:
		m.endItem()
	case c.item == nil && name == m.g.ChapterListEnd:
		m.mode = modeIdle
	}
}

func (m *Machine) endField() {
	c := &m.chapters
	f := c.field
	c.field = fieldNone
	c.depth = 0
	if !c.seen {
		return
	}
	s := c.text.String()
	d := c.item

	switch f {
	case fieldNumber:
		if strings.Contains(s, m.g.Glyph()) {
			d.locked = true
			c.sticky = true
		} else if c.sticky {
			d.locked = false
			c.sticky = false
		}
		if n := trailingNumber(strings.TrimSpace(s)); n > 0 {
			d.number = n
		}
	case fieldTitle:
		d.name = m.chapterTitle(s)
		if d.number == 0 {
			d.number = trailingNumber(d.name)
		}
	case fieldDate:
		d.releaseTime = strings.TrimSpace(s)
	case fieldPrice:
		d.locked = !m.keywords.IsFree(novelex.NormalizeValue(s))
	}
}

// chapterTitle trims s and removes a leading copy of the work's name.
func (m *Machine) chapterTitle(s string) string {
	t := strings.TrimSpace(s)
	name := m.work.Name
	if name == "" || !strings.HasPrefix(t, name) {
		return t
	}
	rest := strings.TrimSpace(strings.TrimLeft(t[len(name):], " \t\n-–—:|"))
	if rest == "" {
		return t
	}
	return rest
}

func (m *Machine) endItem() {
	c := &m.chapters
	d := c.item
	c.item = nil
	c.field = fieldNone
	c.depth = 0

	if !d.hasPath || d.path == "" || d.path == "#" {
		return
	}
	locked := d.locked || d.classLocked
	if locked && m.policy.HideLocked {
		return
	}
	name := d.name
	if locked {
		name = strings.TrimSpace(m.g.Glyph() + " " + name)
	}
	c.out = append(c.out, novelex.Chapter{
		Path:        d.path,
		Name:        name,
		ReleaseTime: d.releaseTime,
		Number:      d.number,
		Locked:      locked,
	})
}

// trailingNumber returns the decimal number at the end of s, or 0.
func trailingNumber(s string) int {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0
	}
	return n
}
