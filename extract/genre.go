package extract

import (
	"strings"

	"github.com/fwojciec/novelex"
)

type genreState struct {
	reading bool
	tag     string
	current strings.Builder
	genres  []string
}

func (m *Machine) openGenres(ev novelex.Event) {
	if m.genre.reading || !m.g.GenreItem.Match(ev) {
		return
	}
	m.genre.reading = true
	m.genre.tag = ev.Name
	m.genre.current.Reset()
}

func (m *Machine) textGenres(s string) {
	if m.genre.reading {
		m.genre.current.WriteString(s)
	}
}

func (m *Machine) closeGenres(name string) {
	if m.genre.reading {
		if name == m.genre.tag {
			m.endGenre()
		}
		return
	}
	m.mode = modeIdle
}

// endGenre records the fragments read inside one link as a single genre.
func (m *Machine) endGenre() {
	if g := strings.TrimSpace(m.genre.current.String()); g != "" {
		m.genre.genres = append(m.genre.genres, g)
	}
	m.genre.current.Reset()
	m.genre.reading = false
}

func (m *Machine) endGenres() {
	if m.genre.reading {
		m.endGenre()
	}
	m.mode = modeIdle
}
