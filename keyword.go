package novelex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field is an info-block field selected by a label.
type Field int

// Info-block fields.
const (
	FieldNone Field = iota
	FieldAuthor
	FieldArtist
	FieldStatus
)

// TimeUnit is the granularity of a relative date.
type TimeUnit int

// Time units, in ascending granularity.
const (
	UnitSecond TimeUnit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// UnitWords lists the keywords that name one time unit.
type UnitWords struct {
	Unit  TimeUnit
	Words []string
}

// Keywords holds the multilingual keyword tables used to normalize free
// text. New locales are data additions; see the yaml package for the
// default table.
type Keywords struct {
	statuses map[string]Status
	fields   map[string]Field
	free     map[string]struct{}
	units    []UnitWords
}

// NewKeywords builds keyword tables. Keys of statuses and fields are
// normalized with NormalizeLabel, free words with NormalizeValue. Units
// are matched in the order given, which should be ascending granularity.
func NewKeywords(statuses map[string]Status, fields map[string]Field, free []string, units []UnitWords) *Keywords {
	k := &Keywords{
		statuses: make(map[string]Status, len(statuses)),
		fields:   make(map[string]Field, len(fields)),
		free:     make(map[string]struct{}, len(free)),
		units:    units,
	}
	for word, s := range statuses {
		k.statuses[NormalizeLabel(word)] = s
	}
	for word, f := range fields {
		k.fields[NormalizeLabel(word)] = f
	}
	for _, word := range free {
		k.free[NormalizeValue(word)] = struct{}{}
	}
	return k
}

// NormalizeLabel lowercases s, removes its first colon and trims it.
func NormalizeLabel(s string) string {
	return strings.TrimSpace(strings.Replace(strings.ToLower(s), ":", "", 1))
}

// NormalizeValue lowercases and trims s.
func NormalizeValue(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Status returns the status named by a normalized label, or StatusUnknown.
func (k *Keywords) Status(label string) Status {
	if s, ok := k.statuses[label]; ok {
		return s
	}
	return StatusUnknown
}

// Field returns the field named by a normalized label, or FieldNone.
func (k *Keywords) Field(label string) Field {
	return k.fields[label]
}

// IsFree reports whether a normalized price marks a free chapter.
func (k *Keywords) IsFree(price string) bool {
	_, ok := k.free[price]
	return ok
}

// Unit returns the first unit, in table order, with a keyword found in s.
// Latin-script keywords only match at the start of a word, so "day" is
// found in "3 days ago" but not in "Monday".
func (k *Keywords) Unit(s string) (TimeUnit, bool) {
	for _, u := range k.units {
		for _, w := range u.Words {
			if w != "" && containsWord(s, w) {
				return u.Unit, true
			}
		}
	}
	return 0, false
}

func containsWord(s, w string) bool {
	first, _ := utf8.DecodeRuneInString(w)
	latin := unicode.Is(unicode.Latin, first)
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], w)
		if i < 0 {
			return false
		}
		i += off
		if !latin || i == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsLetter(prev) {
			return true
		}
		off = i + len(w)
	}
	return false
}
