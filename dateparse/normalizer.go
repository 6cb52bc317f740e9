// Package dateparse resolves chapter release times to calendar dates.
package dateparse

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/novelex"
)

// Layout is the output format of resolved dates.
const Layout = "2006-01-02"

// Ensure Normalizer implements novelex.DateNormalizer at compile time.
var _ novelex.DateNormalizer = (*Normalizer)(nil)

// Normalizer resolves relative dates ("3 days ago", "il y a 2 heures")
// using the keyword tables and falls back to absolute date parsing.
type Normalizer struct {
	keywords *novelex.Keywords
}

// NewNormalizer creates a Normalizer using the given keyword tables.
func NewNormalizer(keywords *novelex.Keywords) *Normalizer {
	return &Normalizer{keywords: keywords}
}

// Normalize returns raw resolved against now, or raw unchanged when it
// contains no number or cannot be parsed.
func (n *Normalizer) Normalize(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	amount, ok := firstNumber(s)
	if !ok {
		return raw
	}

	unit, ok := n.keywords.Unit(strings.ToLower(s))
	if !ok {
		t, err := dateparse.ParseIn(trimWeekday(s), now.Location())
		if err != nil {
			return raw
		}
		return t.Format(Layout)
	}
	return subtract(now, amount, unit).Format(Layout)
}

// trimWeekday drops a leading "Monday, " style word and comma.
func trimWeekday(s string) string {
	i := strings.IndexByte(s, ',')
	if i <= 0 || strings.IndexFunc(s[:i], func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}

func subtract(now time.Time, n int, unit novelex.TimeUnit) time.Time {
	switch unit {
	case novelex.UnitSecond:
		return now.Add(-time.Duration(n) * time.Second)
	case novelex.UnitMinute:
		return now.Add(-time.Duration(n) * time.Minute)
	case novelex.UnitHour:
		return now.Add(-time.Duration(n) * time.Hour)
	case novelex.UnitDay:
		return now.AddDate(0, 0, -n)
	case novelex.UnitWeek:
		return now.AddDate(0, 0, -7*n)
	case novelex.UnitMonth:
		return now.AddDate(0, -n, 0)
	case novelex.UnitYear:
		return now.AddDate(-n, 0, 0)
	}
	return now
}

// firstNumber returns the first run of decimal digits in s.
func firstNumber(s string) (int, bool) {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
