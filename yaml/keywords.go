// Package yaml loads the keyword tables and site catalog from YAML
// resources. Defaults are embedded in the binary.
package yaml

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/fwojciec/novelex"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywords []byte

//go:embed sites.yaml
var defaultSites []byte

type keywordsFile struct {
	Statuses map[string][]string `yaml:"statuses"`
	Fields   map[string][]string `yaml:"fields"`
	Free     []string            `yaml:"free"`
	Units    []struct {
		Unit  string   `yaml:"unit"`
		Words []string `yaml:"words"`
	} `yaml:"units"`
}

var statusNames = map[string]novelex.Status{
	"ongoing":   novelex.StatusOngoing,
	"completed": novelex.StatusCompleted,
	"hiatus":    novelex.StatusOnHiatus,
}

var fieldNames = map[string]novelex.Field{
	"author": novelex.FieldAuthor,
	"artist": novelex.FieldArtist,
	"status": novelex.FieldStatus,
}

var unitNames = map[string]novelex.TimeUnit{
	"second": novelex.UnitSecond,
	"minute": novelex.UnitMinute,
	"hour":   novelex.UnitHour,
	"day":    novelex.UnitDay,
	"week":   novelex.UnitWeek,
	"month":  novelex.UnitMonth,
	"year":   novelex.UnitYear,
}

// DefaultKeywords returns the embedded keyword tables.
func DefaultKeywords() (*novelex.Keywords, error) {
	return LoadKeywords(bytes.NewReader(defaultKeywords))
}

// LoadKeywords parses keyword tables from r.
// Returns EINVALID if the document names an unknown status, field or unit.
func LoadKeywords(r io.Reader) (*novelex.Keywords, error) {
	var f keywordsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse keywords: %w", err)
	}

	statuses := make(map[string]novelex.Status)
	for name, words := range f.Statuses {
		s, ok := statusNames[name]
		if !ok {
			return nil, novelex.Errorf(novelex.EINVALID, "unknown status %q", name)
		}
		for _, w := range words {
			statuses[w] = s
		}
	}

	fields := make(map[string]novelex.Field)
	for name, words := range f.Fields {
		field, ok := fieldNames[name]
		if !ok {
			return nil, novelex.Errorf(novelex.EINVALID, "unknown field %q", name)
		}
		for _, w := range words {
			fields[w] = field
		}
	}

	units := make([]novelex.UnitWords, 0, len(f.Units))
	for _, u := range f.Units {
		unit, ok := unitNames[u.Unit]
		if !ok {
			return nil, novelex.Errorf(novelex.EINVALID, "unknown time unit %q", u.Unit)
		}
		units = append(units, novelex.UnitWords{Unit: unit, Words: u.Words})
	}

	return novelex.NewKeywords(statuses, fields, f.Free, units), nil
}
