package mock

import "github.com/fwojciec/novelex"

var _ novelex.Converter = (*Converter)(nil)

// Converter is a mock implementation of novelex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
