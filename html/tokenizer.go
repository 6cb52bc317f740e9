// Package html turns markup into the novelex event stream using the
// golang.org/x/net/html tokenizer.
package html

import (
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/fwojciec/novelex"
	"golang.org/x/net/html"
)

// Ensure Tokenizer implements novelex.Tokenizer at compile time.
var _ novelex.Tokenizer = (*Tokenizer)(nil)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithMaxBuffer limits the bytes buffered for a single token. Bodies with a
// longer token fail with EMALFORMED. Zero means no limit.
func WithMaxBuffer(n int) Option {
	return func(t *Tokenizer) {
		t.maxBuf = n
	}
}

// Tokenizer reports open, text and close events in document order.
// Comments and doctypes are skipped. Entities in text and attribute values
// are decoded. Void and self-closing elements yield an open event followed
// by a close event.
type Tokenizer struct {
	maxBuf int
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the event stream of body.
func (t *Tokenizer) Tokenize(body string) iter.Seq2[novelex.Event, error] {
	return func(yield func(novelex.Event, error) bool) {
		z := html.NewTokenizer(strings.NewReader(body))
		if t.maxBuf > 0 {
			z.SetMaxBuf(t.maxBuf)
		}

		for {
			switch z.Next() {
			case html.ErrorToken:
				if err := z.Err(); !errors.Is(err, io.EOF) {
					yield(novelex.Event{}, novelex.Errorf(novelex.EMALFORMED, "could not tokenize page: %v", err))
				}
				return

			case html.TextToken:
				if !yield(novelex.Text(string(z.Text())), nil) {
					return
				}

			case html.StartTagToken:
				name, attrs := readTag(z)
				if !yield(novelex.OpenTag(name, attrs), nil) {
					return
				}
				if voidElements[name] && !yield(novelex.CloseTag(name), nil) {
					return
				}

			case html.SelfClosingTagToken:
				name, attrs := readTag(z)
				if !yield(novelex.OpenTag(name, attrs), nil) {
					return
				}
				if !yield(novelex.CloseTag(name), nil) {
					return
				}

			case html.EndTagToken:
				name, _ := z.TagName()
				// Void elements were closed when opened.
				if voidElements[string(name)] {
					continue
				}
				if !yield(novelex.CloseTag(string(name)), nil) {
					return
				}
			}
		}
	}
}

// readTag returns the current tag's name and attributes. The first
// occurrence of a repeated attribute wins.
func readTag(z *html.Tokenizer) (string, map[string]string) {
	name, more := z.TagName()
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		k := string(key)
		if _, seen := attrs[k]; !seen {
			attrs[k] = string(val)
		}
	}
	return string(name), attrs
}
