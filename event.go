package novelex

import (
	"iter"
	"strings"
)

// EventKind identifies the variant of a markup Event.
type EventKind int

// Markup event kinds, in the order a tokenizer reports them.
const (
	EventOpen EventKind = iota
	EventText
	EventClose
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventText:
		return "text"
	case EventClose:
		return "close"
	}
	return "unknown"
}

// Event is one unit of a document's linear open/text/close event stream.
// Events carry no positional metadata; their order is their only identity.
type Event struct {
	Kind  EventKind
	Name  string            // tag name for open and close events, lowercase
	Attrs map[string]string // open events only
	Text  string            // text events only
}

// OpenTag returns an open-tag event.
func OpenTag(name string, attrs map[string]string) Event {
	return Event{Kind: EventOpen, Name: name, Attrs: attrs}
}

// Text returns a text event.
func Text(content string) Event {
	return Event{Kind: EventText, Text: content}
}

// CloseTag returns a close-tag event.
func CloseTag(name string) Event {
	return Event{Kind: EventClose, Name: name}
}

// Attr returns the value of the named attribute, or "" when absent.
func (e Event) Attr(key string) string {
	return e.Attrs[key]
}

// HasClass reports whether the whitespace-separated class attribute
// contains cls as one of its tokens.
func (e Event) HasClass(cls string) bool {
	for _, c := range strings.Fields(e.Attrs["class"]) {
		if c == cls {
			return true
		}
	}
	return false
}

// Tokenizer turns a raw markup body into an ordered event stream.
//
// Implementations must preserve document order, report attributes as a
// string-keyed map and deliver whitespace-only text nodes unfiltered.
// Void elements (br, img, ...) are reported as an open event immediately
// followed by a close event. The sequence yields a non-nil error at most
// once, as its final element, when the body cannot be tokenized.
type Tokenizer interface {
	Tokenize(body string) iter.Seq2[Event, error]
}

// Events adapts a fixed slice of events to the sequence form consumed by
// an Extractor. It is mostly useful in tests.
func Events(events ...Event) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	}
}

// Stream adapts a tokenizer's output to the sequence form an Extractor
// consumes. The first tokenizer error ends the stream and is stored in *errp.
func Stream(seq iter.Seq2[Event, error], errp *error) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for ev, err := range seq {
			if err != nil {
				*errp = err
				return
			}
			if !yield(ev) {
				return
			}
		}
	}
}
