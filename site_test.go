package novelex_test

import (
	"testing"

	"github.com/fwojciec/novelex"
	"github.com/stretchr/testify/assert"
)

func TestSite_Validate(t *testing.T) {
	t.Parallel()

	grammar := &novelex.Grammar{
		BaseURL:        "https://knoxt.space/",
		ChapterList:    novelex.AnyOf{novelex.ClassContains("eplister")},
		ChapterListEnd: "ul",
		ChapterItem:    novelex.AnyOf{novelex.Tag("li")},
		ChapterItemEnd: "li",
	}

	t.Run("accepts complete site", func(t *testing.T) {
		t.Parallel()

		s := &novelex.Site{ID: "knoxt", Name: "KnoxT", Grammar: grammar}

		assert.NoError(t, s.Validate())
	})

	t.Run("requires ID", func(t *testing.T) {
		t.Parallel()

		s := &novelex.Site{Name: "KnoxT", Grammar: grammar}

		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(s.Validate()))
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		s := &novelex.Site{ID: "knoxt", Grammar: grammar}

		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(s.Validate()))
	})

	t.Run("requires grammar", func(t *testing.T) {
		t.Parallel()

		s := &novelex.Site{ID: "knoxt", Name: "KnoxT"}

		err := s.Validate()

		assert.Equal(t, novelex.EINVALID, novelex.ErrorCode(err))
		assert.Contains(t, novelex.ErrorMessage(err), "knoxt")
	})
}
