package novelex_test

import (
	"testing"

	"github.com/fwojciec/novelex"
	"github.com/stretchr/testify/assert"
)

func newTestKeywords() *novelex.Keywords {
	return novelex.NewKeywords(
		map[string]novelex.Status{
			"Ongoing":   novelex.StatusOngoing,
			"en cours":  novelex.StatusOngoing,
			"Completed": novelex.StatusCompleted,
			"hiatus":    novelex.StatusOnHiatus,
		},
		map[string]novelex.Field{
			"Author:": novelex.FieldAuthor,
			"artiste": novelex.FieldArtist,
			"status":  novelex.FieldStatus,
		},
		[]string{"", "Free", "gratuit"},
		[]novelex.UnitWords{
			{Unit: novelex.UnitSecond, Words: []string{"second"}},
			{Unit: novelex.UnitMinute, Words: []string{"min"}},
			{Unit: novelex.UnitDay, Words: []string{"day", "jour"}},
		},
	)
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "status", novelex.NormalizeLabel("  Status: "))
	assert.Equal(t, "a:b", novelex.NormalizeLabel("A::B"))
	assert.Equal(t, "statut", novelex.NormalizeLabel("Statut :"))
	assert.Empty(t, novelex.NormalizeLabel("  "))
}

func TestKeywords_Status(t *testing.T) {
	t.Parallel()

	k := newTestKeywords()

	assert.Equal(t, novelex.StatusOngoing, k.Status("ongoing"))
	assert.Equal(t, novelex.StatusOngoing, k.Status("en cours"))
	assert.Equal(t, novelex.StatusCompleted, k.Status("completed"))
	assert.Equal(t, novelex.StatusOnHiatus, k.Status("hiatus"))
	assert.Equal(t, novelex.StatusUnknown, k.Status("dropped"))
}

func TestKeywords_Field(t *testing.T) {
	t.Parallel()

	k := newTestKeywords()

	assert.Equal(t, novelex.FieldAuthor, k.Field("author"))
	assert.Equal(t, novelex.FieldArtist, k.Field("artiste"))
	assert.Equal(t, novelex.FieldStatus, k.Field("status"))
	assert.Equal(t, novelex.FieldNone, k.Field("type"))
}

func TestKeywords_IsFree(t *testing.T) {
	t.Parallel()

	k := newTestKeywords()

	assert.True(t, k.IsFree(""))
	assert.True(t, k.IsFree("free"))
	assert.True(t, k.IsFree("gratuit"))
	assert.False(t, k.IsFree("50 coins"))
}

func TestKeywords_Unit(t *testing.T) {
	t.Parallel()

	k := newTestKeywords()

	t.Run("matches keyword substring", func(t *testing.T) {
		t.Parallel()

		u, ok := k.Unit("il y a 3 jours")

		assert.True(t, ok)
		assert.Equal(t, novelex.UnitDay, u)
	})

	t.Run("checks units in table order", func(t *testing.T) {
		t.Parallel()

		// "seconds" is checked before "min" would ever be considered.
		u, ok := k.Unit("5 seconds ago")

		assert.True(t, ok)
		assert.Equal(t, novelex.UnitSecond, u)
	})

	t.Run("ignores keyword inside a word", func(t *testing.T) {
		t.Parallel()

		_, ok := k.Unit("monday, 1 july 2024")

		assert.False(t, ok)
	})

	t.Run("matches keyword after digits", func(t *testing.T) {
		t.Parallel()

		u, ok := k.Unit("3days ago")

		assert.True(t, ok)
		assert.Equal(t, novelex.UnitDay, u)
	})

	t.Run("reports no match", func(t *testing.T) {
		t.Parallel()

		_, ok := k.Unit("March 3, 2024")

		assert.False(t, ok)
	})
}
