package worktype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	types := All()
	assert.Len(t, types, 11)
	assert.Equal(t, ConferenceItem, types[0])
	assert.Equal(t, ArchivalResource, types[10])

	// Callers get a copy.
	types[0] = "Mutated"
	assert.Equal(t, ConferenceItem, All()[0])
}

func TestKey(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{ConferenceItem, "conference_item"},
		{Dataset, "dataset"},
		{DigitalArchivalObject, "digital_archival_object"},
		{JournalArticle, "journal_article"},
		{InformationSheet, "information_sheet"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Key())
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("Thesis")
	require.NoError(t, err)
	assert.Equal(t, Thesis, got)

	got, err = Parse("exam_paper")
	require.NoError(t, err)
	assert.Equal(t, ExamPaper, got)

	_, err = Parse("Podcast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported model "Podcast"`)
	assert.Contains(t, err.Error(), "ConferenceItem, Dataset")
}

func TestIsValid(t *testing.T) {
	for _, typ := range All() {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, Type("Podcast").IsValid())
}

func TestLookup(t *testing.T) {
	for _, typ := range All() {
		t.Run(string(typ), func(t *testing.T) {
			d, ok := Lookup(typ)
			require.True(t, ok)
			assert.NotEmpty(t, d.Extra)
			assert.NotEmpty(t, d.ClassIRI)
		})
	}

	d, _ := Lookup(Dataset)
	assert.Len(t, d.Required, 6)

	d, _ = Lookup(Thesis)
	assert.Nil(t, d.Required)
	assert.Len(t, d.Extra, 6)

	_, ok := Lookup("Podcast")
	assert.False(t, ok)
}

func TestLookupReturnsCopies(t *testing.T) {
	d, _ := Lookup(Image)
	d.Extra[0] = "mutated"

	again, _ := Lookup(Image)
	assert.Equal(t, "brand", again.Extra[0])
}
