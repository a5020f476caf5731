package repository

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

func TestWorkTypeTriples(t *testing.T) {
	r := resolver.New(resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, r.SetSelectedModels(worktype.Thesis))

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	triples, err := WorkTypeTriples(r, "propset.test", now)
	require.NoError(t, err)

	// class, 33 fields, 4 required
	require.Len(t, triples, 1+33+4)

	assert.Equal(t, "propset.worktype.thesis", triples[0].Subject)
	assert.Equal(t, WorkTypeClass, triples[0].Predicate)
	assert.Equal(t, "https://bib.schema.org/Thesis", triples[0].Object)

	counts := map[string]int{}
	for _, tr := range triples {
		counts[tr.Predicate]++
		assert.Equal(t, "propset.test", tr.Source)
		assert.Equal(t, now, tr.Timestamp)
		assert.InDelta(t, 1.0, tr.Confidence, 0.0001)
	}
	assert.Equal(t, 33, counts[WorkTypeHasField])
	assert.Equal(t, 4, counts[WorkTypeRequiresField])
	assert.Equal(t, Predicate("title"), triples[len(triples)-4].Object)
}

func TestWorkTypeTriplesCoverSelectedModels(t *testing.T) {
	r := resolver.New(resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	triples, err := WorkTypeTriples(r, "propset.test", time.Now())
	require.NoError(t, err)

	subjects := map[string]bool{}
	for _, tr := range triples {
		subjects[tr.Subject] = true
	}
	assert.Len(t, subjects, len(worktype.All()))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		entityID string
		want     worktype.Type
		ok       bool
	}{
		{"propset.worktype.thesis", worktype.Thesis, true},
		{"propset.worktype.digital_archival_object", worktype.DigitalArchivalObject, true},
		{"propset.worktype.painting", "", false},
		{"repository.field.title", "", false},
		{"propset.worktype.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entityID, func(t *testing.T) {
			got, ok := TypeOf(tt.entityID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
