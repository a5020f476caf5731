package publish

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/vocabulary/repository"
	"github.com/c360studio/propset/worktype"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
	calls   int
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.calls++
	f.subject = subject
	f.data = data
	return f.err
}

func finalized(t *testing.T) *resolver.Resolver {
	t.Helper()
	r := resolver.New(resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, r.SetSelectedModels(worktype.Thesis, worktype.Dataset))
	require.NoError(t, r.SetRestrictedEnabled(true))
	require.NoError(t, r.Finalize())
	return r
}

func TestNewSnapshot(t *testing.T) {
	s, err := NewSnapshot(finalized(t))
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Thesis", "Dataset"}, s.SelectedModels)
	assert.Len(t, s.WorkTypes["Thesis"].Fields, 33)
	assert.Equal(t, []string{"creator", "title", "publisher", "date_published", "resource_type_general", "resource_type"}, s.WorkTypes["Dataset"].Required)
	assert.Len(t, s.Sets, len(resolver.CrossCutting()))
	assert.Len(t, s.Sets["facet_properties"], 21)
	assert.Equal(t, []string{"last_access", "number_of_downloads"}, s.Sets["restricted_properties"])
	assert.True(t, s.RestrictedEnabled)
	assert.Equal(t, "admin", s.RestrictedRole)
	assert.NotEmpty(t, s.AllProperties)
	assert.NoError(t, s.Validate())

	subjects := map[string]bool{}
	for _, tr := range s.Triples {
		subjects[tr.Subject] = true
	}
	assert.Equal(t, map[string]bool{
		repository.EntityID(worktype.Thesis):  true,
		repository.EntityID(worktype.Dataset): true,
	}, subjects)
}

func TestNewSnapshotRequiresFinalize(t *testing.T) {
	r := resolver.New(resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := NewSnapshot(r)
	assert.ErrorIs(t, err, ErrNotFinalized)
}

func TestPublish(t *testing.T) {
	s, err := NewSnapshot(finalized(t))
	require.NoError(t, err)

	pub := &fakePublisher{}
	require.NoError(t, Publish(context.Background(), pub, "", s))

	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, DefaultSubject, pub.subject)

	var got Snapshot
	require.NoError(t, json.Unmarshal(pub.data, &got))
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.WorkTypes, got.WorkTypes)
	assert.Equal(t, s.Sets, got.Sets)
	assert.Len(t, got.Triples, len(s.Triples))
	assert.Equal(t, SnapshotType, got.Schema())
}

func TestPublishCustomSubject(t *testing.T) {
	s, err := NewSnapshot(finalized(t))
	require.NoError(t, err)

	pub := &fakePublisher{}
	require.NoError(t, Publish(context.Background(), pub, "repo.config", s))
	assert.Equal(t, "repo.config", pub.subject)
}

func TestPublishNilPublisherSkips(t *testing.T) {
	assert.NoError(t, Publish(context.Background(), nil, "", &Snapshot{}))
}

func TestPublishErrors(t *testing.T) {
	s, err := NewSnapshot(finalized(t))
	require.NoError(t, err)

	t.Run("transport", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("connection closed")}
		err := Publish(context.Background(), pub, "", s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection closed")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		pub := &fakePublisher{}
		assert.ErrorIs(t, Publish(ctx, pub, "", s), context.Canceled)
		assert.Zero(t, pub.calls)
	})

	t.Run("invalid snapshot", func(t *testing.T) {
		pub := &fakePublisher{}
		assert.Error(t, Publish(context.Background(), pub, "", &Snapshot{}))
		assert.Zero(t, pub.calls)
	})
}
