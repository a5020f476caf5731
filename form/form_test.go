package form

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

func newResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	return resolver.New(resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func names(fs []Field) fields.Set {
	out := make(fields.Set, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestPrimaryFieldsFollowRequiredOrder(t *testing.T) {
	plan, err := Build(newResolver(t), worktype.Dataset, nil)
	require.NoError(t, err)

	assert.Equal(t, fields.Set{
		"creator", "title", "publisher", "date_published",
		"resource_type_general", "resource_type",
	}, names(plan.Primary))
	for _, f := range plan.Primary {
		assert.True(t, f.Required, f.Name)
	}
	for _, f := range plan.Secondary {
		assert.False(t, f.Required, f.Name)
		assert.NotContains(t, names(plan.Primary), f.Name)
	}
}

func TestRestrictions(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		roles      []string
		wantHidden fields.Set
	}{
		{"disabled without roles", false, nil, nil},
		{"disabled with admin", false, []string{"admin"}, nil},
		{"enabled without roles", true, nil, fields.Set{"last_access", "number_of_downloads"}},
		{"enabled with other role", true, []string{"editor"}, fields.Set{"last_access", "number_of_downloads"}},
		{"enabled with admin", true, []string{"editor", "admin"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t)
			require.NoError(t, r.SetRestrictedEnabled(tt.enabled))

			plan, err := Build(r, worktype.Dataset, tt.roles)
			require.NoError(t, err)

			assert.Equal(t, tt.wantHidden, plan.Hidden)
			secondary := names(plan.Secondary)
			restricted := fields.Set{"last_access", "number_of_downloads"}
			for _, f := range restricted {
				assert.Equal(t, !tt.wantHidden.Contains(f), secondary.Contains(f), f)
			}
		})
	}
}

func TestCustomRestrictedRole(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.SetRestrictedEnabled(true))
	require.NoError(t, r.SetRestrictedRole("curator"))

	plan, err := Build(r, worktype.Dataset, []string{"admin"})
	require.NoError(t, err)
	assert.Len(t, plan.Hidden, 2)

	plan, err = Build(r, worktype.Dataset, []string{"curator"})
	require.NoError(t, err)
	assert.Empty(t, plan.Hidden)
}

func TestRequiredFieldsNeverRestricted(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.SetRestrictedEnabled(true))
	require.NoError(t, r.Override(resolver.Restricted, fields.Set{"title", "note"}))

	plan, err := Build(r, worktype.Thesis, nil)
	require.NoError(t, err)

	assert.Contains(t, names(plan.Primary), fields.Field("title"))
	assert.Equal(t, fields.Set{"note"}, plan.Hidden)
}

func TestFacetOnlyFieldsNeverRendered(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.Override(resolver.FacetOnly, fields.Set{"department"}))

	plan, err := Build(r, worktype.Thesis, nil)
	require.NoError(t, err)
	assert.NotContains(t, plan.Names(), fields.Field("department"))

	show, err := ShowFields(r, worktype.Thesis)
	require.NoError(t, err)
	assert.NotContains(t, show, fields.Field("department"))
	assert.Len(t, show, 32)
}

func TestFieldFlags(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.SetDatePicker(true))

	plan, err := Build(r, worktype.Dataset, nil)
	require.NoError(t, err)

	byName := make(map[fields.Field]Field)
	for _, f := range append(plan.Primary, plan.Secondary...) {
		byName[f.Name] = f
	}

	assert.Equal(t, Field{Name: "date_published", Required: true, Singular: true, DatePicker: true}, byName["date_published"])
	assert.Equal(t, Field{Name: "date_collected", Singular: true, DatePicker: true}, byName["date_collected"])
	assert.Equal(t, Field{Name: "keyword"}, byName["keyword"])
}

func TestNoDatePickerWhenDisabled(t *testing.T) {
	plan, err := Build(newResolver(t), worktype.Dataset, nil)
	require.NoError(t, err)

	for _, f := range append(plan.Primary, plan.Secondary...) {
		assert.False(t, f.DatePicker, f.Name)
	}
}

func TestShowFieldsIgnoreRestrictions(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.SetRestrictedEnabled(true))

	show, err := ShowFields(r, worktype.Dataset)
	require.NoError(t, err)
	assert.Contains(t, show, fields.Field("last_access"))
	assert.Contains(t, show, fields.Field("number_of_downloads"))
}

func TestUnselectedModel(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.SetSelectedModels(worktype.Thesis))

	_, err := Build(r, worktype.Dataset, nil)
	require.ErrorIs(t, err, resolver.ErrUnsupportedModel)

	_, err = ShowFields(r, worktype.Dataset)
	require.ErrorIs(t, err, resolver.ErrUnsupportedModel)
}
