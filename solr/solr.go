// Package solr maps the configured metadata fields onto search index fields.
//
// Each field is indexed under one or more solrizer descriptors, and each
// descriptor appends a fixed suffix to the field name:
//
//	stored_searchable  title_tesim
//	symbol             last_access_ssim
//	facetable          keyword_sim
//	stored_sortable    pagination_ssi
//	dateable           date_published_dtsim
package solr

import (
	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/resolver"
)

// Descriptor names how a field is indexed.
type Descriptor string

const (
	StoredSearchable Descriptor = "stored_searchable"
	Symbol           Descriptor = "symbol"
	Facetable        Descriptor = "facetable"
	StoredSortable   Descriptor = "stored_sortable"
	Dateable         Descriptor = "dateable"
)

var suffixes = map[Descriptor]string{
	StoredSearchable: "_tesim",
	Symbol:           "_ssim",
	Facetable:        "_sim",
	StoredSortable:   "_ssi",
	Dateable:         "_dtsim",
}

// Suffix returns the solrizer suffix of a descriptor.
func (d Descriptor) Suffix() string {
	return suffixes[d]
}

// Name returns the index field name of f under d.
func Name(f fields.Field, d Descriptor) string {
	return string(f) + d.Suffix()
}

// Mapping is the index treatment of one field.
type Mapping struct {
	Field       fields.Field
	Descriptors []Descriptor
}

// Has reports whether the field is indexed under d.
func (m Mapping) Has(d Descriptor) bool {
	for _, got := range m.Descriptors {
		if got == d {
			return true
		}
	}
	return false
}

// Names returns the index field names of the mapping, in descriptor order.
func (m Mapping) Names() []string {
	out := make([]string, len(m.Descriptors))
	for i, d := range m.Descriptors {
		out[i] = Name(m.Field, d)
	}
	return out
}

// displayName is the stored name a result view reads the field from.
func (m Mapping) displayName() string {
	if m.Has(Symbol) {
		return Name(m.Field, Symbol)
	}
	return Name(m.Field, StoredSearchable)
}

// Mapper holds the index mappings derived from a resolver.
type Mapper struct {
	mappings map[fields.Field]Mapping
	order    fields.Set
	facets   fields.Set
	index    fields.Set
}

// NewMapper computes the mapping of every field in r.AllProperties.
// Reading the resolver memoizes the targets involved.
func NewMapper(r *resolver.Resolver) *Mapper {
	all := r.AllProperties()
	facets := r.FacetFields()
	excluded := r.ExcludeFromSearchFields()
	singular := r.SingularFields()

	var dates fields.Set
	if r.DatePicker() {
		dates = r.DateFields()
	}

	m := &Mapper{
		mappings: make(map[fields.Field]Mapping, len(all)),
		order:    all,
		facets:   facets,
		index:    r.IndexFields(),
	}
	for _, f := range all {
		mapping := Mapping{Field: f}
		if excluded.Contains(f) {
			mapping.Descriptors = append(mapping.Descriptors, Symbol)
		} else {
			mapping.Descriptors = append(mapping.Descriptors, StoredSearchable)
		}
		if facets.Contains(f) {
			mapping.Descriptors = append(mapping.Descriptors, Facetable)
		}
		if dates.Contains(f) {
			mapping.Descriptors = append(mapping.Descriptors, Dateable)
		}
		if singular.Contains(f) {
			mapping.Descriptors = append(mapping.Descriptors, StoredSortable)
		}
		m.mappings[f] = mapping
	}
	return m
}

// Lookup returns the mapping of a field.
func (m *Mapper) Lookup(f fields.Field) (Mapping, bool) {
	mapping, ok := m.mappings[f]
	if !ok {
		return Mapping{}, false
	}
	mapping.Descriptors = append([]Descriptor(nil), mapping.Descriptors...)
	return mapping, true
}

// Mappings returns every mapping sorted by field name.
func (m *Mapper) Mappings() []Mapping {
	out := make([]Mapping, 0, len(m.order))
	for _, f := range m.order {
		mapping, _ := m.Lookup(f)
		out = append(out, mapping)
	}
	return out
}

// FacetFieldNames returns the facet index fields in display order.
func (m *Mapper) FacetFieldNames() []string {
	out := make([]string, len(m.facets))
	for i, f := range m.facets {
		out[i] = Name(f, Facetable)
	}
	return out
}

// IndexFieldNames returns the search results fields in display order.
func (m *Mapper) IndexFieldNames() []string {
	out := make([]string, len(m.index))
	for i, f := range m.index {
		out[i] = m.mappings[f].displayName()
	}
	return out
}
