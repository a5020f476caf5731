package resolver

import "github.com/c360studio/propset/worktype"

// Kind identifies a configurable value of the resolver.
type Kind string

// List targets.
const (
	KindFields            Kind = "properties"
	KindRequired          Kind = "properties_required"
	KindFacet             Kind = "facet_properties"
	KindFacetOnly         Kind = "facet_only_properties"
	KindIndex             Kind = "index_properties"
	KindExcludeFromSearch Kind = "exclude_from_search_properties"
	KindSingular          Kind = "singular_properties"
	KindDate              Kind = "date_properties"
	KindDatePickerDates   Kind = "date_picker_dates"
	KindRestricted        Kind = "restricted_properties"
	KindAuthoritiesAddNew Kind = "authorities_add_new"
)

// Toggle targets.
const (
	KindSelectedModels    Kind = "selected_models"
	KindDatePicker        Kind = "date_picker"
	KindDateRange         Kind = "date_range"
	KindRestrictedEnabled Kind = "restricted_properties_enabled"
	KindRestrictedRole    Kind = "restricted_role"
)

// Target names one overridable value. Per-type targets carry the work type.
type Target struct {
	Kind Kind
	Type worktype.Type
}

// Cross-cutting targets.
var (
	Facets            = Target{Kind: KindFacet}
	FacetOnly         = Target{Kind: KindFacetOnly}
	Index             = Target{Kind: KindIndex}
	ExcludeFromSearch = Target{Kind: KindExcludeFromSearch}
	Singular          = Target{Kind: KindSingular}
	Dates             = Target{Kind: KindDate}
	DatePickerDates   = Target{Kind: KindDatePickerDates}
	Restricted        = Target{Kind: KindRestricted}
	AuthoritiesAddNew = Target{Kind: KindAuthoritiesAddNew}

	SelectedModels    = Target{Kind: KindSelectedModels}
	DatePicker        = Target{Kind: KindDatePicker}
	DateRange         = Target{Kind: KindDateRange}
	RestrictedEnabled = Target{Kind: KindRestrictedEnabled}
	RestrictedRole    = Target{Kind: KindRestrictedRole}
)

// FieldsOf is the full field list target of a work type.
func FieldsOf(t worktype.Type) Target {
	return Target{Kind: KindFields, Type: t}
}

// RequiredOf is the required field list target of a work type.
func RequiredOf(t worktype.Type) Target {
	return Target{Kind: KindRequired, Type: t}
}

// String renders the target the way installation files name it, e.g.
// "thesis_properties_required" or "facet_properties".
func (t Target) String() string {
	if t.Type != "" {
		return t.Type.Key() + "_" + string(t.Kind)
	}
	return string(t.Kind)
}

// IsList reports whether the target holds a field list (as opposed to a
// toggle).
func (t Target) IsList() bool {
	switch t.Kind {
	case KindSelectedModels, KindDatePicker, KindDateRange, KindRestrictedEnabled, KindRestrictedRole:
		return false
	}
	return true
}

// crossCutting lists the list targets that do not depend on a work type.
var crossCutting = []Target{
	Facets,
	FacetOnly,
	Index,
	ExcludeFromSearch,
	Singular,
	Dates,
	DatePickerDates,
	Restricted,
	AuthoritiesAddNew,
}

// CrossCutting returns the list targets shared by every work type.
func CrossCutting() []Target {
	out := make([]Target, len(crossCutting))
	copy(out, crossCutting)
	return out
}
