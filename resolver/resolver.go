// Package resolver computes the effective field configuration of each work
// type: which fields its form, show page and index use, and which of them are
// required, facets, dates, singular or restricted.
//
// A Resolver starts from built-in defaults. During startup the host
// application overrides any list or toggle; each value is computed and
// memoized on first read, after which overriding it fails with
// ErrAlreadyMemoized instead of being silently ignored. Finalize memoizes
// everything and validates the invariants; a finalized Resolver is a
// read-only value safe for concurrent use.
package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/worktype"
)

type state int

const (
	stateDefault state = iota
	stateOverridden
	stateMemoized
)

// Resolver holds the installation's field configuration.
type Resolver struct {
	mu        sync.RWMutex
	finalized bool
	states    map[Target]state
	lists     map[Target]fields.Set
	all       fields.Set

	selected          []worktype.Type
	datePicker        bool
	dateRange         bool
	restrictedEnabled bool
	restrictedRole    string

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics makes the resolver report to m.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a resolver holding the default configuration: every work type
// selected, date picker, date range and restrictions off, restricted role
// "admin".
func New(opts ...Option) *Resolver {
	r := &Resolver{
		states:         make(map[Target]state),
		lists:          make(map[Target]fields.Set),
		selected:       worktype.All(),
		restrictedRole: DefaultRestrictedRole,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AvailableModels returns every work type the resolver knows about.
func (r *Resolver) AvailableModels() []worktype.Type {
	return worktype.All()
}

// SelectedModels returns the work types used by the installation.
func (r *Resolver) SelectedModels() []worktype.Type {
	r.touch(SelectedModels)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]worktype.Type, len(r.selected))
	copy(out, r.selected)
	return out
}

// DatePicker reports whether date fields get a date picker in the form.
func (r *Resolver) DatePicker() bool {
	r.touch(DatePicker)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.datePicker
}

// DateRange reports whether the date range search field is enabled.
func (r *Resolver) DateRange() bool {
	r.touch(DateRange)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dateRange
}

// RestrictedEnabled reports whether restricted fields are hidden from users
// lacking RestrictedRole. When false no restriction applies.
func (r *Resolver) RestrictedEnabled() bool {
	r.touch(RestrictedEnabled)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.restrictedEnabled
}

// RestrictedRole returns the role allowed to edit restricted fields.
func (r *Resolver) RestrictedRole() string {
	r.touch(RestrictedRole)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.restrictedRole
}

// FieldsFor returns the form and show fields of a work type: the base, type
// specific and common properties, sorted by name without duplicates.
func (r *Resolver) FieldsFor(t worktype.Type) (fields.Set, error) {
	target := FieldsOf(t)
	if err := r.checkSelected(target); err != nil {
		return nil, err
	}
	return r.list(target), nil
}

// RequiredFieldsFor returns the required fields of a work type.
func (r *Resolver) RequiredFieldsFor(t worktype.Type) (fields.Set, error) {
	target := RequiredOf(t)
	if err := r.checkSelected(target); err != nil {
		return nil, err
	}
	return r.list(target), nil
}

// Get returns the value of any list target.
func (r *Resolver) Get(t Target) (fields.Set, error) {
	if !t.IsList() {
		return nil, newError(t, ErrInvalidOverride, "not a field list")
	}
	if t.Type != "" {
		if err := r.checkSelected(t); err != nil {
			return nil, err
		}
	}
	return r.list(t), nil
}

// FacetFields returns the search facets in display order.
func (r *Resolver) FacetFields() fields.Set { return r.list(Facets) }

// FacetOnlyFields returns the facets generated at index time that never
// appear in the form or the show page.
func (r *Resolver) FacetOnlyFields() fields.Set { return r.list(FacetOnly) }

// IndexFields returns the fields of the search results view in display order.
func (r *Resolver) IndexFields() fields.Set { return r.list(Index) }

// ExcludeFromSearchFields returns the fields stored but not searchable.
func (r *Resolver) ExcludeFromSearchFields() fields.Set { return r.list(ExcludeFromSearch) }

// SingularFields returns the fields rendered as single value inputs.
func (r *Resolver) SingularFields() fields.Set { return r.list(Singular) }

// DateFields returns every date typed field.
func (r *Resolver) DateFields() fields.Set { return r.list(Dates) }

// DatePickerDates returns the fields that get a date picker when DatePicker
// is on. Defaults to DateFields.
func (r *Resolver) DatePickerDates() fields.Set { return r.list(DatePickerDates) }

// RestrictedFields returns the fields hidden from the form for users lacking
// RestrictedRole.
func (r *Resolver) RestrictedFields() fields.Set { return r.list(Restricted) }

// AuthoritiesAddNew returns the authorities that accept new terms on save.
func (r *Resolver) AuthoritiesAddNew() fields.Set { return r.list(AuthoritiesAddNew) }

// AllProperties returns every field used by the selected work types plus the
// facet and index fields, and DateRangeField when the date range is on,
// sorted without duplicates.
func (r *Resolver) AllProperties() fields.Set {
	r.mu.RLock()
	if r.all != nil {
		out := r.all.Clone()
		r.mu.RUnlock()
		return out
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allPropertiesLocked().Clone()
}

// Override replaces the default of a list target. It must be called before
// the target is first read.
func (r *Resolver) Override(t Target, set fields.Set) error {
	if !t.IsList() {
		return r.reject(newError(t, ErrInvalidOverride, "not a field list"))
	}
	if t.Type != "" && !t.Type.IsValid() {
		return r.reject(newError(t, ErrUnsupportedModel, "%q", t.Type))
	}
	if err := set.Validate(); err != nil {
		return r.reject(newError(t, ErrInvalidOverride, "%v", err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claimLocked(t); err != nil {
		return err
	}
	if set == nil {
		set = fields.Set{}
	}
	r.lists[t] = set.Clone()

	r.logger.Debug("Override applied", slog.String("target", t.String()), slog.Int("fields", len(set)))
	return nil
}

// SetSelectedModels restricts the installation to the given work types.
func (r *Resolver) SetSelectedModels(types ...worktype.Type) error {
	if len(types) == 0 {
		return r.reject(newError(SelectedModels, ErrInvalidOverride, "at least one model must be selected"))
	}
	seen := make(map[worktype.Type]bool, len(types))
	for _, t := range types {
		if !t.IsValid() {
			return r.reject(newError(SelectedModels, ErrUnsupportedModel, "%q", t))
		}
		if seen[t] {
			return r.reject(newError(SelectedModels, ErrInvalidOverride, "duplicate model %q", t))
		}
		seen[t] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claimLocked(SelectedModels); err != nil {
		return err
	}
	r.selected = append([]worktype.Type{}, types...)
	return nil
}

// SetDatePicker overrides the date picker toggle.
func (r *Resolver) SetDatePicker(on bool) error {
	return r.setToggle(DatePicker, func() { r.datePicker = on })
}

// SetDateRange overrides the date range toggle.
func (r *Resolver) SetDateRange(on bool) error {
	return r.setToggle(DateRange, func() { r.dateRange = on })
}

// SetRestrictedEnabled overrides the restricted properties toggle.
func (r *Resolver) SetRestrictedEnabled(on bool) error {
	return r.setToggle(RestrictedEnabled, func() { r.restrictedEnabled = on })
}

// SetRestrictedRole overrides the role allowed to edit restricted fields.
func (r *Resolver) SetRestrictedRole(role string) error {
	if role == "" {
		return r.reject(newError(RestrictedRole, ErrInvalidOverride, "role must not be empty"))
	}
	return r.setToggle(RestrictedRole, func() { r.restrictedRole = role })
}

// Validate checks the invariants of the current configuration without
// memoizing anything.
func (r *Resolver) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validateLocked(r.peekLocked)
}

// Finalize validates the configuration and memoizes every value. Overrides
// fail afterwards. Calling Finalize again is a no-op.
func (r *Resolver) Finalize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return nil
	}
	if err := r.validateLocked(r.peekLocked); err != nil {
		return err
	}

	for _, t := range []Target{SelectedModels, DatePicker, DateRange, RestrictedEnabled, RestrictedRole} {
		r.touchLocked(t)
	}
	for _, t := range r.selected {
		r.listLocked(FieldsOf(t))
		r.listLocked(RequiredOf(t))
	}
	for _, t := range crossCutting {
		r.listLocked(t)
	}
	r.all = r.allPropertiesLocked()
	r.finalized = true

	r.logger.Info("Configuration finalized",
		slog.Int("models", len(r.selected)),
		slog.Int("properties", len(r.all)))
	return nil
}

// Finalized reports whether Finalize has completed.
func (r *Resolver) Finalized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finalized
}

func (r *Resolver) checkSelected(target Target) error {
	for _, t := range r.SelectedModels() {
		if t == target.Type {
			return nil
		}
	}
	return newError(target, ErrUnsupportedModel, "%q is not a selected model", target.Type)
}

// list returns a copy of the memoized value of t, computing it on first use.
func (r *Resolver) list(t Target) fields.Set {
	r.mu.RLock()
	if r.states[t] == stateMemoized {
		out := r.lists[t].Clone()
		r.mu.RUnlock()
		return out
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(t).Clone()
}

func (r *Resolver) listLocked(t Target) fields.Set {
	switch r.states[t] {
	case stateMemoized:
		return r.lists[t]
	case stateDefault:
		r.lists[t] = computeDefault(t, r.listLocked)
	}
	r.states[t] = stateMemoized
	r.metrics.computed(t)
	r.logger.Debug("Memoized field set", slog.String("target", t.String()), slog.Int("fields", len(r.lists[t])))
	return r.lists[t]
}

// peekLocked returns the current value of t without memoizing it.
func (r *Resolver) peekLocked(t Target) fields.Set {
	if r.states[t] != stateDefault {
		return r.lists[t]
	}
	return computeDefault(t, r.peekLocked)
}

// Default returns the built-in value of a list target.
func Default(t Target) fields.Set {
	return computeDefault(t, Default)
}

// computeDefault builds the default of t. Dependencies are read through get.
func computeDefault(t Target, get func(Target) fields.Set) fields.Set {
	switch t.Kind {
	case KindFields:
		def, _ := worktype.Lookup(t.Type)
		return fields.Canonical(BaseProperties(), fields.ParseSet(def.Extra), CommonProperties())
	case KindRequired:
		def, _ := worktype.Lookup(t.Type)
		if def.Required != nil {
			return fields.ParseSet(def.Required)
		}
		return RequiredProperties()
	case KindFacet:
		return defaultFacets()
	case KindFacetOnly:
		return defaultFacetOnly()
	case KindIndex:
		return defaultIndex()
	case KindExcludeFromSearch:
		return defaultExcludeFromSearch()
	case KindSingular:
		return defaultSingular()
	case KindDate:
		return defaultDates()
	case KindDatePickerDates:
		return get(Dates).Clone()
	case KindRestricted:
		return defaultRestricted()
	case KindAuthoritiesAddNew:
		return fields.Set{}
	}
	panic(fmt.Sprintf("resolver: no default for target %s", t))
}

func (r *Resolver) allPropertiesLocked() fields.Set {
	r.touchLocked(SelectedModels)
	r.touchLocked(DateRange)

	lists := make([]fields.Set, 0, len(r.selected)+3)
	for _, t := range r.selected {
		lists = append(lists, r.listLocked(FieldsOf(t)))
	}
	lists = append(lists, r.listLocked(Facets), r.listLocked(Index))
	if r.dateRange {
		lists = append(lists, fields.Set{DateRangeField})
	}
	return fields.Canonical(lists...)
}

func (r *Resolver) validateLocked(get func(Target) fields.Set) error {
	var errs []error
	base := BaseProperties()
	facetOnly := get(FacetOnly)
	excluded := get(ExcludeFromSearch)

	for _, t := range r.selected {
		target := FieldsOf(t)
		all := get(target)
		if missing := get(RequiredOf(t)).Without(all); len(missing) > 0 {
			errs = append(errs, newError(target, ErrInvalidOverride, "required fields %v are not part of the type", missing.Strings()))
		}
		if missing := base.Without(all); len(missing) > 0 {
			errs = append(errs, newError(target, ErrInvalidOverride, "base fields %v are missing", missing.Strings()))
		}
		if clash := all.Intersect(facetOnly); len(clash) > 0 {
			errs = append(errs, newError(target, ErrInvalidOverride, "facet only fields %v cannot be form fields", clash.Strings()))
		}
		if clash := all.Intersect(excluded); len(clash) > 0 {
			r.logger.Debug("Form fields excluded from search",
				slog.String("model", string(t)),
				slog.Any("fields", clash.Strings()))
		}
	}
	return errors.Join(errs...)
}

// touch memoizes a toggle so later overrides of it are rejected.
func (r *Resolver) touch(t Target) {
	r.mu.RLock()
	done := r.states[t] == stateMemoized
	r.mu.RUnlock()
	if done {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.touchLocked(t)
}

func (r *Resolver) touchLocked(t Target) {
	if r.states[t] == stateMemoized {
		return
	}
	r.states[t] = stateMemoized
	r.metrics.computed(t)
}

func (r *Resolver) setToggle(t Target, apply func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claimLocked(t); err != nil {
		return err
	}
	apply()
	return nil
}

// claimLocked marks t as overridden, rejecting a second override or one that
// comes after the value was read.
func (r *Resolver) claimLocked(t Target) error {
	if r.finalized {
		return r.reject(newError(t, ErrAlreadyMemoized, "configuration is finalized"))
	}
	switch r.states[t] {
	case stateOverridden:
		return r.reject(newError(t, ErrAlreadyConfigured, "override applied twice"))
	case stateMemoized:
		return r.reject(newError(t, ErrAlreadyMemoized, "value was read before the override"))
	}
	r.states[t] = stateOverridden
	return nil
}

func (r *Resolver) reject(err error) error {
	r.metrics.rejected(err)
	r.logger.Warn("Override rejected", slog.String("error", err.Error()))
	return err
}
