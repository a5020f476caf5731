// Package form derives what the deposit form and the show page render for a
// work type.
package form

import (
	"fmt"
	"slices"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

// Field is one form input.
type Field struct {
	Name       fields.Field `json:"name"`
	Required   bool         `json:"required"`
	Singular   bool         `json:"singular"`
	DatePicker bool         `json:"date_picker"`
}

// Plan is the form layout for one work type and one user.
type Plan struct {
	Type worktype.Type `json:"type"`

	// Primary holds the required fields in their configured order.
	Primary []Field `json:"primary"`

	// Secondary holds the remaining fields, rendered below the fold.
	Secondary []Field `json:"secondary"`

	// Hidden lists the restricted fields the user may not edit.
	Hidden fields.Set `json:"hidden,omitempty"`
}

// Names returns the primary then secondary field names.
func (p *Plan) Names() fields.Set {
	out := make(fields.Set, 0, len(p.Primary)+len(p.Secondary))
	for _, f := range p.Primary {
		out = append(out, f.Name)
	}
	for _, f := range p.Secondary {
		out = append(out, f.Name)
	}
	return out
}

// Build lays out the form of t for a user holding roles.
//
// Restrictions apply to secondary fields only, and only when the resolver
// has them enabled and roles lacks the restricted role.
func Build(r *resolver.Resolver, t worktype.Type, roles []string) (*Plan, error) {
	rendered, err := renderable(r, t)
	if err != nil {
		return nil, err
	}
	required, err := r.RequiredFieldsFor(t)
	if err != nil {
		return nil, fmt.Errorf("required fields of %s: %w", t, err)
	}

	singular := r.SingularFields()
	var pickers fields.Set
	if r.DatePicker() {
		pickers = r.DatePickerDates()
	}
	var restricted fields.Set
	if r.RestrictedEnabled() && !slices.Contains(roles, r.RestrictedRole()) {
		restricted = r.RestrictedFields()
	}

	input := func(f fields.Field, req bool) Field {
		return Field{
			Name:       f,
			Required:   req,
			Singular:   singular.Contains(f),
			DatePicker: pickers.Contains(f),
		}
	}

	plan := &Plan{Type: t}
	for _, f := range required {
		if rendered.Contains(f) {
			plan.Primary = append(plan.Primary, input(f, true))
		}
	}
	for _, f := range rendered.Without(required) {
		if restricted.Contains(f) {
			plan.Hidden = append(plan.Hidden, f)
			continue
		}
		plan.Secondary = append(plan.Secondary, input(f, false))
	}
	return plan, nil
}

// ShowFields returns the fields the show page displays for t. Restrictions
// do not apply to the show page.
func ShowFields(r *resolver.Resolver, t worktype.Type) (fields.Set, error) {
	return renderable(r, t)
}

func renderable(r *resolver.Resolver, t worktype.Type) (fields.Set, error) {
	all, err := r.FieldsFor(t)
	if err != nil {
		return nil, fmt.Errorf("fields of %s: %w", t, err)
	}
	return all.Without(r.FacetOnlyFields()), nil
}
