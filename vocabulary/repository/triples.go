package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

// WorkTypeTriples describes each selected work type of r as an entity: its
// class, the predicates of its fields and the predicates it requires.
func WorkTypeTriples(r *resolver.Resolver, source string, now time.Time) ([]message.Triple, error) {
	var triples []message.Triple
	for _, t := range r.SelectedModels() {
		all, err := r.FieldsFor(t)
		if err != nil {
			return nil, fmt.Errorf("fields of %s: %w", t, err)
		}
		required, err := r.RequiredFieldsFor(t)
		if err != nil {
			return nil, fmt.Errorf("required fields of %s: %w", t, err)
		}

		entityID := EntityID(t)
		triple := func(pred string, obj any) message.Triple {
			return message.Triple{
				Subject:    entityID,
				Predicate:  pred,
				Object:     obj,
				Source:     source,
				Timestamp:  now,
				Confidence: 1.0,
			}
		}

		triples = append(triples, triple(WorkTypeClass, ClassIRI(t)))
		for _, f := range all {
			triples = append(triples, triple(WorkTypeHasField, Predicate(f)))
		}
		for _, f := range required {
			triples = append(triples, triple(WorkTypeRequiresField, Predicate(f)))
		}
	}
	return triples, nil
}

// TypeOf returns the work type an entity ID names.
func TypeOf(entityID string) (worktype.Type, bool) {
	key, ok := strings.CutPrefix(entityID, entityPrefix)
	if !ok {
		return "", false
	}
	t, err := worktype.Parse(key)
	if err != nil {
		return "", false
	}
	return t, true
}
