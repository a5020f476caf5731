// Package publish distributes finalized field configurations over NATS so
// indexers and front ends share one view of the installation.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/google/uuid"

	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/vocabulary/repository"
)

// DefaultSubject is the NATS subject configuration snapshots go to.
const DefaultSubject = "propset.config"

// ErrNotFinalized is returned when a snapshot is taken of a resolver that
// may still change.
var ErrNotFinalized = errors.New("resolver is not finalized")

// Publisher sends a message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// WorkTypeSets holds the field lists of one work type.
type WorkTypeSets struct {
	Fields   []string `json:"fields"`
	Required []string `json:"required"`
}

// Snapshot is the complete resolved configuration of an installation.
type Snapshot struct {
	ID                string                  `json:"id"`
	CreatedAt         time.Time               `json:"created_at"`
	SelectedModels    []string                `json:"selected_models"`
	WorkTypes         map[string]WorkTypeSets `json:"work_types"`
	Sets              map[string][]string     `json:"sets"`
	AllProperties     []string                `json:"all_properties"`
	DatePicker        bool                    `json:"date_picker"`
	DateRange         bool                    `json:"date_range"`
	RestrictedEnabled bool                    `json:"restricted_properties_enabled"`
	RestrictedRole    string                  `json:"restricted_role"`
	Triples           []message.Triple        `json:"triples"`
}

// NewSnapshot captures a finalized resolver.
func NewSnapshot(r *resolver.Resolver) (*Snapshot, error) {
	if !r.Finalized() {
		return nil, ErrNotFinalized
	}

	now := time.Now().UTC()
	s := &Snapshot{
		ID:                uuid.New().String(),
		CreatedAt:         now,
		WorkTypes:         make(map[string]WorkTypeSets),
		Sets:              make(map[string][]string),
		AllProperties:     r.AllProperties().Strings(),
		DatePicker:        r.DatePicker(),
		DateRange:         r.DateRange(),
		RestrictedEnabled: r.RestrictedEnabled(),
		RestrictedRole:    r.RestrictedRole(),
	}

	for _, t := range r.SelectedModels() {
		all, err := r.FieldsFor(t)
		if err != nil {
			return nil, err
		}
		required, err := r.RequiredFieldsFor(t)
		if err != nil {
			return nil, err
		}
		s.SelectedModels = append(s.SelectedModels, string(t))
		s.WorkTypes[string(t)] = WorkTypeSets{Fields: all.Strings(), Required: required.Strings()}
	}

	for _, target := range resolver.CrossCutting() {
		set, err := r.Get(target)
		if err != nil {
			return nil, err
		}
		s.Sets[target.String()] = set.Strings()
	}

	triples, err := repository.WorkTypeTriples(r, "propset.publish", now)
	if err != nil {
		return nil, fmt.Errorf("collect work type triples: %w", err)
	}
	s.Triples = triples
	return s, nil
}

// Publish sends the snapshot as JSON on subject. A nil publisher skips
// publishing.
func Publish(ctx context.Context, p Publisher, subject string, s *Snapshot) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if subject == "" {
		subject = DefaultSubject
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := p.Publish(subject, data); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
