// Package export writes the configured work types and their field
// predicates as RDF.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/vocabulary/repository"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

const (
	rdfType     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfProperty = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property"
	rdfsLabel   = "http://www.w3.org/2000/01/rdf-schema#label"
	rdfsRange   = "http://www.w3.org/2000/01/rdf-schema#range"
	xsdNS       = "http://www.w3.org/2001/XMLSchema#"
)

// Statement is one RDF statement with the predicate already resolved to an
// IRI. Object is an IRI when IsIRI is set, a literal otherwise.
type Statement struct {
	Predicate string
	Object    string
	IsIRI     bool
}

// Entity is an exported subject with its statements.
type Entity struct {
	IRI        string
	Statements []Statement
}

// Exporter collects entities and serializes them.
type Exporter struct {
	profile  ProfileConfig
	entities []*Entity
	index    map[string]*Entity
	prefixes map[string]string
}

// NewExporter creates an exporter for profile.
func NewExporter(profile Profile) *Exporter {
	return &Exporter{
		profile:  GetProfileConfig(profile),
		index:    make(map[string]*Entity),
		prefixes: defaultPrefixes(),
	}
}

// FromResolver creates an exporter holding the selected work types of r.
func FromResolver(r *resolver.Resolver, profile Profile) (*Exporter, error) {
	triples, err := repository.WorkTypeTriples(r, "propset.export", time.Now())
	if err != nil {
		return nil, fmt.Errorf("collect work type triples: %w", err)
	}

	e := NewExporter(profile)
	for _, t := range triples {
		if t.Predicate == repository.WorkTypeRequiresField && !e.profile.IncludeRequired {
			continue
		}
		e.AddTriple(t)
	}
	if e.profile.DeclareProperties {
		for _, f := range r.AllProperties() {
			e.declareProperty(repository.Predicate(f))
		}
	}
	return e, nil
}

func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    xsdNS,
		"dc":     repository.DcTerms,
		"bibo":   repository.Bibo,
		"schema": repository.SchemaOrg,
		"repo":   repository.Namespace,
		"work":   repository.EntityNamespace,
	}
}

// AddTriple adds a triple, translating its dotted subject, predicate and
// object to IRIs where the vocabulary knows them.
func (e *Exporter) AddTriple(t message.Triple) {
	obj, isIRI := objectTerm(t.Object)
	e.entity(subjectIRI(t.Subject)).add(Statement{
		Predicate: predicateIRI(t.Predicate),
		Object:    obj,
		IsIRI:     isIRI,
	})
}

// Entities returns the collected entities in insertion order.
func (e *Exporter) Entities() []Entity {
	out := make([]Entity, len(e.entities))
	for i, ent := range e.entities {
		out[i] = Entity{IRI: ent.IRI, Statements: append([]Statement(nil), ent.Statements...)}
	}
	return out
}

// Export serializes all entities to the specified format.
func (e *Exporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *Exporter) entity(iri string) *Entity {
	if ent, ok := e.index[iri]; ok {
		return ent
	}
	ent := &Entity{IRI: iri}
	e.index[iri] = ent
	e.entities = append(e.entities, ent)
	return ent
}

func (ent *Entity) add(s Statement) {
	ent.Statements = append(ent.Statements, s)
}

// declareProperty describes a field predicate as an rdf:Property with its
// label and value range.
func (e *Exporter) declareProperty(pred string) {
	meta := vocabulary.GetPredicateMetadata(pred)
	if meta == nil || meta.StandardIRI == "" {
		return
	}
	ent := e.entity(meta.StandardIRI)
	if len(ent.Statements) > 0 {
		return
	}
	ent.add(Statement{Predicate: rdfType, Object: rdfProperty, IsIRI: true})
	ent.add(Statement{Predicate: rdfsLabel, Object: strings.TrimPrefix(pred, repository.PredicatePrefix)})
	ent.add(Statement{Predicate: rdfsRange, Object: rangeIRI(meta.DataType), IsIRI: true})
}

func (e *Exporter) sortedPrefixes() []string {
	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Exporter) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range e.sortedPrefixes() {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, ent := range e.entities {
		fmt.Fprintf(&sb, "<%s>\n", ent.IRI)
		for i, s := range ent.Statements {
			term := " ;"
			if i == len(ent.Statements)-1 {
				term = " ."
			}
			if s.Predicate == rdfType {
				fmt.Fprintf(&sb, "    a %s%s\n", formatTerm(s), term)
				continue
			}
			fmt.Fprintf(&sb, "    <%s> %s%s\n", s.Predicate, formatTerm(s), term)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (e *Exporter) toNTriples() string {
	var sb strings.Builder
	for _, ent := range e.entities {
		for _, s := range ent.Statements {
			fmt.Fprintf(&sb, "<%s> <%s> %s .\n", ent.IRI, s.Predicate, formatTerm(s))
		}
	}
	return sb.String()
}

func subjectIRI(subject string) string {
	if t, ok := repository.TypeOf(subject); ok {
		return repository.EntityIRI(t)
	}
	if isIRI(subject) {
		return subject
	}
	return repository.Namespace + subject
}

func predicateIRI(pred string) string {
	if meta := vocabulary.GetPredicateMetadata(pred); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return repository.Namespace + pred
}

// objectTerm resolves registered predicate names and entity IDs to IRIs.
func objectTerm(obj any) (string, bool) {
	s, ok := obj.(string)
	if !ok {
		return fmt.Sprint(obj), false
	}
	if isIRI(s) {
		return s, true
	}
	if t, ok := repository.TypeOf(s); ok {
		return repository.EntityIRI(t), true
	}
	if meta := vocabulary.GetPredicateMetadata(s); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI, true
	}
	return s, false
}

func rangeIRI(dataType string) string {
	switch dataType {
	case "datetime":
		return xsdNS + "dateTime"
	case "int":
		return xsdNS + "integer"
	case "bool":
		return xsdNS + "boolean"
	case "entity_id":
		return "http://www.w3.org/2000/01/rdf-schema#Resource"
	default:
		return xsdNS + "string"
	}
}

func isIRI(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func formatTerm(s Statement) string {
	if s.IsIRI {
		return "<" + s.Object + ">"
	}
	return "\"" + escapeString(s.Object) + "\""
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
