package repository

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

// PredicatePrefix prefixes every field predicate.
const PredicatePrefix = "repository.field."

const entityPrefix = "propset.worktype."

// Work type predicates.
const (
	// WorkTypeHasField links a work type entity to one of its field predicates.
	WorkTypeHasField = "repository.worktype.field"

	// WorkTypeRequiresField links a work type entity to a required field predicate.
	WorkTypeRequiresField = "repository.worktype.required"

	// WorkTypeClass is the RDF class IRI of a work type entity.
	WorkTypeClass = "repository.worktype.class"
)

// intFields hold counts and sizes.
var intFields = map[fields.Field]bool{
	"aip_size":            true,
	"dip_size":            true,
	"number_of_downloads": true,
}

func init() {
	vocabulary.Register(WorkTypeHasField,
		vocabulary.WithDescription("Field used by the form and show page of a work type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropHasField))

	vocabulary.Register(WorkTypeRequiresField,
		vocabulary.WithDescription("Field a work type requires on deposit"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropRequiresField))

	vocabulary.Register(WorkTypeClass,
		vocabulary.WithDescription("RDF class asserted for works of this type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))

	RegisterFields(resolver.Catalogue())
}

// RegisterFields registers a predicate for each field not registered yet.
// Installations call it for fields their overrides introduce.
func RegisterFields(set fields.Set) {
	dates := resolver.Default(resolver.Dates)
	singular := resolver.Default(resolver.Singular)

	for _, f := range set {
		pred := Predicate(f)
		if vocabulary.GetPredicateMetadata(pred) != nil {
			continue
		}
		vocabulary.Register(pred,
			vocabulary.WithDescription("Repository metadata field "+string(f)),
			vocabulary.WithDataType(dataType(f, dates, singular)),
			vocabulary.WithIRI(IRI(f)))
	}
}

// Predicate returns the dotted predicate of a field.
func Predicate(f fields.Field) string {
	return PredicatePrefix + string(f)
}

// IRI returns the RDF property a field is stored as.
func IRI(f fields.Field) string {
	if iri, ok := standardIRIs[string(f)]; ok {
		return iri
	}
	return Namespace + lowerCamel(string(f))
}

// ClassIRI returns the RDF class of a work type.
func ClassIRI(t worktype.Type) string {
	def, ok := worktype.Lookup(t)
	if !ok {
		return ""
	}
	return def.ClassIRI
}

// EntityID returns the dotted entity identifier of a work type,
// e.g. "propset.worktype.journal_article".
func EntityID(t worktype.Type) string {
	return entityPrefix + t.Key()
}

// EntityIRI returns the IRI of a work type entity.
func EntityIRI(t worktype.Type) string {
	return EntityNamespace + t.Key()
}

func dataType(f fields.Field, dates, singular fields.Set) string {
	switch {
	case dates.Contains(f):
		return "datetime"
	case intFields[f]:
		return "int"
	case f == "refereed" || f == "has_restriction":
		return "bool"
	case strings.HasSuffix(string(f), "_ids"):
		return "entity_id"
	case singular.Contains(f):
		return "string"
	}
	return "array"
}

// lowerCamel turns "managing_organisation" into "managingOrganisation".
func lowerCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
