// Package repository provides the RDF property mappings of repository
// metadata fields.
//
// Every field named by the built-in configuration is registered as a
// predicate with the semstreams vocabulary registry when the package is
// imported. Predicates use three-level dotted notation
// (repository.field.<name>) and carry the standard property IRI the field is
// stored as, so RDF export can translate them:
//
//	repository.field.title        → http://purl.org/dc/terms/title
//	repository.field.date_created → http://purl.org/dc/terms/created
//	repository.field.isbn         → http://purl.org/ontology/bibo/isbn
//
// Fields without a standard property map into Namespace.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/propset/vocabulary/repository"
package repository
