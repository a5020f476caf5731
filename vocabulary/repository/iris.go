package repository

import "github.com/c360studio/semstreams/vocabulary"

// Namespace is the base IRI prefix for repository vocabulary terms.
const Namespace = "https://propset.dev/ontology/repository/"

// EntityNamespace is the base IRI for work type entity instances.
const EntityNamespace = "https://propset.dev/entity/worktype/"

// Standard ontology namespaces used by the field mappings.
const (
	DcTerms   = "http://purl.org/dc/terms/"
	Bibo      = "http://purl.org/ontology/bibo/"
	SchemaOrg = "http://schema.org/"
	Foaf      = "http://xmlns.com/foaf/0.1/"
	Geo       = "http://www.w3.org/2003/01/geo/wgs84_pos#"
	Rdfs      = "http://www.w3.org/2000/01/rdf-schema#"
	Edm       = "http://www.europeana.eu/schemas/edm/"
	Relators  = "http://id.loc.gov/vocabulary/relators/"
)

// Object property IRIs linking work types to their fields.
const (
	// PropHasField links a work type class to a field predicate.
	// Domain: work type class, Range: rdf:Property
	PropHasField = Namespace + "hasField"

	// PropRequiresField links a work type class to a required field predicate.
	PropRequiresField = Namespace + "requiresField"
)

// standardIRIs maps fields to the standard property they are stored as.
// Fields not listed fall back to Namespace + field name.
var standardIRIs = map[string]string{
	"abstract":              DcTerms + "abstract",
	"alt":                   Geo + "alt",
	"based_near":            Foaf + "based_near",
	"contributor":           DcTerms + "contributor",
	"creator":               DcTerms + "creator",
	"date":                  DcTerms + "date",
	"date_accepted":         DcTerms + "dateAccepted",
	"date_available":        DcTerms + "available",
	"date_copyrighted":      DcTerms + "dateCopyrighted",
	"date_created":          DcTerms + "created",
	"date_issued":           DcTerms + "issued",
	"date_published":        SchemaOrg + "datePublished",
	"date_submitted":        DcTerms + "dateSubmitted",
	"date_updated":          DcTerms + "modified",
	"date_valid":            DcTerms + "valid",
	"dc_access_rights":      DcTerms + "accessRights",
	"dc_format":             DcTerms + "format",
	"description":           DcTerms + "description",
	"doi":                   Bibo + "doi",
	"edition":               Bibo + "edition",
	"editor":                Bibo + "editor",
	"extent":                DcTerms + "extent",
	"isbn":                  Bibo + "isbn",
	"issue_number":          Bibo + "issue",
	"keyword":               SchemaOrg + "keywords",
	"language":              DcTerms + "language",
	"lat":                   Geo + "lat",
	"license":               DcTerms + "license",
	"long":                  Geo + "long",
	"official_url":          SchemaOrg + "url",
	"pagination":            Bibo + "pages",
	"part_of":               DcTerms + "isPartOf",
	"place_of_publication":  Relators + "pup",
	"publisher":             DcTerms + "publisher",
	"related_url":           Rdfs + "seeAlso",
	"resource_type":         DcTerms + "type",
	"rights_statement":      Edm + "rights",
	"subject":               DcTerms + "subject",
	"title":                 vocabulary.DcTitle,
	"volume_number":         Bibo + "volume",
	"advisor":               Relators + "ths",
	"funder":                Relators + "fnd",
	"content_version":       SchemaOrg + "version",
	"event_date":            SchemaOrg + "startDate",
	"identifier":            vocabulary.DcIdentifier,
	"source":                vocabulary.DcSource,
	"brand":                 SchemaOrg + "brand",
	"product":               SchemaOrg + "product",
	"example_of_work":       SchemaOrg + "exampleOfWork",
	"height":                SchemaOrg + "height",
	"width":                 SchemaOrg + "width",
	"release_date":          SchemaOrg + "releaseDate",
	"subtitle":              SchemaOrg + "alternativeHeadline",
	"former_identifier":     Namespace + "formerIdentifier",
	"managing_organisation": Namespace + "managingOrganisation",
}
