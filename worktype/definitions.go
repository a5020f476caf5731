package worktype

// Namespace is the base IRI for work type classes without a standard class.
const Namespace = "https://propset.dev/ontology/work/"

// Definition describes what a work type adds to the shared metadata.
type Definition struct {
	// Extra lists the type specific fields merged with the base and common
	// properties.
	Extra []string

	// Required replaces the global required properties when non-nil.
	Required []string

	// ClassIRI is the RDF class asserted for works of this type.
	ClassIRI string
}

// definitions is the static per-type table.
var definitions = map[Type]Definition{
	ConferenceItem: {
		Extra: []string{
			"abstract", "date_published", "date_available", "date_accepted",
			"date_submitted", "editor", "event_date", "isbn", "official_url",
			"pagination", "place_of_publication", "publication_status",
			"presented_at", "part_of", "refereed",
		},
		ClassIRI: "http://london.ac.uk/ontologies/terms#ConferenceItem",
	},
	Dataset: {
		// Dataset carries pure admin metadata (uuid, creation, link) that is
		// kept out of the form.
		Extra: []string{
			"abstract", "content_version", "date_accepted", "date_available",
			"date_collected", "date_copyrighted", "date_issued", "date_published",
			"date_submitted", "date_updated", "date_valid", "dc_access_rights",
			"dc_format", "extent", "has_restriction", "last_access",
			"number_of_downloads", "resource_type_general", "subtitle",
		},
		// DataCite mandatory properties; doi is left out because it may be
		// minted later in the workflow.
		Required: []string{
			"creator", "title", "publisher", "date_published",
			"resource_type_general", "resource_type",
		},
		ClassIRI: "http://www.w3.org/ns/dcat#Dataset",
	},
	DigitalArchivalObject: {
		Extra: []string{
			"access_provided_by", "extent", "part_of", "lat", "long", "alt",
			"height", "width", "packaged_by_ids", "in_archival_resource_ids",
		},
		ClassIRI: Namespace + "DigitalArchivalObject",
	},
	ExamPaper: {
		Extra: []string{
			"module_code", "qualification_level", "qualification_name", "date_available",
		},
		ClassIRI: Namespace + "ExamPaper",
	},
	JournalArticle: {
		Extra: []string{
			"abstract", "date_published", "date_available", "date_accepted",
			"date_submitted", "issue_number", "part_of", "official_url",
			"pagination", "publication_status", "refereed", "volume_number",
		},
		ClassIRI: "http://purl.org/ontology/bibo/AcademicArticle",
	},
	Image: {
		Extra:    []string{"brand", "example_of_work", "product", "height", "width"},
		ClassIRI: "http://purl.org/dc/dcmitype/Image",
	},
	Package: {
		Extra: []string{
			"aip_uuid", "transfer_uuid", "sip_uuid", "dip_uuid", "aip_status",
			"dip_status", "aip_size", "dip_size", "aip_current_path",
			"dip_current_path", "aip_current_location", "dip_current_location",
			"aip_resource_uri", "dip_resource_uri", "origin_pipeline",
			"package_ids", "has_dao_ids",
		},
		ClassIRI: Namespace + "Package",
	},
	PublishedWork: {
		Extra: []string{
			"abstract", "date_published", "date_available", "date_accepted",
			"date_submitted", "edition", "editor", "isbn", "issue_number",
			"official_url", "pagination", "part", "place_of_publication",
			"publication_status", "refereed", "series", "volume_number",
		},
		ClassIRI: Namespace + "PublishedWork",
	},
	Thesis: {
		Extra: []string{
			"abstract", "advisor", "date_of_award", "awarding_institution",
			"qualification_level", "qualification_name",
		},
		ClassIRI: "https://bib.schema.org/Thesis",
	},
	InformationSheet: {
		Extra:    []string{"brand", "product", "release_date"},
		ClassIRI: Namespace + "InformationSheet",
	},
	ArchivalResource: {
		Extra: []string{
			"archival_level", "access_provided_by", "access_restrictions",
			"dates", "extent", "has_dao_ids",
		},
		ClassIRI: Namespace + "ArchivalResource",
	},
}

// Lookup returns the definition of t. The returned slices are copies.
func Lookup(t Type) (Definition, bool) {
	d, ok := definitions[t]
	if !ok {
		return Definition{}, false
	}
	d.Extra = append([]string(nil), d.Extra...)
	if d.Required != nil {
		d.Required = append([]string(nil), d.Required...)
	}
	return d, true
}
