package resolver

import (
	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/worktype"
)

// DateRangeField is added to AllProperties when the date range search is on.
const DateRangeField fields.Field = "date_range"

// DefaultRestrictedRole is the role allowed to edit restricted fields.
const DefaultRestrictedRole = "admin"

// RequiredProperties returns the global default required fields.
func RequiredProperties() fields.Set {
	return fields.Set{"title", "creator", "keyword", "rights_statement"}
}

// BaseProperties returns the basic metadata every work type carries.
// bibliographic_citation is deliberately absent.
func BaseProperties() fields.Set {
	return fields.Set{
		"title",
		"creator",
		"contributor",
		"description",
		"keyword",
		"license",
		"rights_statement",
		"publisher",
		"date_created",
		"subject",
		"language",
		"identifier",
		"based_near",
		"related_url",
		"resource_type",
		"source",
	}
}

// CommonProperties returns the fields shared by every work type on top of
// the basic metadata. date is left out, it is only used for faceting.
func CommonProperties() fields.Set {
	return fields.Set{
		"department",
		"doi",
		"former_identifier",
		"note",
		"output_of",
		"lat",
		"long",
		"alt",
		"location",
		"managing_organisation",
		"funder",
	}
}

// defaultFacets is in display order. Every entry must be indexed facetable.
func defaultFacets() fields.Set {
	return fields.Set{
		"human_readable_type",
		"resource_type",
		"creator",
		"contributor_combined",
		"contributor_type",
		"publisher",
		"department",
		"funder",
		"date",
		"keyword",
		"subject",
		"language",
		"based_near_label",
		"part_of",
		"qualification_level",
		"qualification_name",
		"refereed",
		"publication_status",
		"content_version",
		"packaged_by_titles",
		"in_archival_resource_titles",
	}
}

// defaultFacetOnly are produced by the indexer and never shown in the form
// or the show page. They are all facets too.
func defaultFacetOnly() fields.Set {
	return fields.Set{
		"contributor_combined",
		"contributor_type",
		"date",
		"human_readable_type",
		"packaged_by_titles",
		"in_archival_resource_titles",
	}
}

// defaultIndex is the search results view, in display order.
func defaultIndex() fields.Set {
	return fields.Set{
		"title",
		"creator",
		"publisher",
		"contributor_combined",
		"date",
		"keyword",
		"subject",
		"resource_type",
		"rights_statement",
		"license",
		"language",
		"depositor",
		"proxy_depositor",
		"embargo_release_date",
		"lease_expiration_date",
	}
}

func defaultExcludeFromSearch() fields.Set {
	return fields.Set{
		"last_access",
		"number_of_downloads",
		"aip_current_path",
		"dip_current_path",
		"aip_current_location",
		"dip_current_location",
		"aip_resource_uri",
		"dip_resource_uri",
		"packaged_by_ids",
		"in_archival_resource_ids",
	}
}

// defaultSingular are rendered as single value inputs.
func defaultSingular() fields.Set {
	return fields.Set{
		"date_accepted",
		"date_available",
		"date_created",
		"date_collected",
		"date_copyrighted",
		"date_issued",
		"date_published",
		"date_submitted",
		"date_updated",
		"date_valid",
		"end_date",
		"event_date",
		"issue_number",
		"pagination",
		"publication_status",
		"refereed",
		"release_date",
		"start_date",
		"volume_number",
		"aip_uuid",
		"transfer_uuid",
		"sip_uuid",
		"dip_uuid",
		"aip_status",
		"dip_status",
		"aip_size",
		"dip_size",
		"aip_current_path",
		"dip_current_path",
		"aip_current_location",
		"dip_current_location",
		"aip_resource_uri",
		"dip_resource_uri",
		"origin_pipeline",
		"last_access",
		"number_of_downloads",
	}
}

func defaultDates() fields.Set {
	return fields.Set{
		"date_accepted",
		"date_available",
		"date_collected",
		"date_copyrighted",
		"date_created",
		"date_issued",
		"date_published",
		"date_submitted",
		"date_updated",
		"date_valid",
		"date_of_award",
		"event_date",
		"release_date",
		"start_date",
		"end_date",
	}
}

func defaultRestricted() fields.Set {
	return fields.Set{"last_access", "number_of_downloads"}
}

// Catalogue returns every field named by the built-in defaults, sorted.
func Catalogue() fields.Set {
	lists := []fields.Set{
		BaseProperties(),
		CommonProperties(),
		RequiredProperties(),
		defaultFacets(),
		defaultFacetOnly(),
		defaultIndex(),
		defaultExcludeFromSearch(),
		defaultSingular(),
		defaultDates(),
		defaultRestricted(),
		{DateRangeField},
	}
	for _, t := range worktype.All() {
		def, _ := worktype.Lookup(t)
		lists = append(lists, fields.ParseSet(def.Extra), fields.ParseSet(def.Required))
	}
	return fields.Canonical(lists...)
}
