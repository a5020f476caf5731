package repository

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/worktype"
)

func TestCataloguePredicatesRegistered(t *testing.T) {
	for _, f := range resolver.Catalogue() {
		pred := Predicate(f)
		t.Run(pred, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(pred)
			require.NotNil(t, meta, "predicate %s not registered", pred)
			assert.NotEmpty(t, meta.Description)
			assert.Equal(t, IRI(f), meta.StandardIRI)
		})
	}
}

func TestWorkTypePredicatesRegistered(t *testing.T) {
	tests := []struct {
		predicate   string
		expectedIRI string
	}{
		{WorkTypeHasField, PropHasField},
		{WorkTypeRequiresField, PropRequiresField},
		{WorkTypeClass, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tt.predicate)
			require.NotNil(t, meta)
			assert.Equal(t, tt.expectedIRI, meta.StandardIRI)
		})
	}
}

func TestIRIMappings(t *testing.T) {
	tests := []struct {
		field    fields.Field
		expected string
	}{
		{"title", "http://purl.org/dc/terms/title"},
		{"date_created", DcTerms + "created"},
		{"isbn", Bibo + "isbn"},
		{"keyword", SchemaOrg + "keywords"},
		{"lat", Geo + "lat"},
		{"advisor", Relators + "ths"},
		{"qualification_name", Namespace + "qualificationName"},
		{"aip_current_path", Namespace + "aipCurrentPath"},
		{"depositor", Namespace + "depositor"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.expected, IRI(tt.field))
		})
	}
}

func TestDataTypes(t *testing.T) {
	tests := []struct {
		field    fields.Field
		expected string
	}{
		{"date_published", "datetime"},
		{"date_of_award", "datetime"},
		{"aip_size", "int"},
		{"number_of_downloads", "int"},
		{"refereed", "bool"},
		{"packaged_by_ids", "entity_id"},
		{"pagination", "string"},
		{"aip_uuid", "string"},
		{"creator", "array"},
		{"keyword", "array"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(Predicate(tt.field))
			require.NotNil(t, meta)
			assert.Equal(t, tt.expected, meta.DataType)
		})
	}
}

func TestRegisterFieldsAddsNewOnly(t *testing.T) {
	custom := fields.Field("propset_test_shelf_mark")
	require.Nil(t, vocabulary.GetPredicateMetadata(Predicate(custom)))

	RegisterFields(fields.Set{"title", custom})

	meta := vocabulary.GetPredicateMetadata(Predicate(custom))
	require.NotNil(t, meta)
	assert.Equal(t, Namespace+"propsetTestShelfMark", meta.StandardIRI)
	assert.Equal(t, "array", meta.DataType)

	title := vocabulary.GetPredicateMetadata(Predicate("title"))
	require.NotNil(t, title)
	assert.Equal(t, vocabulary.DcTitle, title.StandardIRI)
}

func TestClassAndEntity(t *testing.T) {
	assert.Equal(t, "http://www.w3.org/ns/dcat#Dataset", ClassIRI(worktype.Dataset))
	assert.Equal(t, "https://bib.schema.org/Thesis", ClassIRI(worktype.Thesis))
	assert.Empty(t, ClassIRI(worktype.Type("Painting")))

	assert.Equal(t, "propset.worktype.journal_article", EntityID(worktype.JournalArticle))
	assert.Equal(t, EntityNamespace+"conference_item", EntityIRI(worktype.ConferenceItem))
}

func TestLowerCamel(t *testing.T) {
	assert.Equal(t, "managingOrganisation", lowerCamel("managing_organisation"))
	assert.Equal(t, "doi", lowerCamel("doi"))
	assert.Equal(t, "aipSize", lowerCamel("aip__size"))
}
