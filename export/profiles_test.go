package export_test

import (
	"testing"

	"github.com/c360studio/propset/export"
)

func TestGetProfileConfig(t *testing.T) {
	tests := []struct {
		profile      export.Profile
		wantRequired bool
		wantDeclare  bool
	}{
		{export.ProfileMinimal, false, false},
		{export.ProfileFull, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.profile), func(t *testing.T) {
			config := export.GetProfileConfig(tc.profile)
			if config.IncludeRequired != tc.wantRequired {
				t.Errorf("IncludeRequired = %v, want %v", config.IncludeRequired, tc.wantRequired)
			}
			if config.DeclareProperties != tc.wantDeclare {
				t.Errorf("DeclareProperties = %v, want %v", config.DeclareProperties, tc.wantDeclare)
			}
		})
	}
}

func TestGetProfileConfigUnknown(t *testing.T) {
	config := export.GetProfileConfig("unknown")
	if config.Name != export.ProfileMinimal {
		t.Errorf("Unknown profile should default to minimal, got %s", config.Name)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    export.Format
		wantErr bool
	}{
		{"turtle", export.FormatTurtle, false},
		{"ttl", export.FormatTurtle, false},
		{".nt", export.FormatNTriples, false},
		{" JSONLD ", export.FormatJSONLD, false},
		{"rdfxml", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := export.ParseFormat(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestFormatRegistry(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples, export.FormatJSONLD} {
		info, ok := export.GetFormatInfo(format)
		if !ok {
			t.Errorf("format %s missing from registry", format)
			continue
		}
		if info.MIMEType == "" || info.Extension == "" {
			t.Errorf("format %s has incomplete metadata: %+v", format, info)
		}
	}
}
