package export

// Profile determines how much of the configuration an export describes.
type Profile string

const (
	// ProfileMinimal links each work type to its class and field properties.
	ProfileMinimal Profile = "minimal"

	// ProfileFull adds required fields and rdf:Property declarations of
	// every field.
	ProfileFull Profile = "full"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	Name        Profile
	Description string

	// IncludeRequired adds the requiresField links of each work type.
	IncludeRequired bool

	// DeclareProperties describes each field property with its label and
	// range.
	DeclareProperties bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "Work type classes and field properties",
	},
	ProfileFull: {
		Name:              ProfileFull,
		Description:       "Work types, required fields and property declarations",
		IncludeRequired:   true,
		DeclareProperties: true,
	},
}

// GetProfileConfig returns the configuration for a profile, falling back to
// the minimal profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}
