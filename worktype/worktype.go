// Package worktype defines the closed set of repository work types and the
// fields each one adds on top of the shared metadata.
package worktype

import (
	"fmt"
	"strings"
	"unicode"
)

// Type is a repository content type such as Thesis or Dataset.
type Type string

const (
	ConferenceItem        Type = "ConferenceItem"
	Dataset               Type = "Dataset"
	DigitalArchivalObject Type = "DigitalArchivalObject"
	ExamPaper             Type = "ExamPaper"
	JournalArticle        Type = "JournalArticle"
	Image                 Type = "Image"
	Package               Type = "Package"
	PublishedWork         Type = "PublishedWork"
	Thesis                Type = "Thesis"
	InformationSheet      Type = "InformationSheet"
	ArchivalResource      Type = "ArchivalResource"
)

// all lists the supported types in their canonical order.
var all = []Type{
	ConferenceItem,
	Dataset,
	DigitalArchivalObject,
	ExamPaper,
	JournalArticle,
	Image,
	Package,
	PublishedWork,
	Thesis,
	InformationSheet,
	ArchivalResource,
}

// All returns every supported type. The slice is a copy.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// IsValid checks if t is one of the supported types.
func (t Type) IsValid() bool {
	_, ok := definitions[t]
	return ok
}

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Key returns the snake_case form used in configuration keys and entity IDs,
// e.g. "conference_item".
func (t Type) Key() string {
	var sb strings.Builder
	for i, r := range string(t) {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Parse accepts either the type name ("JournalArticle") or its key
// ("journal_article").
func Parse(name string) (Type, error) {
	name = strings.TrimSpace(name)
	for _, t := range all {
		if string(t) == name || t.Key() == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported model %q, supported models are: %s", name, Names())
}

// Names returns the comma separated list of supported type names.
func Names() string {
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
