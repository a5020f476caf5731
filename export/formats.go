package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or file extension, e.g. "ttl" or
// ".jsonld".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for format, info := range FormatRegistry {
		if name == string(format) || name == info.Extension || "."+name == info.Extension {
			return format, nil
		}
	}

	names := make([]string, 0, len(FormatRegistry))
	for format := range FormatRegistry {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return "", fmt.Errorf("unsupported format %q, supported formats are: %s", name, strings.Join(names, ", "))
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []JSONLDNode      `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON flattens Properties into the node object.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	for k, v := range n.Properties {
		m[k] = v
	}
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	return json.Marshal(m)
}

type jsonldRef struct {
	ID string `json:"@id"`
}

func (e *Exporter) toJSONLD() (string, error) {
	doc := JSONLDDocument{
		Context: e.prefixes,
		Graph:   make([]JSONLDNode, 0, len(e.entities)),
	}

	for _, ent := range e.entities {
		node := JSONLDNode{ID: ent.IRI, Properties: make(map[string]any)}
		for _, s := range ent.Statements {
			if s.Predicate == rdfType {
				node.Type = append(node.Type, s.Object)
				continue
			}
			var value any = s.Object
			if s.IsIRI {
				value = jsonldRef{ID: s.Object}
			}
			switch prev := node.Properties[s.Predicate].(type) {
			case nil:
				node.Properties[s.Predicate] = value
			case []any:
				node.Properties[s.Predicate] = append(prev, value)
			default:
				node.Properties[s.Predicate] = []any{prev, value}
			}
		}
		doc.Graph = append(doc.Graph, node)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data) + "\n", nil
}
