// Package casepkg models a CASE CFPackage exchange document as received
// from a registry or a local export. Fields that real-world producers emit
// in inconsistent shapes (strings, lists, labeled objects) are kept as
// decoded JSON values and reduced to text later through the flatten rules.
package casepkg

import (
	"strings"

	"github.com/vk/casebridge/internal/flatten"
)

// Document carries the package-level metadata of a CFPackage.
type Document struct {
	Language          any `json:"language"`
	DocumentURI       any `json:"CFDocumentURI"`
	OfficialSourceURL any `json:"officialSourceURL"`
	Publisher         any `json:"publisher"`
	Description       any `json:"description"`
	Title             any `json:"title"`
}

// DeclaredLanguage returns the document language exactly as provided,
// trimmed, or "" when none was declared.
func (d Document) DeclaredLanguage() string {
	return strings.TrimSpace(flatten.String(d.Language))
}

// SourceWebpage returns the document's own URI, falling back to the
// official source URL.
func (d Document) SourceWebpage() string {
	if s := flatten.String(d.DocumentURI); s != "" {
		return s
	}
	return flatten.String(d.OfficialSourceURL)
}

// Item is a single addressable unit in the source document: a course, a
// competency, a pathway, or anything else the producer chose to type it as.
type Item struct {
	Identifier           any `json:"identifier"`
	GUID                 any `json:"CFItemGUID"`
	ItemType             any `json:"CFItemType"`
	FullStatement        any `json:"fullStatement"`
	AbbreviatedStatement any `json:"abbreviatedStatement"`
	Notes                any `json:"notes"`
	HumanCodingScheme    any `json:"humanCodingScheme"`
	ListEnumInSource     any `json:"listEnumInSource"`
	URI                  any `json:"uri"`
	ItemURI              any `json:"CFItemURI"`
}

// Ident returns the item's identifier, preferring the identifier field over
// the CFItemGUID fallback. Items without one are not indexable.
func (it Item) Ident() string {
	if s := strings.TrimSpace(flatten.String(it.Identifier)); s != "" {
		return s
	}
	return strings.TrimSpace(flatten.String(it.GUID))
}

// SourceURI returns the item's declared CASE URI, falling back to the
// CFItemURI field, or "" when neither is present.
func (it Item) SourceURI() string {
	if s := flatten.String(it.URI); s != "" {
		return s
	}
	return flatten.String(it.ItemURI)
}

// Association is a declared relation between two items. Endpoints may be a
// bare identifier or an embedded object carrying one; SequenceNumber is an
// optional explicit ordering value for the origin (child) item.
type Association struct {
	AssociationType       any `json:"associationType"`
	DestinationURI        any `json:"destinationNodeURI"`
	DestinationIdentifier any `json:"destinationNodeIdentifier"`
	OriginURI             any `json:"originNodeURI"`
	OriginIdentifier      any `json:"originNodeIdentifier"`
	SequenceNumber        any `json:"sequenceNumber"`
}

// Destination returns the raw parent endpoint, preferring the URI form.
func (a Association) Destination() any {
	return firstEndpoint(a.DestinationURI, a.DestinationIdentifier)
}

// Origin returns the raw child endpoint, preferring the URI form.
func (a Association) Origin() any {
	return firstEndpoint(a.OriginURI, a.OriginIdentifier)
}

// Sequence returns the association's explicit ordering value as trimmed
// text, and whether one was present.
func (a Association) Sequence() (string, bool) {
	if a.SequenceNumber == nil {
		return "", false
	}
	return strings.TrimSpace(flatten.String(a.SequenceNumber)), true
}

// EndpointIdent reduces a raw endpoint reference to an item identifier.
// Embedded objects resolve through their identifier or CFItemGUID field;
// anything else is treated as a bare identifier string.
func EndpointIdent(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case map[string]any:
		if s := strings.TrimSpace(flatten.String(v["identifier"])); s != "" {
			return s
		}
		return strings.TrimSpace(flatten.String(v["CFItemGUID"]))
	default:
		return strings.TrimSpace(flatten.String(v))
	}
}

func firstEndpoint(primary, fallback any) any {
	switch v := primary.(type) {
	case nil:
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if len(v) > 0 {
			return v
		}
	default:
		return v
	}
	return fallback
}

// Package is a decoded CFPackage: the document metadata plus the flat item
// and association collections. All fields are read-only inputs for the
// duration of one conversion run.
type Package struct {
	Document     Document
	Items        []Item
	Associations []Association
}
