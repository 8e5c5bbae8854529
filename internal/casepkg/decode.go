package casepkg

import (
	"encoding/json"
	"fmt"
)

// body mirrors the collection fields of a CFPackage. Some producers emit the
// collections under singular keys, so both spellings are accepted.
type body struct {
	Document        Document      `json:"CFDocument"`
	Items           []Item        `json:"CFItems"`
	ItemsAlt        []Item        `json:"CFItem"`
	Associations    []Association `json:"CFAssociations"`
	AssociationsAlt []Association `json:"CFAssociation"`
}

// envelope detects whether the package body is nested under a CFPackage key
// or sits at the top level of the document.
type envelope struct {
	CFPackage json.RawMessage `json:"CFPackage"`
}

// Decode parses a CASE exchange document. A document that is not valid JSON
// or whose top-level structure cannot be read is a fatal input error; all
// finer-grained malformations (missing identifiers, unresolved endpoints)
// are tolerated downstream.
func Decode(data []byte) (*Package, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse CASE package: %w", err)
	}

	raw := data
	if len(env.CFPackage) > 0 && string(env.CFPackage) != "null" {
		raw = env.CFPackage
	}

	var b body
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to parse CASE package body: %w", err)
	}

	pkg := &Package{
		Document:     b.Document,
		Items:        b.Items,
		Associations: b.Associations,
	}
	if len(pkg.Items) == 0 {
		pkg.Items = b.ItemsAlt
	}
	if len(pkg.Associations) == 0 {
		pkg.Associations = b.AssociationsAlt
	}
	return pkg, nil
}
