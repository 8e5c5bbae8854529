// Package ctid builds and checks Credential Engine identifiers. Natural
// identifiers are CASE GUIDs normalized to carry the "ce-" registry prefix;
// synthetic identifiers (one framework per course) are derived with a
// name-based UUID so repeated conversions of the same input are idempotent.
package ctid

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix is the registry tag every CTID carries.
const Prefix = "ce-"

// Tag normalizes a raw identifier into a CTID by prepending the registry
// prefix when it is not already present.
func Tag(id string) string {
	if strings.HasPrefix(id, Prefix) {
		return id
	}
	return Prefix + id
}

// RegistryURI builds the external identifier for an entity by joining the
// configured registry base with the tagged identifier.
func RegistryURI(base, id string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + Tag(id)
}

// IsRegistryURI reports whether a value has the strict shape of a registry
// resource URI under the given base: an http(s) URL whose path continues
// with a ce- tagged identifier.
func IsRegistryURI(value, base string) bool {
	if !strings.HasPrefix(value, "http") {
		return false
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return strings.HasPrefix(value, base+Prefix)
}

// Extract returns the CTID carried by a registry URI or a raw identifier.
// URIs yield their last path segment verbatim; bare identifiers are tagged.
func Extract(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http") {
		trimmed := strings.TrimRight(s, "/")
		return trimmed[strings.LastIndex(trimmed, "/")+1:]
	}
	return Tag(s)
}

// ParseList converts a comma-separated list of CTIDs and/or full registry
// URIs into registry URIs. Blank entries are dropped.
func ParseList(raw, base string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var uris []string
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "http") {
			uris = append(uris, p)
		} else {
			uris = append(uris, RegistryURI(base, p))
		}
	}
	return uris
}

// Synthetic derives a deterministic CTID for a generated container from the
// identifier of its root entity. The UUID is name-based (version 5 over the
// URL namespace), so the same root always yields the same container CTID.
func Synthetic(kind, rootCTID string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(kind+":"+rootCTID))
	return Prefix + u.String()
}
