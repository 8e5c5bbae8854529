// Package assemble turns indexed CASE items plus resolved adjacency into
// the output graphs: one framework graph and one course graph per course
// item, one learning-program wrapper per pathway item. Assembly is
// single-threaded and referentially transparent: unchanged input and
// options reproduce byte-identical member ordering, identifiers, and
// cross-links.
package assemble

import (
	"strings"

	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/ctdl"
	"github.com/vk/casebridge/internal/ctid"
	"github.com/vk/casebridge/internal/flatten"
	"github.com/vk/casebridge/internal/hierarchy"
)

// Input bundles the read-only structures one conversion pass consumes. All
// of them are constructed fresh per run and never mutated by assembly.
type Input struct {
	Document casepkg.Document
	Index    *caseindex.Index
	Graph    *hierarchy.Graph
	Options  Options
}

// Options are the resolved configuration values assembly needs: the
// registry base for external identifiers and the optional organization
// reference lists (already expanded to registry URIs).
type Options struct {
	RegistryBase string
	Publisher    []string
	OwnedBy      []string
	OfferedBy    []string
}

// Base returns the registry base, defaulting to the production registry.
func (o Options) Base() string {
	if o.RegistryBase == "" {
		return ctdl.DefaultRegistryBase
	}
	return o.RegistryBase
}

// buildCourse projects a classified course item into its CTDL template.
// The teaches list stays empty until the course's framework exists.
func buildCourse(it casepkg.Item, ident, lang, base string, opts Options) *ctdl.Course {
	name := strings.TrimSpace(flatten.String(it.AbbreviatedStatement))
	if name == "" {
		name = strings.TrimSpace(flatten.String(it.FullStatement))
	}
	desc := strings.TrimSpace(flatten.String(it.FullStatement))

	course := &ctdl.Course{
		ID:             ctid.RegistryURI(base, ident),
		Type:           ctdl.TypeCourse,
		CTID:           ctid.Tag(ident),
		InLanguage:     lang,
		Name:           ctdl.Tagged(lang, name),
		CodedNotation:  strings.TrimSpace(flatten.String(it.HumanCodingScheme)),
		SubjectWebpage: it.SourceURI(),
		OwnedBy:        opts.OwnedBy,
		OfferedBy:      opts.OfferedBy,
	}
	// The description repeats the name often enough that emitting both is
	// pure noise; keep it only when it adds information.
	if desc != "" && desc != name {
		course.Description = ctdl.Tagged(lang, desc)
	}
	return course
}

// buildCompetency projects a competency-like item into its CTDL-ASN
// template. Relationship fields are left zero; they belong to clones.
func buildCompetency(it casepkg.Item, ident, lang, base string, graph *hierarchy.Graph) *ctdl.Competency {
	comp := &ctdl.Competency{
		ID:            ctid.RegistryURI(base, ident),
		Type:          ctdl.TypeCompetency,
		CTID:          ctid.Tag(ident),
		InLanguage:    lang,
		Text:          ctdl.Tagged(lang, flatten.String(it.FullStatement)),
		Label:         ctdl.Tagged(lang, flatten.String(it.AbbreviatedStatement)),
		Category:      ctdl.Tagged(lang, flatten.String(it.ItemType)),
		CodedNotation: strings.TrimSpace(flatten.String(it.HumanCodingScheme)),
	}

	// List position: the item's own declared position wins; the first-seen
	// association sequence hint is the fallback ordinal.
	if it.ListEnumInSource != nil {
		comp.ListID = flatten.String(it.ListEnumInSource)
	} else if hint, ok := graph.SequenceHint(ident); ok {
		comp.ListID = hint
	}

	// Self-referential stub pointing back at the item's CASE URI.
	if uri := flatten.String(it.URI); uri != "" {
		comp.BroadAlignment = map[string]string{uri: ""}
	}
	return comp
}
