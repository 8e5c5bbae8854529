package assemble

import (
	"context"
	"sort"
	"strings"

	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/ctdl"
	"github.com/vk/casebridge/internal/ctid"
	"github.com/vk/casebridge/internal/ctxlog"
	"github.com/vk/casebridge/internal/flatten"
)

// Constant condition-profile metadata for every preparation target list.
const (
	preparationName        = "Is Preparation For"
	preparationDescription = "Students who complete this CTAE pathway will be prepared to earn the following courses of value."
)

// ProgramEntry is the per-pathway output unit.
type ProgramEntry struct {
	Program *ctdl.LearningProgram
}

// Wrapper builds the registry publish envelope for the program.
func (e *ProgramEntry) Wrapper(publisherCTID string) ctdl.PublishWrapper {
	return ctdl.PublishWrapper{
		PublishForOrganizationIdentifier: publisherCTID,
		GraphInput: ctdl.Graph{
			Context: ctdl.ContextCTDL,
			ID:      e.Program.ID,
			Nodes:   []any{e.Program},
		},
	}
}

// ProgramSet is the result of the pathway pass, one entry per pathway item
// in index order.
type ProgramSet struct {
	Entries []*ProgramEntry
}

// Programs runs the pathway pass: each pathway item becomes a CTDL
// LearningProgram whose preparation targets aggregate every course exposed
// by the pathway's parents plus the pathway's own direct course children.
func Programs(ctx context.Context, in Input) *ProgramSet {
	logger := ctxlog.FromContext(ctx)
	base := in.Options.Base()
	lang := programLanguage(in.Document.DeclaredLanguage())

	// Partition once; both category sets drive the aggregation below.
	courses := make(map[string]bool)
	var pathwayOrder []string
	for _, ident := range in.Index.Order() {
		it, _ := in.Index.Item(ident)
		switch caseindex.Classify(it) {
		case caseindex.CategoryCourse:
			courses[ident] = true
		case caseindex.CategoryPathway:
			pathwayOrder = append(pathwayOrder, ident)
		}
	}
	logger.Debug("Pathway pass partitioned items.", "pathways", len(pathwayOrder), "courses", len(courses))

	set := &ProgramSet{}
	for _, ident := range pathwayOrder {
		entry := &ProgramEntry{Program: buildProgram(in, ident, courses, lang, base)}
		set.Entries = append(set.Entries, entry)
		logger.Debug("Learning program assembled.",
			"program", entry.Program.CTID,
			"preparation_targets", len(entry.Program.IsPreparationFor),
		)
	}
	return set
}

func buildProgram(in Input, ident string, courses map[string]bool, lang, base string) *ctdl.LearningProgram {
	item, _ := in.Index.Item(ident)

	name := strings.TrimSpace(flatten.String(item.AbbreviatedStatement))
	if name == "" {
		name = strings.TrimSpace(flatten.String(item.FullStatement))
	}
	// Pathway notes are richer than the statement text when both exist.
	desc := strings.TrimSpace(flatten.String(item.Notes))
	if desc == "" {
		desc = strings.TrimSpace(flatten.String(item.FullStatement))
	}

	lp := &ctdl.LearningProgram{
		ID:              ctid.RegistryURI(base, ident),
		Type:            ctdl.TypeLearningProgram,
		CTID:            ctid.Tag(ident),
		LifeCycleStatus: ctdl.ActiveLifeCycle(),
		OwnedBy:         in.Options.OwnedBy,
		OfferedBy:       in.Options.OfferedBy,
		Name:            ctdl.Tagged(lang, name),
		Description:     ctdl.Tagged(lang, desc),
		SubjectWebpage:  in.Index.SourceURI(ident),
	}
	if lang != "" {
		lp.InLanguage = []string{lang}
	}

	if targets := preparationTargets(in, ident, courses, base); len(targets) > 0 {
		lp.IsPreparationFor = []ctdl.ConditionProfile{{
			Type:                      ctdl.TypeConditionProfile,
			Name:                      &ctdl.LangString{Lang: "en-US", Text: preparationName},
			Description:               &ctdl.LangString{Lang: "en-US", Text: preparationDescription},
			TargetLearningOpportunity: targets,
		}}
	}
	return lp
}

// preparationTargets collects every course reachable as a sibling through
// the pathway's parents, plus the pathway's own direct course children,
// deduplicated and sorted by identifier for determinism.
func preparationTargets(in Input, pathwayIdent string, courses map[string]bool, base string) []string {
	targets := make(map[string]bool)
	for _, parent := range in.Graph.Parents(pathwayIdent) {
		for _, sibling := range in.Graph.Children(parent) {
			if courses[sibling] {
				targets[sibling] = true
			}
		}
	}
	for _, child := range in.Graph.Children(pathwayIdent) {
		if courses[child] {
			targets[child] = true
		}
	}
	if len(targets) == 0 {
		return nil
	}

	idents := make([]string, 0, len(targets))
	for ident := range targets {
		idents = append(idents, ident)
	}
	sort.Strings(idents)

	uris := make([]string, len(idents))
	for i, ident := range idents {
		uris[i] = ctid.RegistryURI(base, ident)
	}
	return uris
}

// programLanguage applies the pathway pass's language normalization: the
// three-letter "eng" collapses to "en", everything else passes through.
func programLanguage(raw string) string {
	if strings.EqualFold(raw, "eng") {
		return "en"
	}
	return raw
}
