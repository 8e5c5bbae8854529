package assemble

import (
	"context"
	"strings"

	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/ctdl"
	"github.com/vk/casebridge/internal/ctid"
	"github.com/vk/casebridge/internal/ctxlog"
	"github.com/vk/casebridge/internal/flatten"
)

// FrameworkEntry is the per-course output unit: the course node with its
// populated teaches list, the generated framework node, and the framework's
// ordered member clones.
type FrameworkEntry struct {
	Course    *ctdl.Course
	Framework *ctdl.Framework
	Members   []*ctdl.Competency
}

// FrameworkGraph wraps the framework node and its member clones as a
// CTDL-ASN linked-data document.
func (e *FrameworkEntry) FrameworkGraph() ctdl.Graph {
	nodes := make([]any, 0, len(e.Members)+1)
	nodes = append(nodes, e.Framework)
	for _, m := range e.Members {
		nodes = append(nodes, m)
	}
	return ctdl.Graph{Context: ctdl.ContextCTDLASN, ID: e.Framework.ID, Nodes: nodes}
}

// CourseGraph wraps the standalone course node as a CTDL document.
func (e *FrameworkEntry) CourseGraph() ctdl.Graph {
	return ctdl.Graph{Context: ctdl.ContextCTDL, Nodes: []any{e.Course}}
}

// FrameworkSet is the result of the course/framework pass, one entry per
// course item in index order.
type FrameworkSet struct {
	Entries []*FrameworkEntry
}

// MemberCount returns the total number of competency clones across all
// frameworks in the set.
func (s *FrameworkSet) MemberCount() int {
	n := 0
	for _, e := range s.Entries {
		n += len(e.Members)
	}
	return n
}

// Frameworks runs the course/framework pass: build templates for every
// indexed item, then synthesize one framework per course owning the cloned,
// locally re-linked subtree of its competency descendants.
func Frameworks(ctx context.Context, in Input) *FrameworkSet {
	logger := ctxlog.FromContext(ctx)
	base := in.Options.Base()
	lang := in.Document.DeclaredLanguage()

	// Template construction in index order: courses and competencies are
	// partitioned by category; pathways are out of scope for this pass and
	// fall into the competency-like bucket by classification.
	var courseOrder []string
	courses := make(map[string]*ctdl.Course)
	competencies := make(map[string]*ctdl.Competency)
	eligible := make(map[string]bool)

	for _, ident := range in.Index.Order() {
		it, _ := in.Index.Item(ident)
		if caseindex.Classify(it) == caseindex.CategoryCourse {
			courses[ident] = buildCourse(it, ident, lang, base, in.Options)
			courseOrder = append(courseOrder, ident)
			continue
		}
		competencies[ident] = buildCompetency(it, ident, lang, base, in.Graph)
		eligible[ident] = true
	}
	logger.Debug("Templates built.", "courses", len(courses), "competencies", len(competencies))

	set := &FrameworkSet{}
	for _, courseIdent := range courseOrder {
		entry := assembleFramework(in, courses[courseIdent], courseIdent, competencies, eligible, lang, base)
		set.Entries = append(set.Entries, entry)
		logger.Debug("Framework assembled.",
			"course", entry.Course.CTID,
			"framework", entry.Framework.CTID,
			"members", len(entry.Members),
		)
	}
	return set
}

// assembleFramework synthesizes one framework for one course and clones the
// course's competency subtree into it.
func assembleFramework(
	in Input,
	course *ctdl.Course,
	courseIdent string,
	competencies map[string]*ctdl.Competency,
	eligible map[string]bool,
	lang, base string,
) *FrameworkEntry {
	// Identifier assignment for synthetic containers happens per root: the
	// framework CTID is a pure function of the course CTID.
	fwCTID := ctid.Synthetic("framework", course.CTID)
	fwID := ctid.RegistryURI(base, fwCTID)

	fw := &ctdl.Framework{
		ID:   fwID,
		Type: ctdl.TypeFramework,
		CTID: fwCTID,
		// The course name is already unwrapped text, so re-tagging it here
		// cannot double-encode an existing language map.
		Name:           &ctdl.LangString{Lang: lang, Text: course.Name.Value()},
		SubjectWebpage: in.Document.SourceWebpage(),
		PublisherName:  ctdl.Tagged(lang, flatten.String(in.Document.Publisher)),
		Description:    ctdl.Tagged(lang, strings.TrimSpace(flatten.String(in.Document.Description))),
		Publisher:      in.Options.Publisher,
		HasTopChild:    []string{},
	}
	if lang != "" {
		fw.InLanguage = []string{lang}
	}

	// The course's direct adjacency children that are competency-like are
	// the framework's top-level members, in adjacency order.
	var roots []string
	for _, child := range in.Graph.Children(courseIdent) {
		if eligible[child] {
			roots = append(roots, child)
			fw.HasTopChild = append(fw.HasTopChild, ctid.RegistryURI(base, child))
		}
	}

	// One visited set per container: independent root traversals share it
	// so the member list has no duplicates even when roots share a
	// descendant. It is discarded with this frame, never reused.
	visited := make(map[string]bool)
	var memberIdents []string
	for _, root := range roots {
		memberIdents = append(memberIdents, in.Graph.Expand(root, eligible, visited)...)
	}

	// Clone each member template and stamp the container back-reference.
	clones := make(map[string]*ctdl.Competency, len(memberIdents))
	members := make([]*ctdl.Competency, 0, len(memberIdents))
	for _, ident := range memberIdents {
		clone := competencies[ident].Clone()
		clone.IsPartOf = fwID
		clones[ident] = clone
		members = append(members, clone)
	}

	// Rebuild strictly local cross-links: a clone's children are the subset
	// of its adjacency children that live in this same container, and each
	// such child accumulates the reciprocal parent reference.
	for _, ident := range memberIdents {
		parent := clones[ident]
		for _, childIdent := range in.Graph.Children(ident) {
			child, local := clones[childIdent]
			if !local {
				continue
			}
			parent.HasChild = append(parent.HasChild, child.ID)
			if !containsString(child.IsChildOf, parent.ID) {
				child.IsChildOf = append(child.IsChildOf, parent.ID)
			}
		}
	}

	// Forward references: one teaches entry per ordered member, carrying
	// the framework's true identity now that the framework node exists.
	if len(members) > 0 {
		teaches := make([]ctdl.Alignment, 0, len(members))
		for _, m := range members {
			teaches = append(teaches, ctdl.Alignment{
				Type:           ctdl.TypeAlignment,
				Framework:      fwID,
				TargetNode:     m.ID,
				FrameworkName:  fw.Name.Clone(),
				TargetNodeName: &ctdl.LangString{Lang: lang, Text: m.DisplayText()},
			})
		}
		course.Teaches = teaches
	}

	return &FrameworkEntry{Course: course, Framework: fw, Members: members}
}

func containsString(list []string, s string) bool {
	for _, existing := range list {
		if existing == s {
			return true
		}
	}
	return false
}
