package assemble

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/ctdl"
	"github.com/vk/casebridge/internal/hierarchy"
)

const testBase = "https://credentialengineregistry.org/resources/"

func childOf(child, parent string) casepkg.Association {
	return casepkg.Association{
		AssociationType:       "isChildOf",
		OriginIdentifier:      child,
		DestinationIdentifier: parent,
	}
}

func course(ident, name string) casepkg.Item {
	return casepkg.Item{Identifier: ident, ItemType: "Course", AbbreviatedStatement: name}
}

func competency(ident, text string) casepkg.Item {
	return casepkg.Item{Identifier: ident, ItemType: "Competency", FullStatement: text}
}

func makeInput(doc casepkg.Document, items []casepkg.Item, assocs []casepkg.Association, opts Options) Input {
	idx := caseindex.New(items)
	if opts.RegistryBase == "" {
		opts.RegistryBase = testBase
	}
	return Input{
		Document: doc,
		Index:    idx,
		Graph:    hierarchy.Build(assocs, idx),
		Options:  opts,
	}
}

func TestFrameworks_SingleCourseSingleCompetency(t *testing.T) {
	t.Parallel()

	in := makeInput(
		casepkg.Document{Language: "en"},
		[]casepkg.Item{course("crs", "Algebra I"), competency("cmp", "Solve linear equations")},
		[]casepkg.Association{childOf("cmp", "crs")},
		Options{},
	)

	set := Frameworks(context.Background(), in)
	require.Len(t, set.Entries, 1)
	entry := set.Entries[0]

	t.Run("framework owns the sole clone", func(t *testing.T) {
		require.Len(t, entry.Members, 1)
		member := entry.Members[0]
		assert.Equal(t, testBase+"ce-cmp", member.ID)
		assert.Equal(t, entry.Framework.ID, member.IsPartOf)
		assert.Equal(t, []string{testBase + "ce-cmp"}, entry.Framework.HasTopChild)
	})

	t.Run("course forward references the member", func(t *testing.T) {
		require.Len(t, entry.Course.Teaches, 1)
		aln := entry.Course.Teaches[0]
		assert.Equal(t, ctdl.TypeAlignment, aln.Type)
		assert.Equal(t, entry.Framework.ID, aln.Framework)
		assert.Equal(t, testBase+"ce-cmp", aln.TargetNode)
		assert.Equal(t, "Solve linear equations", aln.TargetNodeName.Value())
		assert.Equal(t, entry.Framework.Name.Value(), aln.FrameworkName.Value())
	})

	t.Run("framework name derives from the course", func(t *testing.T) {
		assert.Equal(t, "Algebra I", entry.Framework.Name.Value())
		assert.Equal(t, "en", entry.Framework.Name.Lang)
		assert.Equal(t, []string{"en"}, entry.Framework.InLanguage)
	})

	t.Run("framework graph lists container then members", func(t *testing.T) {
		g := entry.FrameworkGraph()
		assert.Equal(t, ctdl.ContextCTDLASN, g.Context)
		assert.Equal(t, entry.Framework.ID, g.ID)
		require.Len(t, g.Nodes, 2)
		assert.Same(t, entry.Framework, g.Nodes[0])
	})

	t.Run("course graph holds the single node without @id", func(t *testing.T) {
		g := entry.CourseGraph()
		assert.Equal(t, ctdl.ContextCTDL, g.Context)
		assert.Empty(t, g.ID)
		require.Len(t, g.Nodes, 1)
	})
}

func TestFrameworks_LocalCrossLinks(t *testing.T) {
	t.Parallel()

	// crs -> a -> b, a -> c; d re-parents b to create a second local parent.
	in := makeInput(
		casepkg.Document{Language: "en"},
		[]casepkg.Item{
			course("crs", "C"),
			competency("a", "A"), competency("b", "B"),
			competency("c", "C"), competency("d", "D"),
		},
		[]casepkg.Association{
			childOf("a", "crs"),
			childOf("b", "a"),
			childOf("c", "a"),
			childOf("d", "crs"),
			childOf("b", "d"),
		},
		Options{},
	)

	set := Frameworks(context.Background(), in)
	require.Len(t, set.Entries, 1)
	members := set.Entries[0].Members

	byID := make(map[string]*ctdl.Competency)
	for _, m := range members {
		byID[m.ID] = m
	}

	t.Run("children and parents are mutually consistent", func(t *testing.T) {
		for _, m := range members {
			for _, childID := range m.HasChild {
				child, ok := byID[childID]
				require.True(t, ok, "child %s must be a member of the same container", childID)
				assert.Contains(t, child.IsChildOf, m.ID)
			}
			for _, parentID := range m.IsChildOf {
				parent, ok := byID[parentID]
				require.True(t, ok, "parent %s must be a member of the same container", parentID)
				assert.Contains(t, parent.HasChild, m.ID)
			}
		}
	})

	t.Run("a clone accumulates multiple local parents without duplicates", func(t *testing.T) {
		b := byID[testBase+"ce-b"]
		require.NotNil(t, b)
		assert.ElementsMatch(t, []string{testBase + "ce-a", testBase + "ce-d"}, b.IsChildOf)
	})

	t.Run("no duplicate entries in any child list", func(t *testing.T) {
		for _, m := range members {
			seen := map[string]bool{}
			for _, c := range m.HasChild {
				assert.False(t, seen[c], "duplicate child %s under %s", c, m.ID)
				seen[c] = true
			}
		}
	})
}

func TestFrameworks_CloneIsolationAcrossContainers(t *testing.T) {
	t.Parallel()

	// Two courses share the competency; each framework must own an
	// independent clone.
	in := makeInput(
		casepkg.Document{Language: "en"},
		[]casepkg.Item{course("c1", "One"), course("c2", "Two"), competency("shared", "S")},
		[]casepkg.Association{childOf("shared", "c1"), childOf("shared", "c2")},
		Options{},
	)

	set := Frameworks(context.Background(), in)
	require.Len(t, set.Entries, 2)
	first := set.Entries[0].Members[0]
	second := set.Entries[1].Members[0]

	require.NotSame(t, first, second)
	assert.NotEqual(t, first.IsPartOf, second.IsPartOf)

	first.Text.Text = "mutated"
	assert.Equal(t, "S", second.Text.Value(), "mutation must not leak between containers")
}

func TestFrameworks_UnresolvedAssociation(t *testing.T) {
	t.Parallel()

	// The association origin is unknown, so no edge exists and the orphan
	// competency appears in no container.
	in := makeInput(
		casepkg.Document{},
		[]casepkg.Item{course("crs", "C"), competency("orphan", "O")},
		[]casepkg.Association{childOf("ghost", "crs")},
		Options{},
	)

	set := Frameworks(context.Background(), in)
	require.Len(t, set.Entries, 1)
	entry := set.Entries[0]
	assert.Empty(t, entry.Members)
	assert.Equal(t, []string{}, entry.Framework.HasTopChild)
	assert.Empty(t, entry.Course.Teaches)
}

func TestFrameworks_Idempotence(t *testing.T) {
	t.Parallel()

	doc := casepkg.Document{Language: "en", Publisher: "District", Description: "Desc"}
	items := []casepkg.Item{
		course("crs", "Algebra"),
		competency("a", "A"), competency("b", "B"),
	}
	assocs := []casepkg.Association{childOf("a", "crs"), childOf("b", "a")}

	run := func() []byte {
		set := Frameworks(context.Background(), makeInput(doc, items, assocs, Options{}))
		require.Len(t, set.Entries, 1)
		data, err := json.Marshal(set.Entries[0].FrameworkGraph())
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	require.Empty(t, cmp.Diff(string(first), string(second)),
		"re-running assembly over identical input must be byte-identical")
}

func TestFrameworks_NodeProjection(t *testing.T) {
	t.Parallel()

	t.Run("course description omitted when identical to name", func(t *testing.T) {
		it := casepkg.Item{Identifier: "x", ItemType: "Course", FullStatement: "Same"}
		in := makeInput(casepkg.Document{}, []casepkg.Item{it}, nil, Options{})
		set := Frameworks(context.Background(), in)
		crs := set.Entries[0].Course
		assert.Equal(t, "Same", crs.Name.Value())
		assert.Nil(t, crs.Description)
	})

	t.Run("coded notation and webpage carried through", func(t *testing.T) {
		it := casepkg.Item{
			Identifier:           "x",
			ItemType:             "Course",
			AbbreviatedStatement: "N",
			FullStatement:        "Full text",
			HumanCodingScheme:    "MATH.1",
			URI:                  "https://example.org/items/x",
		}
		in := makeInput(casepkg.Document{}, []casepkg.Item{it}, nil, Options{})
		crs := Frameworks(context.Background(), in).Entries[0].Course
		assert.Equal(t, "MATH.1", crs.CodedNotation)
		assert.Equal(t, "https://example.org/items/x", crs.SubjectWebpage)
		assert.Equal(t, "Full text", crs.Description.Value())
	})

	t.Run("competency list position falls back to sequence hint", func(t *testing.T) {
		seq := childOf("cmp", "crs")
		seq.SequenceNumber = float64(4)
		in := makeInput(
			casepkg.Document{},
			[]casepkg.Item{course("crs", "C"), competency("cmp", "T")},
			[]casepkg.Association{seq},
			Options{},
		)
		member := Frameworks(context.Background(), in).Entries[0].Members[0]
		assert.Equal(t, "4", member.ListID)
	})

	t.Run("declared list position wins over hint", func(t *testing.T) {
		seq := childOf("cmp", "crs")
		seq.SequenceNumber = float64(4)
		cmpItem := competency("cmp", "T")
		cmpItem.ListEnumInSource = "2"
		in := makeInput(
			casepkg.Document{},
			[]casepkg.Item{course("crs", "C"), cmpItem},
			[]casepkg.Association{seq},
			Options{},
		)
		member := Frameworks(context.Background(), in).Entries[0].Members[0]
		assert.Equal(t, "2", member.ListID)
	})

	t.Run("broad alignment stub from the item's own URI", func(t *testing.T) {
		cmpItem := competency("cmp", "T")
		cmpItem.URI = "https://example.org/case/cmp"
		in := makeInput(
			casepkg.Document{},
			[]casepkg.Item{course("crs", "C"), cmpItem},
			[]casepkg.Association{childOf("cmp", "crs")},
			Options{},
		)
		member := Frameworks(context.Background(), in).Entries[0].Members[0]
		assert.Equal(t, map[string]string{"https://example.org/case/cmp": ""}, member.BroadAlignment)
	})
}

func TestFrameworks_ConfiguredReferences(t *testing.T) {
	t.Parallel()

	opts := Options{
		Publisher: []string{testBase + "ce-pub"},
		OwnedBy:   []string{testBase + "ce-own"},
		OfferedBy: []string{testBase + "ce-off"},
	}
	in := makeInput(
		casepkg.Document{Language: "en"},
		[]casepkg.Item{course("crs", "C")},
		nil,
		opts,
	)
	entry := Frameworks(context.Background(), in).Entries[0]
	assert.Equal(t, opts.Publisher, entry.Framework.Publisher)
	assert.Equal(t, opts.OwnedBy, entry.Course.OwnedBy)
	assert.Equal(t, opts.OfferedBy, entry.Course.OfferedBy)
}
