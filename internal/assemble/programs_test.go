package assemble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/ctdl"
)

func pathway(ident, name string) casepkg.Item {
	return casepkg.Item{Identifier: ident, ItemType: "Pathway", AbbreviatedStatement: name}
}

func TestPrograms_PreparationTargets(t *testing.T) {
	t.Parallel()

	// The pathway hangs under two parent pathways, each exposing a
	// different sibling course, and has one direct course child.
	in := makeInput(
		casepkg.Document{Language: "eng"},
		[]casepkg.Item{
			pathway("parent1", "P1"), pathway("parent2", "P2"), pathway("pw", "PW"),
			course("zulu", "Z"), course("alpha", "A"), course("direct", "D"),
		},
		[]casepkg.Association{
			childOf("pw", "parent1"),
			childOf("pw", "parent2"),
			childOf("zulu", "parent1"),
			childOf("alpha", "parent2"),
			childOf("direct", "pw"),
			childOf("direct", "parent1"), // sibling overlap: dedup expected
		},
		Options{OwnedBy: []string{testBase + "ce-own"}},
	)

	set := Programs(context.Background(), in)

	var pw *ctdl.LearningProgram
	for _, e := range set.Entries {
		if e.Program.CTID == "ce-pw" {
			pw = e.Program
		}
	}
	require.NotNil(t, pw)

	require.Len(t, pw.IsPreparationFor, 1)
	profile := pw.IsPreparationFor[0]
	assert.Equal(t, ctdl.TypeConditionProfile, profile.Type)
	assert.Equal(t, "Is Preparation For", profile.Name.Value())
	assert.Equal(t, []string{
		testBase + "ce-alpha",
		testBase + "ce-direct",
		testBase + "ce-zulu",
	}, profile.TargetLearningOpportunity, "deduplicated and sorted by identifier")
}

func TestPrograms_NodeShape(t *testing.T) {
	t.Parallel()

	it := pathway("pw", "Health Science")
	it.Notes = "Pathway notes"
	it.FullStatement = "Full statement"
	it.URI = "https://example.org/case/pw"

	in := makeInput(
		casepkg.Document{Language: "eng"},
		[]casepkg.Item{it},
		nil,
		Options{OwnedBy: []string{testBase + "ce-own"}, OfferedBy: []string{testBase + "ce-off"}},
	)
	set := Programs(context.Background(), in)
	require.Len(t, set.Entries, 1)
	lp := set.Entries[0].Program

	assert.Equal(t, ctdl.TypeLearningProgram, lp.Type)
	assert.Equal(t, "ce-pw", lp.CTID)
	assert.Equal(t, testBase+"ce-pw", lp.ID)
	assert.Equal(t, []string{"en"}, lp.InLanguage, `"eng" normalizes to "en" in this pass`)
	assert.Equal(t, "Health Science", lp.Name.Value())
	assert.Equal(t, "Pathway notes", lp.Description.Value(), "notes preferred over statement text")
	assert.Equal(t, "https://example.org/case/pw", lp.SubjectWebpage)
	assert.Equal(t, []string{testBase + "ce-own"}, lp.OwnedBy)
	assert.Equal(t, []string{testBase + "ce-off"}, lp.OfferedBy)

	require.NotNil(t, lp.LifeCycleStatus)
	assert.Equal(t, ctdl.LifeCycleActiveNode, lp.LifeCycleStatus.TargetNode)

	t.Run("publish wrapper", func(t *testing.T) {
		w := set.Entries[0].Wrapper("ce-publisher")
		assert.Equal(t, "ce-publisher", w.PublishForOrganizationIdentifier)
		assert.Equal(t, lp.ID, w.GraphInput.ID)
		require.Len(t, w.GraphInput.Nodes, 1)
	})
}

func TestPrograms_NoTargets(t *testing.T) {
	t.Parallel()

	in := makeInput(casepkg.Document{}, []casepkg.Item{pathway("pw", "P")}, nil, Options{})
	lp := Programs(context.Background(), in).Entries[0].Program
	assert.Nil(t, lp.IsPreparationFor)
}

func TestProgramLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en", programLanguage("eng"))
	assert.Equal(t, "en", programLanguage("ENG"))
	assert.Equal(t, "en-US", programLanguage("en-US"))
	assert.Equal(t, "", programLanguage(""))
}
