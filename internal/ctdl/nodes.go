package ctdl

import (
	"maps"
	"slices"
)

// Course is the CTDL projection of a CASE course item. Teaches is populated
// during assembly once the course's generated framework exists.
type Course struct {
	ID              string      `json:"@id"`
	Type            string      `json:"@type"`
	CTID            string      `json:"ceterms:ctid"`
	InLanguage      string      `json:"ceterms:inLanguage,omitempty"`
	Name            *LangString `json:"ceterms:name,omitempty"`
	Description     *LangString `json:"ceterms:description,omitempty"`
	CodedNotation   string      `json:"ceterms:codedNotation,omitempty"`
	SubjectWebpage  string      `json:"ceterms:subjectWebpage,omitempty"`
	LifeCycleStatus *Alignment  `json:"ceterms:lifeCycleStatusType,omitempty"`
	OwnedBy         []string    `json:"ceterms:ownedBy,omitempty"`
	OfferedBy       []string    `json:"ceterms:offeredBy,omitempty"`
	Teaches         []Alignment `json:"ceterms:teaches,omitempty"`
}

// Competency is the CTDL-ASN projection of a competency-like CASE item.
// Relationship fields (IsPartOf, HasChild, IsChildOf) are zero on the
// template and filled only on per-container clones.
type Competency struct {
	ID             string            `json:"@id"`
	Type           string            `json:"@type"`
	CTID           string            `json:"ceterms:ctid"`
	InLanguage     string            `json:"ceasn:inLanguage,omitempty"`
	Text           *LangString       `json:"ceasn:competencyText,omitempty"`
	Label          *LangString       `json:"ceasn:competencyLabel,omitempty"`
	Category       *LangString       `json:"ceasn:competencyCategory,omitempty"`
	CodedNotation  string            `json:"ceasn:codedNotation,omitempty"`
	ListID         string            `json:"ceasn:listID,omitempty"`
	BroadAlignment map[string]string `json:"ceasn:broadAlignment,omitempty"`
	IsPartOf       string            `json:"ceasn:isPartOf,omitempty"`
	HasChild       []string          `json:"ceasn:hasChild,omitempty"`
	IsChildOf      []string          `json:"ceasn:isChildOf,omitempty"`
}

// Clone returns an independent copy of the competency. Containers own their
// clones exclusively: mutating one container's clone must never affect
// another container's clone of the same source item, so every reference
// field is copied.
func (c *Competency) Clone() *Competency {
	dup := *c
	dup.Text = c.Text.Clone()
	dup.Label = c.Label.Clone()
	dup.Category = c.Category.Clone()
	if c.BroadAlignment != nil {
		dup.BroadAlignment = maps.Clone(c.BroadAlignment)
	}
	dup.HasChild = slices.Clone(c.HasChild)
	dup.IsChildOf = slices.Clone(c.IsChildOf)
	return &dup
}

// DisplayText returns the member text used for forward references,
// preferring the long-form competency text over the short label.
func (c *Competency) DisplayText() string {
	if !c.Text.Empty() {
		return c.Text.Value()
	}
	return c.Label.Value()
}

// Framework is the synthesized container owning a cloned competency
// subtree. HasTopChild is always emitted, even when empty.
type Framework struct {
	ID             string      `json:"@id"`
	Type           string      `json:"@type"`
	CTID           string      `json:"ceterms:ctid"`
	Name           *LangString `json:"ceasn:name"`
	InLanguage     []string    `json:"ceasn:inLanguage,omitempty"`
	SubjectWebpage string      `json:"ceterms:subjectWebpage,omitempty"`
	PublisherName  *LangString `json:"ceasn:publisherName,omitempty"`
	Description    *LangString `json:"ceasn:description,omitempty"`
	Publisher      []string    `json:"ceasn:publisher,omitempty"`
	HasTopChild    []string    `json:"ceasn:hasTopChild"`
}

// LearningProgram is the CTDL projection of a CASE pathway item.
type LearningProgram struct {
	ID               string             `json:"@id"`
	Type             string             `json:"@type"`
	CTID             string             `json:"ceterms:ctid"`
	LifeCycleStatus  *Alignment         `json:"ceterms:lifeCycleStatusType"`
	OwnedBy          []string           `json:"ceterms:ownedBy,omitempty"`
	OfferedBy        []string           `json:"ceterms:offeredBy,omitempty"`
	InLanguage       []string           `json:"ceterms:inLanguage,omitempty"`
	Name             *LangString        `json:"ceterms:name,omitempty"`
	Description      *LangString        `json:"ceterms:description,omitempty"`
	SubjectWebpage   string             `json:"ceterms:subjectWebpage,omitempty"`
	IsPreparationFor []ConditionProfile `json:"ceterms:isPreparationFor,omitempty"`
}

// Alignment is a CredentialAlignmentObject: either a forward reference from
// a course into its generated framework, or a fixed life-cycle status.
type Alignment struct {
	Type                  string      `json:"@type"`
	Framework             string      `json:"ceterms:framework,omitempty"`
	TargetNode            string      `json:"ceterms:targetNode,omitempty"`
	FrameworkName         *LangString `json:"ceterms:frameworkName,omitempty"`
	TargetNodeName        *LangString `json:"ceterms:targetNodeName,omitempty"`
	TargetNodeDescription *LangString `json:"ceterms:targetNodeDescription,omitempty"`
}

// ActiveLifeCycle returns the constant "Active" life-cycle status alignment
// attached to every learning program.
func ActiveLifeCycle() *Alignment {
	return &Alignment{
		Type:           TypeAlignment,
		Framework:      LifeCycleFramework,
		TargetNode:     LifeCycleActiveNode,
		FrameworkName:  &LangString{Lang: "en-US", Text: "Life Cycle Status"},
		TargetNodeName: &LangString{Lang: "en-US", Text: "Active"},
		TargetNodeDescription: &LangString{
			Lang: "en-US",
			Text: "Resource is active, current, ongoing, offered, operational, or available.",
		},
	}
}

// ConditionProfile aggregates a learning program's preparation targets.
type ConditionProfile struct {
	Type                      string      `json:"@type"`
	Name                      *LangString `json:"ceterms:name,omitempty"`
	Description               *LangString `json:"ceterms:description,omitempty"`
	TargetLearningOpportunity []string    `json:"ceterms:targetLearningOpportunity,omitempty"`
}
