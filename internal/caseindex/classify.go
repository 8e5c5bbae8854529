package caseindex

import (
	"strings"

	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/flatten"
)

// Category partitions items by their CASE type tag. The set is closed:
// anything that is not a course or a pathway is treated as competency-like.
type Category int

const (
	CategoryCompetency Category = iota
	CategoryCourse
	CategoryPathway
)

// String returns the category name for logs and reports.
func (c Category) String() string {
	switch c {
	case CategoryCourse:
		return "course"
	case CategoryPathway:
		return "pathway"
	default:
		return "competency"
	}
}

// Classify assigns exactly one category from the item's CFItemType tag.
// Matching is case-insensitive on the trimmed tag; unrecognized tags fall
// into the competency category, never an error.
func Classify(it casepkg.Item) Category {
	switch strings.ToLower(strings.TrimSpace(flatten.String(it.ItemType))) {
	case "course":
		return CategoryCourse
	case "pathway":
		return CategoryPathway
	default:
		return CategoryCompetency
	}
}
