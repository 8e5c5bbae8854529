// Package validate applies the per-category completeness rules to assembled
// CTDL entities and accumulates violations into a report. Validation is
// purely observational: it runs after assembly, never interrupts it, and an
// entity with zero violations leaves no trace in the report.
package validate

import (
	"github.com/vk/casebridge/internal/ctdl"
	"github.com/vk/casebridge/internal/ctid"
)

// Framework checks a generated competency framework node.
func Framework(fw *ctdl.Framework, base string) []string {
	var errs []string
	if fw.CTID == "" {
		errs = append(errs, "Missing ceterms:ctid")
	}
	if fw.Name.Empty() {
		errs = append(errs, "Missing ceasn:name")
	}
	if fw.Description.Empty() {
		errs = append(errs, "Missing ceasn:description")
	}
	if len(fw.InLanguage) == 0 || fw.InLanguage[0] == "" {
		errs = append(errs, "Missing ceasn:inLanguage")
	}
	if len(fw.Publisher) == 0 {
		errs = append(errs, "Missing ceasn:publisher (must be CE registry URI)")
	} else if !allRegistryURIs(fw.Publisher, base) {
		errs = append(errs, "ceasn:publisher must be CE registry URI(s)")
	}
	return errs
}

// Competency checks a competency clone inside one container.
func Competency(c *ctdl.Competency) []string {
	var errs []string
	if c.CTID == "" {
		errs = append(errs, "Missing ceterms:ctid")
	}
	if c.Text.Empty() {
		errs = append(errs, "Missing ceasn:competencyText")
	}
	if c.IsPartOf == "" {
		errs = append(errs, "Missing ceasn:isPartOf")
	}
	return errs
}

// Course checks a standalone course node after its teaches list is filled.
func Course(c *ctdl.Course, base string) []string {
	var errs []string
	if c.CTID == "" {
		errs = append(errs, "Missing ceterms:ctid")
	}
	if c.Name.Empty() {
		errs = append(errs, "Missing ceterms:name")
	}
	if c.Description.Empty() {
		errs = append(errs, "Missing ceterms:description")
	}
	if c.InLanguage == "" {
		errs = append(errs, "Missing ceterms:inLanguage")
	}
	if c.LifeCycleStatus == nil {
		errs = append(errs, "Missing ceterms:lifeCycleStatusType")
	}
	if len(c.OwnedBy) == 0 && len(c.OfferedBy) == 0 {
		errs = append(errs, "Missing ceterms:ownedBy or ceterms:offeredBy (one required)")
	}
	errs = appendOrgShape(errs, c.OwnedBy, "ceterms:ownedBy", base)
	errs = appendOrgShape(errs, c.OfferedBy, "ceterms:offeredBy", base)
	return errs
}

// Program checks a learning program node.
func Program(lp *ctdl.LearningProgram, base string) []string {
	var errs []string
	if lp.CTID == "" {
		errs = append(errs, "Missing ceterms:ctid")
	}
	if lp.Name.Empty() {
		errs = append(errs, "Missing ceterms:name")
	}
	if len(lp.InLanguage) == 0 || lp.InLanguage[0] == "" {
		errs = append(errs, "Missing ceterms:inLanguage")
	}
	if lp.LifeCycleStatus == nil {
		errs = append(errs, "Missing ceterms:lifeCycleStatusType")
	}
	if len(lp.OwnedBy) == 0 && len(lp.OfferedBy) == 0 {
		errs = append(errs, "Missing ceterms:ownedBy or ceterms:offeredBy (one required)")
	}
	errs = appendOrgShape(errs, lp.OwnedBy, "ceterms:ownedBy", base)
	errs = appendOrgShape(errs, lp.OfferedBy, "ceterms:offeredBy", base)
	if len(lp.IsPreparationFor) == 0 {
		errs = append(errs, "Missing ceterms:isPreparationFor")
	}
	return errs
}

// appendOrgShape enforces the strict organization-reference shape: every
// value must be a registry URI built from the configured base. Absent lists
// are not a shape violation (presence is checked separately).
func appendOrgShape(errs []string, values []string, field, base string) []string {
	if len(values) == 0 {
		return errs
	}
	if !allRegistryURIs(values, base) {
		errs = append(errs, field+" must be CE registry URI(s)")
	}
	return errs
}

func allRegistryURIs(values []string, base string) bool {
	for _, v := range values {
		if !ctid.IsRegistryURI(v, base) {
			return false
		}
	}
	return true
}
