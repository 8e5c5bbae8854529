// Package ctdl defines the target vocabulary: CTDL and CTDL-ASN node types,
// language-tagged text, alignment objects, and the graph envelopes the
// registry expects. Nodes are built once as templates, cloned per container
// during assembly, and immutable once handed to validation or serialization.
package ctdl

// JSON-LD context IRIs for the two output vocabularies.
const (
	// ContextCTDL wraps Course and LearningProgram graphs.
	ContextCTDL = "https://credreg.net/ctdl/schema/context/json"

	// ContextCTDLASN wraps CompetencyFramework graphs.
	ContextCTDLASN = "https://credreg.net/ctdlasn/schema/context/json"
)

// DefaultRegistryBase is the production Credential Engine registry.
const DefaultRegistryBase = "https://credentialengineregistry.org/resources/"

// Node type IRIs.
const (
	TypeCourse           = "ceterms:Course"
	TypeCompetency       = "ceasn:Competency"
	TypeFramework        = "ceasn:CompetencyFramework"
	TypeLearningProgram  = "ceterms:LearningProgram"
	TypeAlignment        = "ceterms:CredentialAlignmentObject"
	TypeConditionProfile = "ceterms:ConditionProfile"
)

// Life-cycle status vocabulary.
const (
	LifeCycleFramework  = "https://credreg.net/ctdl/terms/LifeCycleStatus"
	LifeCycleActiveNode = "lifeCycle:Active"
)
