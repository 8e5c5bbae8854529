package ctdl

// Graph is a linked-data document: a context, an optional top-level @id,
// and the node list. Framework graphs hold the framework node followed by
// its member clones; course and learning-program graphs hold a single node.
type Graph struct {
	Context string `json:"@context"`
	ID      string `json:"@id,omitempty"`
	Nodes   []any  `json:"@graph"`
}

// PublishWrapper is the registry publish envelope for a learning program.
type PublishWrapper struct {
	PublishForOrganizationIdentifier string `json:"PublishForOrganizationIdentifier"`
	GraphInput                       Graph  `json:"GraphInput"`
}
