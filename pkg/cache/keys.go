package cache

// GraphKeyOpts are the compile options that change a compiled graph.
type GraphKeyOpts struct {
	IndentWidth int      `json:"indent,omitempty"`
	StrictIDs   bool     `json:"strict,omitempty"`
	NoPrune     bool     `json:"no_prune,omitempty"`
	Fold        []string `json:"fold,omitempty"`
	Hide        []string `json:"hide,omitempty"`
}

// ArtifactKeyOpts are the render options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	RankDir  string `json:"rankdir,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey returns the key of the graph compiled from a document.
	GraphKey(docHash string, opts GraphKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from a graph.
	ArtifactKey(graphKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the inputs with their options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns "graph:<hash>".
func (DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(graphKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphKey, opts)
}
