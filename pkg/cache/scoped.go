package cache

// ScopedKeyer wraps a Keyer with a prefix so that several frontends can
// share one backend without sharing entries.
//
// Example usage:
//
//	// Keys written by the HTTP server
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
//
//	// Keys written by the CLI
//	cliKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for compiled graph caching.
func (k *ScopedKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphKey, opts)
}
