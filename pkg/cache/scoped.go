package cache

// ScopedKeyer prefixes every key of an inner Keyer. The API server scopes
// its keys so several deployments can share one Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "stepgraph:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) DiagramKey(linesHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(linesHash, opts)
}

func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
