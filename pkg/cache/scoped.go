package cache

// ScopedKeyer prefixes every key of an inner Keyer. Server deployments use
// it to give tenants disjoint namespaces in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with a key prefix. A nil inner means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ResultKey(problemHash string) string {
	return k.prefix + k.inner.ResultKey(problemHash)
}
