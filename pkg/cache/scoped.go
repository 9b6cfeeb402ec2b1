package cache

import "strings"

// ScopedKeyer namespaces another Keyer's keys under "scope:". The HTTP API
// uses it so its entries never collide with CLI entries in a shared backend.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil. A
// trailing colon on scope is optional.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, scope: strings.TrimSuffix(scope, ":")}
}

// Scope returns the namespace without its separator.
func (k *ScopedKeyer) Scope() string { return k.scope }

func (k *ScopedKeyer) scoped(key string) string {
	if k.scope == "" {
		return key
	}
	return k.scope + ":" + key
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(tokensHash string, opts LayoutKeyOpts) string {
	return k.scoped(k.inner.LayoutKey(tokensHash, opts))
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scoped(k.inner.ArtifactKey(layoutHash, opts))
}
