package metrics

type cacheKey struct {
	text   string
	size   float64
	family string
}

// Cached memoizes a measurer for one layout pass. It is not safe for
// concurrent use and must not be shared between passes.
type Cached struct {
	m      Measurer
	memo   map[cacheKey]Size
	misses int
}

// NewCached wraps m.
func NewCached(m Measurer) *Cached {
	return &Cached{m: m, memo: make(map[cacheKey]Size)}
}

// Measure implements Measurer.
func (c *Cached) Measure(text string, sizePx float64, family string) Size {
	k := cacheKey{text, sizePx, family}
	if s, ok := c.memo[k]; ok {
		return s
	}
	c.misses++
	s := Measure(c.m, text, sizePx, family)
	c.memo[k] = s
	return s
}

// Calls returns how many times the wrapped measurer was invoked.
func (c *Cached) Calls() int { return c.misses }
