package iterutil

// GetMode selects how Chain.Get collects values for a key that appears in
// more than one map.
type GetMode int

const (
	// Unique keeps one occurrence of each distinct value, in map order.
	Unique GetMode = iota
	// First stops at the first map holding the key.
	First
	// All keeps every occurrence, duplicates included.
	All
)

// Chain is a view over an ordered list of maps. Unlike a plain chained
// lookup it can return every value bound to a key and it writes through to
// the inner maps.
type Chain[K, V comparable] struct {
	maps []map[K]V
	mode GetMode
}

// NewChain builds a chain over maps, which are referenced, not copied.
func NewChain[K, V comparable](mode GetMode, maps ...map[K]V) *Chain[K, V] {
	return &Chain[K, V]{maps: maps, mode: mode}
}

// Maps returns the live backing maps in chain order.
func (c *Chain[K, V]) Maps() []map[K]V { return c.maps }

// Get collects the values bound to key according to the chain's mode. In
// First mode the result has at most one element.
func (c *Chain[K, V]) Get(key K) []V {
	var values []V
	for _, m := range c.maps {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch c.mode {
		case First:
			return []V{v}
		case Unique:
			var dup bool
			for _, seen := range values {
				if seen == v {
					dup = true
					break
				}
			}
			if !dup {
				values = append(values, v)
			}
		case All:
			values = append(values, v)
		}
	}
	return values
}

// GetFirst returns the value from the first map holding key.
func (c *Chain[K, V]) GetFirst(key K) (V, bool) {
	for _, m := range c.maps {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Set updates every map where key already exists; in First mode only the
// first. When no map holds the key the entry lands in the first map.
func (c *Chain[K, V]) Set(key K, value V) *Chain[K, V] {
	found := false
	for _, m := range c.maps {
		if _, ok := m[key]; ok {
			m[key] = value
			found = true
			if c.mode == First {
				break
			}
		}
	}
	if !found && len(c.maps) > 0 {
		c.maps[0][key] = value
	}
	return c
}

// Delete removes key from every map (in First mode only the first map
// holding it) and drops maps left empty.
func (c *Chain[K, V]) Delete(key K) *Chain[K, V] {
	kept := c.maps[:0]
	done := false
	for _, m := range c.maps {
		if !done {
			if _, ok := m[key]; ok {
				delete(m, key)
				if c.mode == First {
					done = true
				}
			}
		}
		if len(m) > 0 {
			kept = append(kept, m)
		}
	}
	c.maps = kept
	return c
}
