package iterutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainMaps() []map[string]int {
	return []map[string]int{
		{"a": 1, "b": 2},
		{"a": 2, "c": 3},
		{"a": 3, "d": 4},
		{"a": 3},
	}
}

func TestChainGet(t *testing.T) {
	tests := []struct {
		name string
		mode GetMode
		want []int
	}{
		{"unique drops repeats", Unique, []int{1, 2, 3}},
		{"first stops early", First, []int{1}},
		{"all keeps repeats", All, []int{1, 2, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(tt.mode, chainMaps()...)
			assert.Equal(t, tt.want, chain.Get("a"))
		})
	}

	chain := NewChain(Unique, chainMaps()...)
	assert.Empty(t, chain.Get("missing"))

	v, ok := chain.GetFirst("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = chain.GetFirst("missing")
	assert.False(t, ok)
}

func TestChainSet(t *testing.T) {
	t.Run("updates everywhere the key exists", func(t *testing.T) {
		maps := chainMaps()
		NewChain(Unique, maps...).Set("a", 10)
		for _, m := range maps {
			assert.Equal(t, 10, m["a"])
		}
	})

	t.Run("first mode updates only the first map", func(t *testing.T) {
		maps := chainMaps()
		NewChain(First, maps...).Set("a", 9)
		assert.Equal(t, 9, maps[0]["a"])
		assert.Equal(t, 2, maps[1]["a"])
	})

	t.Run("new key lands in the first map", func(t *testing.T) {
		maps := chainMaps()
		chain := NewChain(Unique, maps...).Set("j", 9)
		assert.Equal(t, 9, maps[0]["j"])
		assert.Equal(t, []int{9}, chain.Get("j"))
	})
}

func TestChainDelete(t *testing.T) {
	t.Run("drops key from every map and prunes empties", func(t *testing.T) {
		chain := NewChain(Unique, chainMaps()...).Delete("a")
		assert.Empty(t, chain.Get("a"))
		// The {"a": 3} map became empty and is gone.
		assert.Len(t, chain.Maps(), 3)
	})

	t.Run("first mode deletes a single occurrence", func(t *testing.T) {
		maps := chainMaps()
		chain := NewChain(First, maps...).Delete("a")
		_, ok := maps[0]["a"]
		assert.False(t, ok)
		assert.Equal(t, []int{2}, chain.Get("a"))
		assert.Len(t, chain.Maps(), 4)
	})
}
