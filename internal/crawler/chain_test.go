package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainApplyOrder(t *testing.T) {
	n, err := ParseFragment(`<p class="a">first</p><p class="b">second</p>`)
	require.NoError(t, err)

	chain := Chain[string]{
		{Name: "missing", Extract: text("p.c")},
		{Name: "b", Extract: text("p.b")},
		{Name: "a", Extract: text("p.a")},
	}

	v, name, ok := chain.Apply(n)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, "b", name)
}

func TestChainPanicIsAMiss(t *testing.T) {
	n, err := ParseFragment(`<p>x</p>`)
	require.NoError(t, err)

	chain := Chain[int]{
		{Name: "boom", Extract: func(Node) (int, bool) {
			var spans []Node
			return len(spans[3].Text()), true
		}},
		{Name: "nil"},
		{Name: "fallback", Extract: func(Node) (int, bool) { return 7, true }},
	}

	v, name, ok := chain.Apply(n)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, "fallback", name)

	_, _, ok = Chain[int]{}.Apply(n)
	assert.False(t, ok)
}
