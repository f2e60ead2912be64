package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPruned walks the graph and fails on any non-root node that is neither
// terminal nor has children, or whose child counter is off.
func assertPruned(t *testing.T, node *Node, isRoot bool) {
	t.Helper()

	present := 0
	for _, child := range node.children {
		if child != nil {
			present++
			assertPruned(t, child, false)
		}
	}

	assert.Equal(t, present, node.childCount)
	if !isRoot {
		assert.True(t, node.end || node.hasChildren(), "dangling node")
	}
}

func TestDictionary_IsCorrectWord(t *testing.T) {
	valid := []string{"a", "Z", "hello", "HeLLo", "abcdefghijklmnopqrstuvwxyz"}
	for _, w := range valid {
		assert.True(t, IsCorrectWord(w), w)
	}

	invalid := []string{"", " ", "a b", "a1b", "hello!", "tab\t", "naïve", "-", "ab\x00"}
	for _, w := range invalid {
		assert.False(t, IsCorrectWord(w), w)
	}
}

func TestDictionary_Basic(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("cat"))
	require.NoError(t, d.Insert("car"))
	require.NoError(t, d.Insert("dog"))

	assert.Equal(t, 3, d.Size())
	assert.True(t, d.Contains("cat"))
	assert.False(t, d.Contains("ca"))
	assert.True(t, d.Contains("CAT"))

	d.Erase("cat")
	assert.Equal(t, 2, d.Size())
	assert.False(t, d.Contains("cat"))
	assert.True(t, d.Contains("car"))
	assert.NotNil(t, d.root.get('c').get('a'))
	assertPruned(t, d.root, true)
}

func TestDictionary_InsertInvalid(t *testing.T) {
	d := New()

	assert.ErrorIs(t, d.Insert(""), ErrInvalidWord)
	assert.ErrorIs(t, d.Insert("a1b"), ErrInvalidWord)
	assert.Equal(t, 0, d.Size())
	assert.False(t, d.root.hasChildren())

	assert.NoError(t, d.Insert("Hello"))
	assert.True(t, d.Contains("hello"))
}

func TestDictionary_CaseInsensitive(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("MiXeD"))

	for _, w := range []string{"mixed", "MIXED", "Mixed", "mIxEd"} {
		assert.True(t, d.Contains(w), w)
	}

	d.Erase("MIXED")
	assert.False(t, d.Contains("mixed"))
	assert.Equal(t, 0, d.Size())
}

func TestDictionary_ContainsMalformed(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("ab"))

	assert.False(t, d.Contains(""))
	assert.False(t, d.Contains("a"))
	assert.False(t, d.Contains("a b"))
	assert.False(t, d.Contains("ab1"))
	assert.False(t, d.Contains("abc"))
}

func TestDictionary_EraseAbsent(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("apple"))

	before := d.Size()
	d.Erase("app")
	d.Erase("apples")
	d.Erase("banana")
	d.Erase("")
	d.Erase("ap!")
	assert.Equal(t, before, d.Size())
	assert.True(t, d.Contains("apple"))
}

func TestDictionary_EraseIdempotent(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("one"))
	require.NoError(t, d.Insert("two"))

	d.Erase("one")
	snapshot := d.Clone()

	d.Erase("one")
	assert.True(t, d.Equal(snapshot))
	assert.Equal(t, 1, d.Size())
	assert.True(t, d.Contains("two"))
}

func TestDictionary_ErasePrunesPath(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("hello"))

	d.Erase("hello")
	assert.False(t, d.Contains("hello"))
	assert.False(t, d.root.hasChildren())
	assertPruned(t, d.root, true)
}

func TestDictionary_ErasePrefixWord(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("car"))
	require.NoError(t, d.Insert("cart"))

	// "car" keeps its node because "cart" goes through it
	d.Erase("car")
	assert.False(t, d.Contains("car"))
	assert.True(t, d.Contains("cart"))
	assertPruned(t, d.root, true)

	require.NoError(t, d.Insert("car"))
	d.Erase("cart")
	assert.True(t, d.Contains("car"))
	assert.Nil(t, d.root.get('c').get('a').get('r').get('t'))
	assertPruned(t, d.root, true)
}

func TestDictionary_SizeCounting(t *testing.T) {
	d := New()
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}
	for _, w := range words {
		require.NoError(t, d.Insert(w))
	}
	assert.Equal(t, len(words), d.Size())

	for _, w := range words[:4] {
		d.Erase(w)
	}
	assert.Equal(t, 2, d.Size())
	assertPruned(t, d.root, true)
}

func TestDictionary_DuplicateInsert(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("echo"))
	require.NoError(t, d.Insert("ECHO"))

	// every successful insert is counted
	assert.Equal(t, 2, d.Size())

	d.Erase("echo")
	assert.False(t, d.Contains("echo"))
	assert.Equal(t, 1, d.Size())
}

func TestDictionary_Clone(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("keep"))
	require.NoError(t, d.Insert("kept"))

	cp := d.Clone()
	assert.True(t, d.Equal(cp))

	cp.Erase("keep")
	require.NoError(t, cp.Insert("new"))

	assert.True(t, d.Contains("keep"))
	assert.False(t, d.Contains("new"))
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, 2, cp.Size())
	assert.False(t, d.Equal(cp))
}

func TestDictionary_CopyFrom(t *testing.T) {
	src := New()
	require.NoError(t, src.Insert("source"))

	dst := New()
	require.NoError(t, dst.Insert("stale"))

	dst.CopyFrom(src)
	assert.False(t, dst.Contains("stale"))
	assert.True(t, dst.Contains("source"))
	assert.Equal(t, 1, dst.Size())

	dst.Erase("source")
	assert.True(t, src.Contains("source"))

	src.CopyFrom(src)
	assert.True(t, src.Contains("source"))
	assert.Equal(t, 1, src.Size())
}

func TestDictionary_Clear(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("gone"))

	d.Clear()
	assert.Equal(t, 0, d.Size())
	assert.False(t, d.Contains("gone"))
	assert.True(t, d.Equal(New()))

	require.NoError(t, d.Insert("back"))
	assert.True(t, d.Contains("back"))
}

func TestDictionary_ZeroValue(t *testing.T) {
	var d Dictionary

	assert.False(t, d.Contains("a"))
	d.Erase("a")
	assert.Equal(t, 0, d.Size())
	assert.True(t, d.Equal(New()))
	assert.True(t, d.Clone().Equal(New()))

	require.NoError(t, d.Insert("Zero"))
	assert.True(t, d.Contains("zero"))
	assert.Equal(t, 1, d.Size())

	var dst Dictionary
	dst.CopyFrom(&d)
	assert.True(t, dst.Contains("zero"))
}
