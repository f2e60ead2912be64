package trie

import (
	"errors"
)

// ErrInvalidWord is returned by Insert for an empty word or one holding a non-letter.
var ErrInvalidWord = errors.New("incorrect word")

// Dictionary is a case-insensitive set of ASCII words stored as a prefix tree.
// It is not safe for concurrent use while a writer is active.
//
// Size counts successful Insert calls minus effective Erase calls, so inserting a
// word that is already present still increments it.
//
// The zero value is an empty dictionary ready to use.
type Dictionary struct {
	root *Node
	size int
}

// rootNode returns the root, or a detached empty node for a zero-value Dictionary.
func (d *Dictionary) rootNode() *Node {
	if d.root == nil {
		return newNode()
	}
	return d.root
}

// IsCorrectWord reports whether word is non-empty and made of ASCII letters only.
func IsCorrectWord(word string) bool {
	if len(word) == 0 {
		return false
	}

	for i := 0; i < len(word); i++ {
		if !isLetter(word[i]) {
			return false
		}
	}

	return true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func lower(c byte) byte {
	return c | 0x20
}

// Insert adds word to the dictionary.
func (d *Dictionary) Insert(word string) error {
	if !IsCorrectWord(word) {
		return ErrInvalidWord
	}

	if d.root == nil {
		d.root = newNode()
	}

	node := d.root
	for i := 0; i < len(word); i++ {
		c := lower(word[i])
		if !node.containsKey(c) {
			node.put(c, newNode())
		}
		node = node.get(c)
	}

	node.end = true
	d.size++
	return nil
}

// Erase removes word and prunes the nodes it no longer needs.
// Invalid and absent words are ignored.
func (d *Dictionary) Erase(word string) {
	if !d.Contains(word) {
		return
	}

	c := lower(word[0])
	d.root.put(c, erase(d.root.get(c), word, 1))
	d.size--
}

// erase clears the terminal flag at the end of word and returns node, or nil
// when node was pruned.
func erase(node *Node, word string, depth int) *Node {
	if node == nil {
		return nil
	}

	if depth == len(word) {
		node.end = false
	} else {
		c := lower(word[depth])
		node.put(c, erase(node.get(c), word, depth+1))
	}

	if !node.end && !node.hasChildren() {
		return nil
	}

	return node
}

// Contains reports whether word is present. Malformed input is simply absent.
func (d *Dictionary) Contains(word string) bool {
	if !IsCorrectWord(word) {
		return false
	}

	node := d.rootNode()
	for i := 0; i < len(word); i++ {
		node = node.get(lower(word[i]))
		if node == nil {
			return false
		}
	}

	return node.end
}

// Size returns the word counter.
func (d *Dictionary) Size() int {
	return d.size
}

// Clone returns a deep copy sharing no nodes with d.
func (d *Dictionary) Clone() *Dictionary {
	return &Dictionary{
		root: d.rootNode().clone(),
		size: d.size,
	}
}

// CopyFrom replaces the content of d with a deep copy of other.
func (d *Dictionary) CopyFrom(other *Dictionary) {
	if d == other {
		return
	}

	d.Clear()
	d.root = other.rootNode().clone()
	d.size = other.size
}

// Clear drops every word.
func (d *Dictionary) Clear() {
	d.root = newNode()
	d.size = 0
}

// Equal reports whether both dictionaries hold the same words and counter.
func (d *Dictionary) Equal(other *Dictionary) bool {
	return d.size == other.size && d.rootNode().equals(other.rootNode())
}

// New returns an empty Dictionary
func New() *Dictionary {
	return &Dictionary{root: newNode()}
}
