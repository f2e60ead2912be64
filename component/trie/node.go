package trie

import "github.com/barryzzz/speller/constant"

// Node is the trie's node
type Node struct {
	children   [constant.AlphabetSize]*Node
	end        bool
	childCount int
}

// slot maps an ASCII letter of either case to its child index.
func slot(c byte) int {
	return int(c|0x20) - 'a'
}

func (n *Node) containsKey(c byte) bool {
	return n.get(c) != nil
}

// put sets, replaces or clears the child slot of c. The previous occupant is dropped.
func (n *Node) put(c byte, child *Node) {
	idx := slot(c)
	switch {
	case n.children[idx] == nil && child != nil:
		n.childCount++
	case n.children[idx] != nil && child == nil:
		n.childCount--
	}

	n.children[idx] = child
}

func (n *Node) get(c byte) *Node {
	return n.children[slot(c)]
}

func (n *Node) hasChildren() bool {
	return n.childCount > 0
}

func (n *Node) clone() *Node {
	cp := &Node{
		end:        n.end,
		childCount: n.childCount,
	}

	for i, child := range n.children {
		if child != nil {
			cp.children[i] = child.clone()
		}
	}

	return cp
}

func (n *Node) equals(other *Node) bool {
	if n.end != other.end || n.childCount != other.childCount {
		return false
	}

	for i, child := range n.children {
		o := other.children[i]
		if (child == nil) != (o == nil) {
			return false
		}
		if child != nil && !child.equals(o) {
			return false
		}
	}

	return true
}

func newNode() *Node {
	return &Node{}
}
