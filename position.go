package fsa

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

type nodeKind int

const (
	nodeEmpty = nodeKind(iota) // the empty language
	nodeEpsilon
	nodeLetter
	nodeConcat
	nodeUnion
	nodeStar
)

// node is a regular expression syntax tree node. Every field is computed when
// the node is created and never changes.
type node struct {
	kind        nodeKind
	letter      string
	pos         int
	left, right *node

	nullable bool
	firstpos *bitset.BitSet
	lastpos  *bitset.BitSet
}

// positions numbers letter occurrences from 1 in the order they are created.
type positions struct {
	letters []string
}

func (p *positions) newLetter(name string) *node {
	p.letters = append(p.letters, name)
	pos := len(p.letters)
	return &node{
		kind:     nodeLetter,
		letter:   name,
		pos:      pos,
		firstpos: setOf(pos+1, pos),
		lastpos:  setOf(pos+1, pos),
	}
}

func newEpsilon() *node {
	return &node{kind: nodeEpsilon, nullable: true, firstpos: bitset.New(0), lastpos: bitset.New(0)}
}

func newEmpty() *node {
	return &node{kind: nodeEmpty, firstpos: bitset.New(0), lastpos: bitset.New(0)}
}

func newUnion(left, right *node) *node {
	return &node{
		kind:     nodeUnion,
		left:     left,
		right:    right,
		nullable: left.nullable || right.nullable,
		firstpos: left.firstpos.Union(right.firstpos),
		lastpos:  left.lastpos.Union(right.lastpos),
	}
}

func newConcat(left, right *node) *node {
	n := &node{
		kind:     nodeConcat,
		left:     left,
		right:    right,
		nullable: left.nullable && right.nullable,
		firstpos: left.firstpos.Clone(),
		lastpos:  right.lastpos.Clone(),
	}
	if left.nullable {
		n.firstpos.InPlaceUnion(right.firstpos)
	}
	if right.nullable {
		n.lastpos.InPlaceUnion(left.lastpos)
	}
	return n
}

func newStar(child *node) *node {
	return &node{
		kind:     nodeStar,
		left:     child,
		nullable: true,
		firstpos: child.firstpos.Clone(),
		lastpos:  child.lastpos.Clone(),
	}
}

// addFollow accumulates followpos over the subtree: the right firstpos
// follows the left lastpos of a concatenation, and a starred subtree's
// firstpos follows its own lastpos.
func (n *node) addFollow(follow []*bitset.BitSet) {
	switch n.kind {
	case nodeConcat:
		for p, ok := n.left.lastpos.NextSet(0); ok; p, ok = n.left.lastpos.NextSet(p + 1) {
			follow[p].InPlaceUnion(n.right.firstpos)
		}
		n.left.addFollow(follow)
		n.right.addFollow(follow)
	case nodeUnion:
		n.left.addFollow(follow)
		n.right.addFollow(follow)
	case nodeStar:
		for p, ok := n.lastpos.NextSet(0); ok; p, ok = n.lastpos.NextSet(p + 1) {
			follow[p].InPlaceUnion(n.firstpos)
		}
		n.left.addFollow(follow)
	}
}

// ToAutomaton builds the position automaton: state 0 is the initial state and
// state p stands for letter position p. A state moves on letter c to the
// positions labeled c among the root firstpos (from state 0) or among its
// followpos. Accepting states are the root lastpos, plus state 0 when the
// expression accepts the empty word.
func (r *RegExp) ToAutomaton() *Automaton {
	n := len(r.letters)

	follow := make([]*bitset.BitSet, n+1)
	for p := range follow {
		follow[p] = bitset.New(uint(n + 1))
	}
	r.root.addFollow(follow)

	var alphabet []string
	labeled := make(map[string]*bitset.BitSet)
	for i, name := range r.letters {
		set, ok := labeled[name]
		if !ok {
			set = bitset.New(uint(n + 1))
			labeled[name] = set
			alphabet = append(alphabet, name)
		}
		set.Set(uint(i + 1))
	}

	b := newBuilder(alphabet)
	for p := 0; p <= n; p++ {
		b.createState(strconv.Itoa(p))
	}
	b.setInitial(0)
	for l, name := range alphabet {
		b.delta[0][l] = r.root.firstpos.Intersection(labeled[name])
		for p := 1; p <= n; p++ {
			b.delta[p][l] = follow[p].Intersection(labeled[name])
		}
	}
	for p, ok := r.root.lastpos.NextSet(0); ok; p, ok = r.root.lastpos.NextSet(p + 1) {
		b.setAccept(int(p), true)
	}
	if r.root.nullable {
		b.setAccept(0, true)
	}
	a := b.finish(KindNFA)
	a.kind = a.inferKind()
	return a
}
