package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hailam/chesscore/internal/board"
)

// NodeID indexes a node in a Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

var ErrUnknownNode = errors.New("unknown tree node")

type node struct {
	pos      *board.Position
	move     board.Move // move from the parent, NoMove at the root
	parent   NodeID
	children []NodeID // first child continues the main line
}

// Tree holds variations as an arena of nodes linked by parent indices.
// Cut nodes stay in the arena but are no longer reachable from the root.
type Tree struct {
	nodes []node
}

// NewTree returns a tree rooted at pos.
func NewTree(pos *board.Position) *Tree {
	return &Tree{nodes: []node{{pos: pos.Copy(), parent: NoNode}}}
}

// Root returns the root node.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes ever added, cut ones included.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) get(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return &t.nodes[id], nil
}

func (t *Tree) mustGet(id NodeID) *node {
	n, err := t.get(id)
	if err != nil {
		panic(err)
	}
	return n
}

// Position returns the position at id.
func (t *Tree) Position(id NodeID) *board.Position { return t.mustGet(id).pos }

// Move returns the move that led to id.
func (t *Tree) Move(id NodeID) board.Move { return t.mustGet(id).move }

// Parent returns the parent of id, NoNode for the root or a cut node.
func (t *Tree) Parent(id NodeID) NodeID { return t.mustGet(id).parent }

// Children returns the continuations of id, main line first.
func (t *Tree) Children(id NodeID) []NodeID { return t.mustGet(id).children }

func (t *Tree) IsRoot(id NodeID) bool   { return id == t.Root() }
func (t *Tree) IsLeaf(id NodeID) bool   { return len(t.Children(id)) == 0 }
func (t *Tree) IsBranch(id NodeID) bool { return len(t.Children(id)) > 1 }

// AddMove adds m as a continuation of parent and returns the new node. If
// parent already continues with m, that node is returned instead.
func (t *Tree) AddMove(parent NodeID, m board.Move) (NodeID, error) {
	p, err := t.get(parent)
	if err != nil {
		return NoNode, err
	}
	for _, c := range p.children {
		if t.nodes[c].move == m {
			return c, nil
		}
	}
	if !p.pos.IsLegal(m) {
		return NoNode, fmt.Errorf("%w: %s in %s", board.ErrIllegalMove, m, p.pos.ToFEN())
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{pos: p.pos.Play(m), move: m, parent: parent})
	// append may have moved the arena
	p = &t.nodes[parent]
	p.children = append(p.children, id)
	return id, nil
}

// Path returns the moves from the root to id.
func (t *Tree) Path(id NodeID) ([]board.Move, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	var moves []board.Move
	for n := id; n != t.Root(); n = t.nodes[n].parent {
		if n == NoNode {
			return nil, fmt.Errorf("%w: %d is cut from the root", ErrUnknownNode, id)
		}
		moves = append(moves, t.nodes[n].move)
	}
	slices.Reverse(moves)
	return moves, nil
}

// Mainline follows the first child from the root to a leaf.
func (t *Tree) Mainline() []NodeID {
	var line []NodeID
	for n := t.Root(); len(t.nodes[n].children) > 0; {
		n = t.nodes[n].children[0]
		line = append(line, n)
	}
	return line
}

// Promote makes id the first continuation of its parent.
func (t *Tree) Promote(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent == NoNode {
		return nil
	}
	p := &t.nodes[n.parent]
	i := slices.Index(p.children, id)
	p.children = slices.Insert(slices.Delete(p.children, i, i+1), 0, id)
	return nil
}

// Cut detaches id and its subtree from its parent.
func (t *Tree) Cut(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if id == t.Root() {
		return fmt.Errorf("%w: cannot cut the root", ErrUnknownNode)
	}
	if n.parent == NoNode {
		return nil
	}
	p := &t.nodes[n.parent]
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = NoNode
	return nil
}

// Game replays the path to id as a Game.
func (t *Tree) Game(id NodeID) (*Game, error) {
	moves, err := t.Path(id)
	if err != nil {
		return nil, err
	}
	g := FromPosition(t.nodes[t.Root()].pos)
	for _, m := range moves {
		if err := g.Play(m); err != nil {
			return nil, err
		}
	}
	return g, nil
}
