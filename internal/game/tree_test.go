package game

import (
	"errors"

	. "gopkg.in/check.v1"

	"github.com/hailam/chesscore/internal/board"
)

type TreeSuite struct {
	tree *Tree
}

var _ = Suite(&TreeSuite{})

func (s *TreeSuite) SetUpTest(c *C) {
	s.tree = NewTree(board.NewPosition())
}

func (s *TreeSuite) add(c *C, parent NodeID, uci string) NodeID {
	m, err := board.ParseMove(uci, s.tree.Position(parent))
	c.Assert(err, IsNil)
	id, err := s.tree.AddMove(parent, m)
	c.Assert(err, IsNil)
	return id
}

func (s *TreeSuite) TestMainlineAndVariations(c *C) {
	root := s.tree.Root()
	e4 := s.add(c, root, "e2e4")
	d4 := s.add(c, root, "d2d4")
	e5 := s.add(c, e4, "e7e5")
	c5 := s.add(c, e4, "c7c5")

	c.Check(s.tree.Mainline(), DeepEquals, []NodeID{e4, e5})
	c.Check(s.tree.IsBranch(root), Equals, true)
	c.Check(s.tree.IsLeaf(d4), Equals, true)
	c.Check(s.tree.Parent(c5), Equals, e4)
	c.Check(s.tree.Parent(root), Equals, NoNode)

	c.Assert(s.tree.Promote(c5), IsNil)
	c.Check(s.tree.Mainline(), DeepEquals, []NodeID{e4, c5})
	c.Check(s.tree.Children(e4), DeepEquals, []NodeID{c5, e5})
}

func (s *TreeSuite) TestAddExistingMoveReturnsNode(c *C) {
	e4 := s.add(c, s.tree.Root(), "e2e4")
	again := s.add(c, s.tree.Root(), "e2e4")
	c.Check(again, Equals, e4)
	c.Check(s.tree.Len(), Equals, 2)
}

func (s *TreeSuite) TestIllegalMove(c *C) {
	_, err := s.tree.AddMove(s.tree.Root(), board.NewMove(board.E2, board.E5))
	c.Check(errors.Is(err, board.ErrIllegalMove), Equals, true)

	_, err = s.tree.AddMove(42, board.NewMove(board.E2, board.E4))
	c.Check(errors.Is(err, ErrUnknownNode), Equals, true)
}

func (s *TreeSuite) TestPathAndGame(c *C) {
	n := s.add(c, s.tree.Root(), "e2e4")
	n = s.add(c, n, "e7e5")
	n = s.add(c, n, "g1f3")

	path, err := s.tree.Path(n)
	c.Assert(err, IsNil)
	c.Assert(path, HasLen, 3)
	c.Check(path[0].String(), Equals, "e2e4")
	c.Check(path[2].String(), Equals, "g1f3")

	g, err := s.tree.Game(n)
	c.Assert(err, IsNil)
	c.Check(g.Position().Equal(s.tree.Position(n)), Equals, true)
	c.Check(g.Movetext(), Equals, "1. e2e4 e7e5 2. Ng1f3")
}

func (s *TreeSuite) TestCut(c *C) {
	root := s.tree.Root()
	e4 := s.add(c, root, "e2e4")
	e5 := s.add(c, e4, "e7e5")
	d4 := s.add(c, root, "d2d4")

	c.Assert(s.tree.Cut(e4), IsNil)
	c.Check(s.tree.Children(root), DeepEquals, []NodeID{d4})
	c.Check(s.tree.Mainline(), DeepEquals, []NodeID{d4})

	_, err := s.tree.Path(e5)
	c.Check(errors.Is(err, ErrUnknownNode), Equals, true)
	c.Check(s.tree.Cut(root), NotNil)
}
