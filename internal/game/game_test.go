package game

import (
	"errors"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/hailam/chesscore/internal/board"
)

func Test(t *testing.T) { TestingT(t) }

type GameSuite struct{}

var _ = Suite(&GameSuite{})

func (s *GameSuite) TestScholarsMate(c *C) {
	g := New()
	c.Assert(g.PlayUCI("e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6", "h5f7"), IsNil)

	c.Check(g.IsFinished(), Equals, true)
	c.Check(g.Position().IsCheckmate(), Equals, true)
	c.Check(g.Result(), Equals, board.Won(board.White, board.WinCheckmate))
	c.Check(g.Movetext(), Equals,
		"1. e2e4 e7e5 2. Qd1h5 Nb8c6 3. Bf1c4 Ng8f6 4. Qh5xf7# 1-0")

	err := g.PlayUCI("e8e7")
	c.Check(err, NotNil)
	c.Check(errors.Is(g.Play(board.NewMove(board.E8, board.E7)), ErrGameFinished), Equals, true)
}

func (s *GameSuite) TestUndo(c *C) {
	g := New()
	start := g.Position().Hash()
	c.Assert(g.PlayUCI("e2e4", "e7e5"), IsNil)
	c.Check(g.Ply(), Equals, 2)

	m, ok := g.Undo()
	c.Check(ok, Equals, true)
	c.Check(m.String(), Equals, "e7e5")
	m, ok = g.Undo()
	c.Check(ok, Equals, true)
	c.Check(m.String(), Equals, "e2e4")
	c.Check(g.Position().Hash(), Equals, start)

	_, ok = g.Undo()
	c.Check(ok, Equals, false)
}

func (s *GameSuite) TestUndoReopensFinishedGame(c *C) {
	g := New()
	c.Assert(g.PlayUCI("f2f3", "e7e5", "g2g4", "d8h4"), IsNil)
	c.Check(g.Result().String(), Equals, "0-1")

	g.Undo()
	c.Check(g.IsFinished(), Equals, false)
	c.Check(g.Result(), Equals, board.NoResult)
	c.Assert(g.PlayUCI("d8e7"), IsNil)
}

func (s *GameSuite) TestIllegalMove(c *C) {
	g := New()
	err := g.Play(board.NewMove(board.E2, board.E5))
	c.Check(errors.Is(err, board.ErrIllegalMove), Equals, true)
	c.Check(g.Ply(), Equals, 0)
}

func (s *GameSuite) TestThreefoldRepetition(c *C) {
	g := New()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	c.Assert(g.PlayUCI(shuffle...), IsNil)
	c.Check(g.Repetitions(), Equals, 2)
	c.Check(g.CanClaimDrawBy(board.DrawThreefoldRepetition), Equals, false)

	c.Assert(g.PlayUCI(shuffle...), IsNil)
	c.Check(g.Repetitions(), Equals, 3)
	c.Check(g.DrawType(), Equals, board.DrawThreefoldRepetition)

	dt, err := g.ClaimDraw()
	c.Assert(err, IsNil)
	c.Check(dt, Equals, board.DrawThreefoldRepetition)
	c.Check(g.IsFinished(), Equals, true)
	c.Check(g.Movetext(), Matches, `.* 1/2-1/2$`)
}

func (s *GameSuite) TestRepetitionAfterDoublePush(c *C) {
	g := New()
	c.Assert(g.PlayUCI("e2e4", "g8f6", "g1f3", "f6g8", "f3g1", "g8f6", "g1f3", "f6g8", "f3g1"), IsNil)
	c.Check(g.Repetitions(), Equals, 3)
	c.Check(g.CanClaimDrawBy(board.DrawThreefoldRepetition), Equals, true)
}

func (s *GameSuite) TestRepetitionIgnoresIrreversibleHistory(c *C) {
	g := New()
	c.Assert(g.PlayUCI("g1f3", "g8f6", "f3g1", "f6g8", "e2e4"), IsNil)
	c.Check(g.Repetitions(), Equals, 1)
}

func (s *GameSuite) TestNoDrawToClaim(c *C) {
	g := New()
	_, err := g.ClaimDraw()
	c.Check(errors.Is(err, ErrNoDrawClaim), Equals, true)
	c.Check(g.CanClaimDraw(), Equals, false)
}

func (s *GameSuite) TestFiftyMoveClaim(c *C) {
	g := FromPosition(board.MustParseFEN("8/8/8/4k3/8/8/8/R3K3 w - - 99 80"))
	c.Check(g.CanClaimDraw(), Equals, false)
	c.Assert(g.PlayUCI("a1a2"), IsNil)
	c.Check(g.DrawType(), Equals, board.DrawFiftyMoveRule)
}

func (s *GameSuite) TestResignAndAgreement(c *C) {
	g := New()
	c.Assert(g.Resign(board.White), IsNil)
	c.Check(g.Result(), Equals, board.Won(board.Black, board.WinResignation))
	c.Check(g.Movetext(), Equals, "0-1")
	c.Check(errors.Is(g.AgreeDraw(), ErrGameFinished), Equals, true)

	g = New()
	c.Assert(g.PlayUCI("e2e4"), IsNil)
	c.Assert(g.AgreeDraw(), IsNil)
	c.Check(g.Movetext(), Equals, "1. e2e4 1/2-1/2")
}

func (s *GameSuite) TestMovetextFromBlack(c *C) {
	g := FromPosition(board.MustParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"))
	c.Assert(g.PlayUCI("e7e5", "g1f3"), IsNil)
	c.Check(g.Movetext(), Equals, "1... e7e5 2. Ng1f3")
}
