// Package game keeps the history of a game on top of the stateless board
// package: played positions, threefold repetition, draw claims, results,
// movetext, and a tree of variations.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

var (
	ErrGameFinished = errors.New("game is finished")
	ErrNoDrawClaim  = errors.New("no draw can be claimed")
)

// defaultCapacity is the length of an average game in plies.
const defaultCapacity = 80

// Game is a stack of positions; the last one is current. hashes[i] is the
// repetition hash of positions[i] and moves[i] leads from positions[i] to positions[i+1].
type Game struct {
	positions []*board.Position
	moves     []board.Move
	hashes    []uint64
	result    board.Result
}

// New starts a game from the initial position.
func New() *Game {
	return FromPosition(board.NewPosition())
}

// FromPosition starts a game from pos as if it were the first position.
func FromPosition(pos *board.Position) *Game {
	g := &Game{
		positions: make([]*board.Position, 0, defaultCapacity),
		moves:     make([]board.Move, 0, defaultCapacity),
		hashes:    make([]uint64, 0, defaultCapacity),
	}
	g.positions = append(g.positions, pos.Copy())
	g.hashes = append(g.hashes, pos.RepetitionHash())
	return g
}

// Position returns the current position. Callers must not modify it.
func (g *Game) Position() *board.Position {
	return g.positions[len(g.positions)-1]
}

// Start returns the position the game started from.
func (g *Game) Start() *board.Position {
	return g.positions[0]
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	return g.moves
}

// Ply returns the number of moves played.
func (g *Game) Ply() int {
	return len(g.moves)
}

// LegalMoves returns the legal moves of the current position.
func (g *Game) LegalMoves() board.MoveGen {
	return g.Position().LegalMoves()
}

// Play plays m, which must be legal in the current position.
func (g *Game) Play(m board.Move) error {
	if g.IsFinished() {
		return ErrGameFinished
	}
	pos := g.Position()
	if !pos.IsLegal(m) {
		return fmt.Errorf("%w: %s in %s", board.ErrIllegalMove, m, pos.ToFEN())
	}

	next := pos.Play(m)
	g.positions = append(g.positions, next)
	g.moves = append(g.moves, m)
	g.hashes = append(g.hashes, next.RepetitionHash())

	if next.Status() != board.Ongoing {
		g.result = next.Result()
	}
	return nil
}

// PlayUCI parses and plays a sequence of moves in UCI notation.
func (g *Game) PlayUCI(moves ...string) error {
	for _, s := range moves {
		m, err := board.ParseMove(s, g.Position())
		if err != nil {
			return err
		}
		if err := g.Play(m); err != nil {
			return err
		}
	}
	return nil
}

// Undo takes back the last move and clears any result. It reports false
// when no move has been played.
func (g *Game) Undo() (board.Move, bool) {
	if len(g.moves) == 0 {
		return board.NoMove, false
	}
	last := len(g.moves) - 1
	m := g.moves[last]
	g.moves = g.moves[:last]
	g.positions = g.positions[:last+1]
	g.hashes = g.hashes[:last+1]
	g.result = board.NoResult
	return m, true
}

// IsFinished reports whether the game has a result: checkmate, stalemate,
// or one set by resignation, agreement or a claimed draw.
func (g *Game) IsFinished() bool {
	return g.result.IsDecided() || g.Position().Status() != board.Ongoing
}

// Result returns the result of the game, board.NoResult while it goes on.
func (g *Game) Result() board.Result {
	return g.result
}

// Resign ends the game with c losing.
func (g *Game) Resign(c board.Color) error {
	if g.IsFinished() {
		return ErrGameFinished
	}
	g.result = board.Won(c.Other(), board.WinResignation)
	return nil
}

// AgreeDraw ends the game drawn by agreement.
func (g *Game) AgreeDraw() error {
	if g.IsFinished() {
		return ErrGameFinished
	}
	g.result = board.Drawn(board.DrawAgreement)
	return nil
}

// Repetitions counts how often the current position has occurred. Only the
// positions since the last capture or pawn move can repeat it.
func (g *Game) Repetitions() int {
	cur := len(g.hashes) - 1
	first := max(cur-g.Position().HalfMoveClock(), 0)
	n := 0
	for i := cur; i >= first; i-- {
		if g.hashes[i] == g.hashes[cur] {
			n++
		}
	}
	return n
}

// CanClaimDrawBy reports whether a draw of type dt can be claimed now.
func (g *Game) CanClaimDrawBy(dt board.DrawType) bool {
	pos := g.Position()
	switch dt {
	case board.DrawThreefoldRepetition:
		return g.Repetitions() >= 3
	case board.DrawFiftyMoveRule:
		return pos.CanClaimFiftyMoveRule()
	case board.DrawInsufficientMaterial:
		return pos.IsInsufficientMaterial()
	}
	return false
}

// DrawType returns the first claimable draw, or board.NoDraw.
func (g *Game) DrawType() board.DrawType {
	for _, dt := range []board.DrawType{
		board.DrawFiftyMoveRule,
		board.DrawThreefoldRepetition,
		board.DrawInsufficientMaterial,
	} {
		if g.CanClaimDrawBy(dt) {
			return dt
		}
	}
	return board.NoDraw
}

// CanClaimDraw reports whether any draw can be claimed.
func (g *Game) CanClaimDraw() bool {
	return g.DrawType() != board.NoDraw
}

// ClaimDraw ends the game with the first claimable draw.
func (g *Game) ClaimDraw() (board.DrawType, error) {
	if g.IsFinished() {
		return board.NoDraw, ErrGameFinished
	}
	dt := g.DrawType()
	if dt == board.NoDraw {
		return board.NoDraw, ErrNoDrawClaim
	}
	g.result = board.Drawn(dt)
	return dt, nil
}

// Movetext renders the moves in long algebraic notation with move numbers,
// "1. e2e4 e7e5 2. Ng1f3", followed by the result token once decided.
func (g *Game) Movetext() string {
	var sb strings.Builder
	number := g.Start().FullMoveNumber()
	for i, m := range g.moves {
		pos := g.positions[i]
		white := pos.SideToMove() == board.White
		if white || i == 0 {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(number))
			if white {
				sb.WriteString(". ")
			} else {
				sb.WriteString("... ")
			}
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.LongSAN(pos))
		if !white {
			number++
		}
	}
	if g.result.IsDecided() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.result.String())
	}
	return sb.String()
}
