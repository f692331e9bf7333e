package board

import "fmt"

// Status classifies a position by the moves available to the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// DrawType names the ways a game can be drawn.
type DrawType uint8

const (
	NoDraw DrawType = iota
	DrawAgreement
	DrawStalemate
	DrawThreefoldRepetition
	DrawFiftyMoveRule
	DrawInsufficientMaterial
)

var drawTypeNames = map[DrawType]string{
	NoDraw:                   "none",
	DrawAgreement:            "agreement",
	DrawStalemate:            "stalemate",
	DrawThreefoldRepetition:  "threefold repetition",
	DrawFiftyMoveRule:        "fifty-move rule",
	DrawInsufficientMaterial: "insufficient material",
}

func (d DrawType) String() string {
	if s, ok := drawTypeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DrawType(%d)", uint8(d))
}

// WinType names the ways a game can be won.
type WinType uint8

const (
	WinCheckmate WinType = iota
	WinResignation
)

func (w WinType) String() string {
	if w == WinResignation {
		return "resignation"
	}
	return "checkmate"
}

// ResultKind says whether a game is undecided, won or drawn.
type ResultKind uint8

const (
	Undecided ResultKind = iota
	Win
	Draw
)

// Result is the outcome of a game. The zero value is undecided.
type Result struct {
	Kind   ResultKind
	Winner Color // set when Kind is Win
	Win    WinType
	Draw   DrawType
}

// NoResult is the result of an unfinished game.
var NoResult = Result{}

// Won returns the result of c winning by w.
func Won(c Color, w WinType) Result {
	return Result{Kind: Win, Winner: c, Win: w}
}

// Drawn returns the result of a draw of type d.
func Drawn(d DrawType) Result {
	return Result{Kind: Draw, Winner: NoColor, Draw: d}
}

// IsDecided reports whether the game has a result.
func (r Result) IsDecided() bool {
	return r.Kind != Undecided
}

// String returns the PGN result token.
func (r Result) String() string {
	switch r.Kind {
	case Win:
		if r.Winner == White {
			return "1-0"
		}
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Status reports checkmate, stalemate or neither.
func (p *Position) Status() Status {
	if p.HasLegalMoves() {
		return Ongoing
	}
	if p.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no moves and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial reports dead positions recognisable from material
// alone: bare kings, a single minor piece, or one bishop each on squares of
// the same color.
func (p *Position) IsInsufficientMaterial() bool {
	switch p.Occupied().PopCount() {
	case 2:
		return true
	case 3:
		return p.pieces[Knight].PopCount() == 1 || p.pieces[Bishop].PopCount() == 1
	case 4:
		wb, bb := p.Pieces(White, Bishop), p.Pieces(Black, Bishop)
		return wb.PopCount() == 1 && bb.PopCount() == 1 &&
			wb.LSB().IsDark() == bb.LSB().IsDark()
	}
	return false
}

// CanClaimFiftyMoveRule reports whether fifty full moves have passed without
// a capture or pawn move.
func (p *Position) CanClaimFiftyMoveRule() bool {
	return p.halfMoveClock >= 100
}

// CanClaimDraw reports whether a draw visible from this position alone can
// be claimed. Repetition needs the game history.
func (p *Position) CanClaimDraw() bool {
	return p.CanClaimFiftyMoveRule() || p.IsInsufficientMaterial()
}

// Result returns the game result this position decides, if any: mate,
// stalemate, or a claimable fifty-move or insufficient-material draw.
func (p *Position) Result() Result {
	switch p.Status() {
	case Checkmate:
		return Won(p.sideToMove.Other(), WinCheckmate)
	case Stalemate:
		return Drawn(DrawStalemate)
	}
	switch {
	case p.CanClaimFiftyMoveRule():
		return Drawn(DrawFiftyMoveRule)
	case p.IsInsufficientMaterial():
		return Drawn(DrawInsufficientMaterial)
	}
	return NoResult
}
