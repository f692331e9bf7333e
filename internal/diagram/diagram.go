// Package diagram draws board diagrams as SVG documents or PNG images.
package diagram

import (
	"image/color"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultSquareSize is the side of one square in pixels.
const DefaultSquareSize = 48

// Options control what a diagram shows.
type Options struct {
	SquareSize  int
	Flip        bool           // Black at the bottom
	Highlight   board.Bitboard // squares drawn with an overlay
	Coordinates bool           // file letters and rank digits along the edges
}

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return DefaultSquareSize
	}
	return o.SquareSize
}

// Size returns the side of the whole diagram in pixels.
func (o Options) Size() int {
	return 8 * o.squareSize()
}

var (
	lightColor     = color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	darkColor      = color.RGBA{0xb5, 0x88, 0x63, 0xff}
	highlightColor = color.RGBA{0xf7, 0xec, 0x5a, 0xff}
	whiteInk       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	blackInk       = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

const highlightOpacity = 0.6

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if o.Flip {
		file, rank = 7-file, 7-rank
	}
	s := o.squareSize()
	return file * s, rank * s
}

func squareColor(sq board.Square) color.RGBA {
	if sq.IsDark() {
		return darkColor
	}
	return lightColor
}

// edge reports which labels sq carries: its file letter along the bottom
// edge and its rank digit along the left edge.
func (o Options) edge(sq board.Square) (fileLabel, rankLabel bool) {
	bottom, left := 0, 0
	if o.Flip {
		bottom, left = 7, 7
	}
	return sq.Rank() == bottom, sq.File() == left
}
