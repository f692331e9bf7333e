package diagram

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chesscore/internal/board"
)

var pieceGlyphs = map[board.PieceType]string{
	board.King:   "♚",
	board.Queen:  "♛",
	board.Rook:   "♜",
	board.Bishop: "♝",
	board.Knight: "♞",
	board.Pawn:   "♟",
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// errWriter keeps the first write error; svgo reports none.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG writes a diagram of pos to w.
func SVG(w io.Writer, pos *board.Position, opts Options) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	size := opts.Size()
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Title(pos.ToFEN())
	drawSquares(canvas, opts)
	drawPieces(canvas, pos, opts)
	if opts.Coordinates {
		drawCoordinates(canvas, opts)
	}
	canvas.End()
	return ew.err
}

// drawSquares draws the checkerboard and the highlights, the part of the
// diagram PNG rendering rasterizes.
func drawSquares(canvas *svg.SVG, opts Options) {
	s := opts.squareSize()
	canvas.Gid("squares")
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opts.origin(sq)
		canvas.Rect(x, y, s, s, "fill:"+hex(squareColor(sq)))
	}
	for sq := range opts.Highlight.All() {
		x, y := opts.origin(sq)
		canvas.Rect(x, y, s, s, fmt.Sprintf("fill:%s;fill-opacity:%.2f", hex(highlightColor), highlightOpacity))
	}
	canvas.Gend()
}

func drawPieces(canvas *svg.SVG, pos *board.Position, opts Options) {
	s := opts.squareSize()
	canvas.Gid("pieces")
	for sq := range pos.Occupied().All() {
		pc := pos.PieceAt(sq)
		x, y := opts.origin(sq)
		fill, stroke := whiteInk, blackInk
		if pc.Color() == board.Black {
			fill, stroke = blackInk, whiteInk
		}
		style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;fill:%s;stroke:%s;stroke-width:1",
			s*4/5, hex(fill), hex(stroke))
		canvas.Text(x+s/2, y+s*4/5, pieceGlyphs[pc.Type()], style)
	}
	canvas.Gend()
}

func drawCoordinates(canvas *svg.SVG, opts Options) {
	s := opts.squareSize()
	style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;fill:%s", max(s/5, 8), hex(blackInk))
	canvas.Gid("coordinates")
	for sq := board.A1; sq <= board.H8; sq++ {
		fileLabel, rankLabel := opts.edge(sq)
		x, y := opts.origin(sq)
		if fileLabel {
			canvas.Text(x+s-s/5, y+s-3, sq.String()[:1], style)
		}
		if rankLabel {
			canvas.Text(x+2, y+s/5+2, sq.String()[1:], style)
		}
	}
	canvas.Gend()
}
