package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chesscore/internal/board"
)

// Render rasterizes a diagram of pos. The squares go through the SVG
// renderer; pieces are letters (uppercase for both sides, filled by color)
// from the fixed-size basic font scaled up to the square.
func Render(pos *board.Position, opts Options) (*image.RGBA, error) {
	size := opts.Size()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(size, size, 0, 0, size, size)
	drawSquares(canvas, opts)
	canvas.End()

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("diagram: parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	for sq := range pos.Occupied().All() {
		drawPiece(rgba, pos.PieceAt(sq), sq, opts)
	}
	if opts.Coordinates {
		drawLabels(rgba, opts)
	}
	return rgba, nil
}

// PNG writes a PNG diagram of pos to w.
func PNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := Render(pos, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// glyph renders one character of the basic font at its native size.
func glyph(ch byte, ink color.Color) *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, face.Width, face.Height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(ch))
	return img
}

func drawPiece(dst *image.RGBA, pc board.Piece, sq board.Square, opts Options) {
	s := opts.squareSize()
	x, y := opts.origin(sq)

	face := basicfont.Face7x13
	h := s * 3 / 4
	w := h * face.Width / face.Height
	target := image.Rect(x+(s-w)/2, y+(s-h)/2, x+(s-w)/2+w, y+(s-h)/2+h)

	ch := upper(pc.Char())
	fill, outline := whiteInk, blackInk
	if pc.Color() == board.Black {
		fill, outline = blackInk, whiteInk
	}
	shadow := glyph(ch, outline)
	for _, d := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		xdraw.NearestNeighbor.Scale(dst, target.Add(d), shadow, shadow.Bounds(), xdraw.Over, nil)
	}
	xdraw.NearestNeighbor.Scale(dst, target, glyph(ch, fill), shadow.Bounds(), xdraw.Over, nil)
}

func drawLabels(dst *image.RGBA, opts Options) {
	s := opts.squareSize()
	face := basicfont.Face7x13
	d := font.Drawer{Dst: dst, Src: image.NewUniform(blackInk), Face: face}
	for sq := board.A1; sq <= board.H8; sq++ {
		fileLabel, rankLabel := opts.edge(sq)
		x, y := opts.origin(sq)
		if fileLabel {
			d.Dot = fixed.P(x+s-face.Width-1, y+s-2)
			d.DrawString(sq.String()[:1])
		}
		if rankLabel {
			d.Dot = fixed.P(x+1, y+face.Ascent)
			d.DrawString(sq.String()[1:])
		}
	}
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}
