// Package shell implements a line-oriented command interpreter for
// inspecting positions: set one up, list and play moves, count perft
// nodes and draw diagrams.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/perft"
)

// ErrUnknownCommand is returned for a command the shell does not know.
var ErrUnknownCommand = errors.New("unknown command")

const defaultPerftDepth = 5

// Shell holds the current game and answers commands about it.
type Shell struct {
	game    *game.Game
	counter *perft.Counter
	out     io.Writer
	flip    bool
	quit    bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithCounter sets the perft counter, for example one backed by a cache.
func WithCounter(c *perft.Counter) Option {
	return func(s *Shell) { s.counter = c }
}

// New creates a shell writing its answers to out, starting from the
// initial position.
func New(out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		game:    game.New(),
		counter: perft.New(),
		out:     out,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Game returns the game being inspected.
func (s *Shell) Game() *game.Game { return s.game }

// Run reads commands from in until it is exhausted or "quit" is read.
// A failing command is reported and does not stop the loop.
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for !s.quit && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.Execute(line); err != nil {
			log.WithError(err).WithField("command", line).Debug("command failed")
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Execute runs a single command line.
func (s *Shell) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "position":
		return s.handlePosition(args)
	case "d", "board":
		fmt.Fprint(s.out, s.game.Position().String())
	case "fen":
		fmt.Fprintln(s.out, s.game.Position().ToFEN())
	case "hash":
		fmt.Fprintf(s.out, "%016x\n", s.game.Position().Hash())
	case "moves":
		return s.handleMoves(args, false)
	case "san":
		return s.handleMoves(args, true)
	case "play":
		return s.handlePlay(args)
	case "undo":
		if _, ok := s.game.Undo(); !ok {
			return errors.New("no move to take back")
		}
	case "history":
		fmt.Fprintln(s.out, s.game.Movetext())
	case "status":
		s.handleStatus()
	case "claim":
		dt, err := s.game.ClaimDraw()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "drawn by %s\n", dt)
	case "resign":
		if err := s.game.Resign(s.game.Position().SideToMove()); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.game.Result())
	case "perft":
		return s.handlePerft(args)
	case "divide":
		return s.handleDivide(args)
	case "diagram":
		return s.handleDiagram(args)
	case "flip":
		s.flip = !s.flip
	case "debug":
		return s.handleDebug(args)
	case "help":
		fmt.Fprint(s.out, helpText)
	case "quit":
		s.quit = true
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
	return nil
}

const helpText = `position startpos|fen <fen> [moves <m>...]
d | board          show the position
fen                print the FEN
hash               print the position hash
moves [sq]         list legal moves in UCI notation
san [sq]           list legal moves in SAN
play <m>...        play moves in UCI notation
undo               take back the last move
history            print the moves played
status             describe the game state
claim              claim a draw
resign             resign for the side to move
perft [depth]      count leaf nodes
divide [depth]     count leaf nodes per root move
diagram <file> [sq...]  write an SVG or PNG diagram
flip               toggle board orientation for diagrams
debug on|off       validate every applied move
quit
`

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current game is replaced only when every move is legal.
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: expected startpos or fen")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		if movesAt != 1 {
			return fmt.Errorf("position: unexpected %q", args[1])
		}
		pos = board.NewPosition()
	case "fen":
		var err error
		if pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("position: unknown kind %q", args[0])
	}

	g := game.FromPosition(pos)
	if movesAt < len(args) {
		if err := g.PlayUCI(args[movesAt+1:]...); err != nil {
			return err
		}
	}
	s.game = g

	if board.DebugMoveValidation {
		log.WithFields(log.Fields{
			"fen":   g.Position().ToFEN(),
			"hash":  fmt.Sprintf("%016x", g.Position().Hash()),
			"legal": g.LegalMoves().Len(),
		}).Debug("position set")
	}
	return nil
}

func (s *Shell) handleMoves(args []string, san bool) error {
	pos := s.game.Position()
	moves := pos.LegalMoves()
	if len(args) > 0 {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		moves = pos.LegalMovesFrom(sq)
	}

	var text []string
	for m := range moves.All() {
		if san {
			text = append(text, m.ToSAN(pos))
		} else {
			text = append(text, m.String())
		}
	}
	fmt.Fprintln(s.out, strings.Join(text, " "))
	return nil
}

func (s *Shell) handlePlay(args []string) error {
	if len(args) == 0 {
		return errors.New("play: no moves")
	}
	for _, arg := range args {
		if err := s.game.PlayUCI(arg); err != nil {
			return err
		}
	}
	if res := s.game.Result(); res.IsDecided() {
		fmt.Fprintln(s.out, res)
	}
	return nil
}

func (s *Shell) handleStatus() {
	g := s.game
	pos := g.Position()
	fmt.Fprintf(s.out, "side: %s\n", pos.SideToMove())
	fmt.Fprintf(s.out, "status: %s\n", pos.Status())
	fmt.Fprintf(s.out, "check: %v\n", pos.InCheck())
	var pinned []string
	for sq := range pos.ByColor(pos.SideToMove()).All() {
		if pos.IsPinned(sq) {
			pinned = append(pinned, sq.String())
		}
	}
	if len(pinned) > 0 {
		fmt.Fprintf(s.out, "pinned: %s\n", strings.Join(pinned, " "))
	}
	fmt.Fprintf(s.out, "repetitions: %d\n", g.Repetitions())
	if dt := g.DrawType(); dt != board.NoDraw {
		fmt.Fprintf(s.out, "claimable: %s\n", dt)
	}
	fmt.Fprintf(s.out, "result: %s\n", g.Result())
}

func parseDepth(args []string) (int, error) {
	if len(args) == 0 {
		return defaultPerftDepth, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("bad depth %q", args[0])
	}
	return depth, nil
}

// handlePerft runs a perft test.
func (s *Shell) handlePerft(args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes, err := s.counter.Count(s.game.Position(), depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(s.out, "NPS: %.0f\n", nps)
	}
	return nil
}

func (s *Shell) handleDivide(args []string) error {
	depth, err := parseDepth(args)
	if err != nil {
		return err
	}
	entries, total, err := s.counter.Divide(s.game.Position(), depth)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Fprintf(s.out, "\nMoves: %d\nNodes: %d\n", len(entries), total)
	return nil
}

// handleDiagram writes the position to a file, PNG when the name ends in
// .png and SVG otherwise. Squares after the file name are highlighted.
func (s *Shell) handleDiagram(args []string) error {
	if len(args) == 0 {
		return errors.New("diagram: no file name")
	}
	opts := diagram.Options{Flip: s.flip, Coordinates: true}
	for _, arg := range args[1:] {
		sq, err := board.ParseSquare(arg)
		if err != nil {
			return err
		}
		opts.Highlight = opts.Highlight.Set(sq)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(args[0]), ".png") {
		err = diagram.PNG(f, s.game.Position(), opts)
	} else {
		err = diagram.SVG(f, s.game.Position(), opts)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "wrote %s\n", args[0])
	return nil
}

func (s *Shell) handleDebug(args []string) error {
	if len(args) != 1 {
		return errors.New("debug: expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true":
		board.DebugMoveValidation = true
	case "off", "false":
		board.DebugMoveValidation = false
	default:
		return fmt.Errorf("debug: bad value %q", args[0])
	}
	log.WithField("enabled", board.DebugMoveValidation).Info("move validation")
	return nil
}
