// Command play is a console game against the engine. Moves are entered in
// standard algebraic notation.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/notnil/chess/image"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"minimax-chess/engine"
	"minimax-chess/rules"
)

func main() {
	depth := flag.Int("depth", engine.DefaultDepth, "engine search depth")
	black := flag.Bool("black", false, "play the black pieces")
	verbose := flag.Bool("v", false, "log engine searches on stderr")
	svgPath := flag.String("svg", "", "rewrite this SVG file with the board after every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	opts.Logger = log

	g := newGame(engine.New(opts), chess.White)
	if *black {
		g.human = chess.Black
	}
	g.svgPath = *svgPath
	if err := g.run(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

// game keeps the display game and the engine's board in step.
type game struct {
	eng   *engine.Engine
	human chess.Color
	disp  *chess.Game
	board rules.Board

	svgPath string
}

func newGame(eng *engine.Engine, human chess.Color) *game {
	return &game{eng: eng, human: human, disp: chess.NewGame(), board: rules.NewGame()}
}

// run plays until the game ends or the input is exhausted.
func (g *game) run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for !g.over() {
		if err := g.show(out); err != nil {
			return err
		}

		if g.disp.Position().Turn() != g.human {
			m, err := g.engineMove()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "engine plays", m)
			continue
		}

		fmt.Fprint(out, "your move: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := g.humanMove(text); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	if err := g.show(out); err != nil {
		return err
	}
	fmt.Fprintln(out, "game over:", g.result())
	return nil
}

// show draws the board on out and, with -svg, into the SVG file.
func (g *game) show(out io.Writer) error {
	fmt.Fprintln(out, g.disp.Position().Board().Draw())
	if g.svgPath == "" {
		return nil
	}
	return g.writeSVG(g.svgPath)
}

func (g *game) writeSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating svg file")
	}
	if err := image.SVG(f, g.disp.Position().Board()); err != nil {
		f.Close()
		return errors.Wrapf(err, "rendering %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

// humanMove validates SAN input. Invalid input leaves both boards untouched.
func (g *game) humanMove(san string) error {
	before := g.disp.Position()
	if err := g.disp.MoveStr(san); err != nil {
		return errors.Wrapf(rules.ErrInvalidMove, "%q: %v", san, err)
	}
	moves := g.disp.Moves()
	uci := chess.UCINotation{}.Encode(before, moves[len(moves)-1])
	next, err := g.board.ApplyUCI(uci)
	if err != nil {
		return errors.Wrap(err, "boards out of sync")
	}
	g.board = next
	return nil
}

func (g *game) engineMove() (string, error) {
	m, _ := g.eng.RecommendMove(g.board, g.eng.Depth())
	if m == rules.NoMove {
		return "", errors.New("engine found no move in a live position")
	}
	pos := g.disp.Position()
	dm, err := chess.UCINotation{}.Decode(pos, m.String())
	if err != nil {
		return "", errors.Wrapf(err, "decoding engine move %v", m)
	}
	san := chess.AlgebraicNotation{}.Encode(pos, dm)
	if err := g.disp.Move(dm); err != nil {
		return "", errors.Wrapf(err, "playing engine move %v", m)
	}
	g.board = g.board.Apply(m).(rules.Board)
	return san, nil
}

func (g *game) over() bool {
	return g.disp.Outcome() != chess.NoOutcome || g.board.IsGameOver()
}

func (g *game) result() string {
	if g.disp.Outcome() != chess.NoOutcome {
		return fmt.Sprintf("%s by %s", g.disp.Outcome(), g.disp.Method())
	}
	switch {
	case g.board.IsCheckmate():
		if g.board.WhiteToMove() {
			return "0-1 by checkmate"
		}
		return "1-0 by checkmate"
	case g.board.IsDraw():
		return "1/2-1/2 draw"
	}
	return "unfinished"
}
