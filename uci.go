package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"minimax-chess/engine"
	"minimax-chess/rules"
)

const (
	engineName = "minimax-chess 0.1"
	maxGoDepth = 12
)

func main() {
	var (
		depth   = flag.Int("depth", engine.DefaultDepth, "search depth used when go has no depth")
		ttSize  = flag.Int("tt", engine.DefaultTTEntries, "transposition table entries")
		noTT    = flag.Bool("nott", false, "disable the transposition table")
		verify  = flag.Bool("verify", false, "check bitboard invariants at every node")
		verbose = flag.Bool("v", false, "debug logging on stderr")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	opts.TTEntries = *ttSize
	opts.DisableTT = *noTT
	opts.VerifyInvariants = *verify
	opts.Logger = logger

	if err := uciLoop(os.Stdin, os.Stdout, engine.New(opts), logger); err != nil {
		logger.Fatal().Err(err).Msg("reading commands")
	}
}

type uciSession struct {
	out   io.Writer
	eng   *engine.Engine
	board rules.Board
	log   zerolog.Logger
}

// uciLoop answers UCI commands from in until quit or end of input.
func uciLoop(in io.Reader, out io.Writer, eng *engine.Engine, log zerolog.Logger) error {
	s := &uciSession{out: out, eng: eng, board: rules.NewGame(), log: log}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name", engineName)
			s.println("id author minimax-chess developers")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.board = rules.NewGame()
			s.eng.Reset()
		case "position":
			s.position(tokens[1:])
		case "go":
			s.goSearch(tokens[1:])
		case "eval":
			s.eval()
		case "d":
			fmt.Fprint(s.out, s.board.String())
			s.println("Fen:", s.board.FEN())
			fmt.Fprintf(s.out, "Key: %016X\n", s.eng.Hash(s.board))
		case "stop":
			// Searches are synchronous, there is nothing to stop.
		case "quit":
			return nil
		default:
			s.log.Debug().Str("line", line).Msg("unknown command")
			s.println("info string Unknown command", tokens[0])
		}
	}
	return scanner.Err()
}

func (s *uciSession) println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

func (s *uciSession) position(tokens []string) {
	if len(tokens) == 0 {
		s.println("info string Malformed position command")
		return
	}

	var board rules.Board
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		board = rules.NewGame()
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		var err error
		board, err = rules.ParseFEN(strings.Join(rest[:i], " "))
		if err != nil {
			s.log.Debug().Err(err).Msg("position rejected")
			s.println("info string Invalid fen position:", err)
			return
		}
		rest = rest[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, text := range rest[1:] {
			next, err := board.ApplyUCI(text)
			if err != nil {
				s.println("info string Move", text, "not found for position", board.FEN())
				break
			}
			board = next
		}
	}
	s.board = board
}

func (s *uciSession) goSearch(tokens []string) {
	depth := s.eng.Depth()
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "depth":
			if i+1 >= len(tokens) {
				s.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(tokens[i])
			if err != nil || d < 0 {
				s.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = engine.Clamp(d, 0, maxGoDepth)
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime":
			i++ // fixed depth only, clocks are ignored
		case "infinite":
		default:
			s.println("info string Unknown go subcommand", tokens[i])
		}
	}

	move, score := s.eng.RecommendMove(s.board, depth)
	stats := s.eng.Stats()
	cp := centipawns(score, s.board.WhiteToMove())
	if move == rules.NoMove {
		s.println("info depth", depth, "score cp", cp, "nodes", stats.Nodes)
		s.println("bestmove 0000")
		return
	}
	s.println("info depth", depth, "score cp", cp, "nodes", stats.Nodes, "pv", move)
	s.println("bestmove", move)
}

func (s *uciSession) eval() {
	score := s.eng.StaticEvaluation(s.board)
	t := s.eng.StaticTerms(s.board)
	fmt.Fprintf(s.out, "info string eval %.2f material %.2f positional %.2f corner %.3f center %.2f mobility %.2f\n",
		float64(score), t.Material, t.Positional, t.KingCorner, t.KingCenter, t.Mobility)
}

// centipawns converts a White-relative score to the side-to-move relative
// units UCI expects.
func centipawns(score engine.Score, whiteToMove bool) int {
	cp := int(math.Round(float64(score) * 100))
	if !whiteToMove {
		return -cp
	}
	return cp
}
