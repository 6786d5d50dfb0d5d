package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"minimax-chess/engine"
	"minimax-chess/rules"
)

type result struct {
	fen     string
	move    rules.Move
	score   engine.Score
	stats   engine.Stats
	elapsed time.Duration
}

func main() {
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run per position")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	fensFlag := flag.String("fens", "", "file with one FEN per line, overrides -fen")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "positions searched concurrently")
	ttFlag := flag.Int("tt", engine.DefaultTTEntries, "transposition table entries per engine")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
	verbose := flag.Bool("v", false, "log every search")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	fens := []string{rules.StartFEN}
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}
	if *fensFlag != "" {
		var err error
		if fens, err = readFENs(*fensFlag); err != nil {
			log.Fatal().Err(err).Msg("loading positions")
		}
	}

	opts := engine.DefaultOptions()
	opts.Depth = *depthFlag
	opts.TTEntries = *ttFlag
	opts.Logger = log

	log.Info().Int("positions", len(fens)).Int("depth", *depthFlag).Int("repeat", *repeatFlag).Int("workers", *workersFlag).Msg("searchbench")

	startAll := time.Now()
	results, err := run(context.Background(), fens, *repeatFlag, *workersFlag, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}

	var nodes uint64
	for _, r := range results {
		nodes += r.stats.Nodes
		fmt.Printf("%s\tbestmove %v\tscore %.2f\tnodes %d\ttime %v\n", r.fen, r.move, float64(r.score), r.stats.Nodes, r.elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total nodes: %d  total time: %v\n", nodes, totalElapsed)
}

// run searches every position on its own engine. Results keep the order of
// fens; with repeat > 1 the last run of each position is reported.
func run(ctx context.Context, fens []string, repeat, workers int, opts engine.Options) ([]result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	results := make([]result, len(fens))
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			board, err := rules.ParseFEN(fen)
			if err != nil {
				return errors.Wrapf(err, "position %d", i+1)
			}
			eng := engine.New(opts)
			for r := 0; r < repeat; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				eng.Reset()
				start := time.Now()
				move, score := eng.RecommendMove(board, opts.Depth)
				results[i] = result{fen: fen, move: move, score: score, stats: eng.Stats(), elapsed: time.Since(start)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readFENs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening FEN file")
	}
	defer f.Close()

	var fens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading FEN file")
	}
	if len(fens) == 0 {
		return nil, errors.Errorf("%s holds no positions", path)
	}
	return fens, nil
}
