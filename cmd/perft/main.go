package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"minimax-chess/rules"
)

func main() {
	fen := flag.String("fen", rules.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	prof := flag.String("profile", "", "Profile the run: cpu or mem")
	profDir := flag.String("profiledir", ".", "Directory for profile output")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *depth <= 0 {
		log.Fatal().Int("depth", *depth).Msg("-depth must be > 0")
	}

	board, err := rules.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing -fen")
	}

	if *divide {
		div := rules.PerftDivide(board, *depth)
		type kv struct {
			m rules.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	default:
		log.Fatal().Str("profile", *prof).Msg("unknown profile kind")
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += rules.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}
