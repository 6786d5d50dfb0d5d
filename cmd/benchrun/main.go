package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run executes a command and prints its combined output.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	return errors.Wrapf(err, "%s %v", name, args)
}

func main() {
	benchtime := flag.String("benchtime", "1s", "passed to go test -benchtime")
	searchDepth := flag.String("searchdepth", "4", "depth for the search throughput run")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if err := run("go", "test", "./rules", "./engine", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime); err != nil {
		log.Fatal().Err(err).Msg("benchmarks failed")
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	perfts := [][]string{
		{"-depth", "3", "-label", "Initial"},
		{"-depth", "4", "-label", "Initial"},
		{"-depth", "5", "-label", "Initial"},
		{"-fen", kiwipete, "-depth", "3", "-label", "Kiwipete"},
	}
	for _, args := range perfts {
		if err := run("go", append([]string{"run", "./cmd/perft"}, args...)...); err != nil {
			log.Error().Err(err).Msg("perft run failed")
		}
	}

	fmt.Println("\nSearch Performance:")
	if err := run("go", "run", "./cmd/searchbench", "-depth", *searchDepth, "-fen", kiwipete); err != nil {
		log.Error().Err(err).Msg("search run failed")
	}
}
