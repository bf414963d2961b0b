package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/anellie/chevii/internal/board"
	"github.com/anellie/chevii/internal/engine"
	"github.com/anellie/chevii/internal/nnue"
)

const defaultNetFile = "model.nnue"

func main() {
	position := flag.String("position", "", "FEN of the position to search (required)")
	seconds := flag.Float64("time", 3, "search time budget, in seconds")
	threads := flag.Int("threads", 8, "number of parallel root-move search workers")
	netPath := flag.String("nnue", defaultNetFile, "path to the NNUE weights file")
	flag.Parse()

	if *position == "" {
		log.Fatal("--position is required")
	}

	pos, err := board.ParseFEN(*position)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}
	pos.UpdateCheckers()

	nn := nnue.New()
	if !nn.Init(*netPath) {
		log.Fatalf("could not load NNUE weights from %s: evaluation cannot run without a network", *netPath)
	}

	d := engine.NewDriver(nn, *threads)
	move, err := d.CalculateMove(pos, time.Duration(*seconds*float64(time.Second)))
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	os.Stdout.WriteString(move.String() + "\n")
}
