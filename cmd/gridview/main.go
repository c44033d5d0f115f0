// Command gridview is an interactive terminal front end for the grid planner.
//
// Click a cell to toggle an obstacle, shift-click to move the start, ctrl- or
// alt-click to move the end. Every edit re-solves the grid and replays the
// search one batch of visited nodes per frame before drawing the path.
//
// Keys: r randomize, c clear, space replay, +/- playback speed, q quit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"grid-planner/gridgraph"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	rows := flag.Int("rows", 20, "Number of grid rows.")
	cols := flag.Int("cols", 20, "Number of grid columns.")
	probability := flag.Float64("probability", 0.3, "Obstacle probability used by randomize.")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks a time-based seed.")
	steps := flag.Int("steps", 1, "Visited nodes revealed per frame.")
	logPath := flag.String("log", "", "Write debug logs to this file.")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	grid, err := gridgraph.New(*rows, *cols, gridgraph.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create grid: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(screen, grid, rand.New(rand.NewPCG(*seed, *seed>>1|1)), *probability, *steps, logger)
	defer screen.Fini()

	v.run()
}

// openLogger returns a debug logger writing to path, or a discarding one
// when path is empty. The terminal belongs to tcell, so nothing logs there.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
