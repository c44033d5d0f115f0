package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grid-planner/gridgraph"
)

func main() {
	// Use a minimal logger until the configured one is ready.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses flags, builds the grid and serves it until interrupted
func run(args []string, logW io.Writer) error {
	flagSet := flag.NewFlagSet("grid-planner", flag.ContinueOnError)
	flagSet.SetOutput(logW)
	configPath := flagSet.String("config", "", "Path to an HCL config file.")
	addrFlag := flagSet.String("addr", "", "Listen address, overrides the config file.")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	slog.SetDefault(logger)

	grid, err := newGridFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newPlanner(grid, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("grid planner server starting",
			"addr", cfg.Addr,
			"endpoints", []string{
				"GET /health", "GET /grid", "GET /adjacencyLines", "GET|POST /layout",
				"POST /toggleObstacle", "POST /setStart", "POST /setEnd",
				"POST /randomize", "POST /fillObstacles", "POST /clearObstacles",
				"POST /stampZones", "POST /solve", "POST /popVisited",
			})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newGridFromConfig builds the startup grid: dimensions, optional obstacle
// zones, optional random obstacles, then adjacency.
func newGridFromConfig(cfg *Config, logger *slog.Logger) (*gridgraph.GridGraph, error) {
	grid, err := gridgraph.New(cfg.Rows, cfg.Cols, gridgraph.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	logger.Info("grid created", "rows", grid.Rows(), "cols", grid.Cols(), "nodes", grid.Len())

	if cfg.ZonesDir != "" {
		zones, err := loadZonesFromDir(cfg.ZonesDir, logger)
		if err != nil {
			return nil, err
		}
		stamped := grid.StampZones(zones)
		logger.Info("obstacle zones stamped", "cells", stamped)
	}

	if cfg.ObstacleProbability > 0 {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		toggled := grid.RandomizeObstacles(newRandomSource(seed), cfg.ObstacleProbability)
		logger.Info("obstacles randomized", "seed", seed, "toggled", toggled)
	}

	grid.RebuildAdjacency()
	return grid, nil
}
