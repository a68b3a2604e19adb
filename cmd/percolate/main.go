package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dd0wney/percolate/pkg/cliques"
	"github.com/dd0wney/percolate/pkg/config"
	"github.com/dd0wney/percolate/pkg/errs"
	"github.com/dd0wney/percolate/pkg/ingest"
	"github.com/dd0wney/percolate/pkg/logging"
	"github.com/dd0wney/percolate/pkg/metrics"
	"github.com/dd0wney/percolate/pkg/output"
	"github.com/dd0wney/percolate/pkg/percolation"
	"github.com/dd0wney/percolate/pkg/progress"
	"github.com/dd0wney/percolate/pkg/validation"
)

func main() {
	printBanner()

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "percolate:", err)
		os.Exit(1)
	}
	if err := validation.ValidateConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "percolate: invalid config:", err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	logger := logging.NewDefaultLogger().With(logging.String("run_id", runID))

	// With --tui the dashboard replaces the structured log lines for the
	// duration of the run; a failure is still logged once it has exited.
	runLogger := logger
	if cfg.TUI {
		runLogger = logging.NewNopLogger()
	}
	if err := run(cfg, runLogger); err != nil {
		logger.Error("run failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	runStart := time.Now()

	registry := metrics.NewRegistry()
	recorder := metrics.NewPercolationRecorder(registry)

	if cfg.MetricsAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := registry.ServeUntil(ctx, cfg.MetricsAddr); err != nil {
				logger.Warn("metrics server stopped", logging.Error(err))
			}
		}()
	}

	var send func(tea.Msg)
	var wait func()
	if cfg.TUI {
		send, wait = progress.Run()
		defer func() {
			send(progress.DoneMsg{})
			wait()
		}()
	}

	f, err := os.Open(cfg.EdgeListPath)
	if err != nil {
		return errs.IoError("main.run", cfg.EdgeListPath, err)
	}
	defer f.Close()

	loaded, err := ingest.LoadEdgeList(f, cfg.StringIDs, logger)
	if err != nil {
		return err
	}
	logger.Info("graph loaded",
		logging.Duration("elapsed", time.Since(runStart)),
		logging.Int64("vertices", int64(loaded.Graph.NumVertices())),
		logging.Int64("edges", int64(loaded.Graph.NumEdges())),
		memStatsField(),
	)

	var cliqueList [][]int32
	cliqueSink := cliques.SinkFunc(func(c []int32) {
		recorder.IncCliquesEnumerated()
		cp := make([]int32, len(c))
		copy(cp, c)
		cliqueList = append(cliqueList, cp)
	})

	if send != nil {
		send(progress.StageMsg{Stage: "enumerating cliques", VerticesTotal: loaded.Graph.NumVertices()})
	}
	if err := cliques.Enumerate(loaded.Graph, cfg.MinCliqueSize, cliqueSink, logger, recorder); err != nil {
		return err
	}
	logger.Info("clique enumeration complete",
		logging.Duration("elapsed", time.Since(runStart)),
		logging.CliqueCount(len(cliqueList)),
	)
	if len(cliqueList) == 0 {
		return errs.NoCliques("main.run", cfg.MinCliqueSize)
	}

	seed := []byte(cfg.HashSeed)
	engine, err := percolation.NewEngine(cliqueList, cfg.MinCliqueSize, cfg.MaxK, cfg.FilterBits, seed, logger, recorder)
	if err != nil {
		return err
	}

	if send != nil {
		send(progress.StageMsg{Stage: "percolating communities", PercolationLevel: cfg.MinCliqueSize, MaxLevel: cfg.MaxK})
	}
	results, err := engine.Run()
	if err != nil {
		return err
	}
	logger.Info("percolation complete", logging.Duration("elapsed", time.Since(runStart)))

	if err := output.WriteAll(cfg.OutputDir, results, loaded.Index); err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		total += len(r.Communities)
	}
	logger.Info("run complete",
		logging.Duration("elapsed", time.Since(runStart)),
		logging.Int64("levels_written", int64(len(results))),
		logging.Int64("communities_total", int64(total)),
	)
	return nil
}

// memStatsField surfaces process memory usage on the graph-load log
// line, the Go equivalent of the original tool's /proc/self/status
// VmSize print.
func memStatsField() logging.Field {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return logging.Uint64("mem_sys_bytes", m.Sys)
}

func printBanner() {
	fmt.Println(`
  percolate - k-clique percolation community detection
`)
}
