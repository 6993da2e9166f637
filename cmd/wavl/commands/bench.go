// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jba/wavl"
	"github.com/jba/wavl/internal/config"
	"github.com/jba/wavl/internal/metrics"
	"github.com/jba/wavl/internal/workload"
)

const (
	benchCmdUse     = "bench"
	benchCmdShort   = "Insert and then delete a generated key sequence, counting rebalancing steps"
	sizeFlag        = "size"
	patternFlag     = "pattern"
	seedFlag        = "seed"
	metricsAddrFlag = "metrics-addr"
	shutdownTimeout = 5 * time.Second
)

// NewBenchCommand creates the bench subcommand.
func NewBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   benchCmdUse,
		Short: benchCmdShort,
		Long: `Bench inserts the keys 0..size-1 into an empty tree in the given
pattern, then deletes them in the same order. It reports the total and
amortized rebalancing steps of each operation kind.

With --metrics-addr, the metrics stay available for scraping at
/metrics until the command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cmd, cfg, log)
		},
	}

	cmd.Flags().Int(sizeFlag, config.DefaultBenchSize, "number of keys")
	cmd.Flags().String(patternFlag, config.DefaultBenchPattern, "key order: sequential, reverse or random")
	cmd.Flags().Uint64(seedFlag, config.DefaultBenchSeed, "seed for the random pattern")
	cmd.Flags().String(metricsAddrFlag, "", "serve Prometheus metrics on this address")
	config.BindFlag(cmd.Flags(), sizeFlag, "bench.size")
	config.BindFlag(cmd.Flags(), patternFlag, "bench.pattern")
	config.BindFlag(cmd.Flags(), seedFlag, "bench.seed")
	config.BindFlag(cmd.Flags(), metricsAddrFlag, "metrics.addr")

	return cmd
}

func runBench(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log zerolog.Logger) error {
	keys, err := workload.Keys(workload.Pattern(cfg.Bench.Pattern), cfg.Bench.Size, cfg.Bench.Seed)
	if err != nil {
		return err
	}
	rec := metrics.NewRecorder()

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		srv, err = serveMetrics(cfg.Metrics.Addr, rec, log)
		if err != nil {
			return err
		}
	}

	log.Info().
		Str("pattern", cfg.Bench.Pattern).
		Str("size", humanize.Comma(int64(len(keys)))).
		Msg("inserting")
	tree := wavl.New[int]()
	rate := map[string]float64{}
	start := time.Now()
	for _, k := range keys {
		steps, err := tree.Insert(k, k)
		rec.Observe(workload.OpInsert, steps, err, tree.Len())
	}
	rate[workload.OpInsert] = perSecond(len(keys), time.Since(start))
	if root, ok := tree.Root(); ok {
		log.Info().Int("rank", root.Rank()).Msg("built")
	}

	log.Info().Msg("deleting")
	start = time.Now()
	for _, k := range keys {
		steps, err := tree.Delete(k)
		rec.Observe(workload.OpDelete, steps, err, tree.Len())
	}
	rate[workload.OpDelete] = perSecond(len(keys), time.Since(start))

	sums, err := rec.Summary()
	if err != nil {
		return err
	}
	renderSummary(cmd.OutOrStdout(), sums, rate)

	if srv == nil {
		return nil
	}
	log.Info().Str("addr", cfg.Metrics.Addr).Msg("serving metrics until interrupted")
	<-ctx.Done()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	log.Info().Msg("metrics server stopped")
	return nil
}

// serveMetrics starts serving rec at addr in the background.
func serveMetrics(addr string, rec *metrics.Recorder, log zerolog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("metrics server started")
	return srv, nil
}

func perSecond(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
