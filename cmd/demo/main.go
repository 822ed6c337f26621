// Command demo drives a traffic light table on a realtime loop: a timer feeds
// TIMER events, hooks run on the main goroutine, every transition is logged and
// persisted, and the final table is printed as Graphviz DOT.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/internal/extensibility"
	"github.com/comalice/fsmx/internal/logger"
	"github.com/comalice/fsmx/internal/primitives"
	"github.com/comalice/fsmx/internal/production"
	"github.com/comalice/fsmx/realtime"
)

//go:embed traffic.yaml
var trafficYAML []byte

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}
}

func loadTable(path string) (primitives.MachineConfig, error) {
	if path == "" {
		return primitives.LoadYAML(bytes.NewReader(trafficYAML))
	}
	return primitives.LoadFile(path)
}

// actionsFor binds show.<state> for every state plus warn.
func actionsFor(table primitives.MachineConfig, log *zap.Logger) primitives.ActionMap {
	actions := primitives.ActionMap{
		"warn": func() { log.Warn("emergency: forcing red") },
	}
	for _, s := range table.States() {
		actions["show."+s] = func() { fmt.Printf("light is %s\n", s) }
	}
	return actions
}

func run(cfg config, log *zap.Logger) error {
	table, err := loadTable(cfg.Table)
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}

	persister, err := production.NewJSONPersister(cfg.SnapshotDir)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := fsmx.NewMetrics(reg)

	records := make(chan fsmx.Record, 64)
	channelPub := production.NewChannelPublisher(records)
	publisher := production.MultiPublisher{production.NewLoggingPublisher(log), channelPub}

	loop := realtime.NewLoop(realtime.Config{TickRate: 16 * time.Millisecond}, realtime.WithLogger(log))

	id := fmt.Sprintf("%s-%s", table.ID, uuid.NewString()[:8])
	m, err := primitives.Build(table, actionsFor(table, log),
		fsmx.WithID(id),
		fsmx.WithLogger(log),
		fsmx.WithMetrics(metrics),
		fsmx.WithPublisher(publisher),
		fsmx.WithEffects(loop),
	)
	if err != nil {
		return fmt.Errorf("build machine: %w", err)
	}
	log.Info("machine ready",
		zap.String("machine", id),
		zap.String("initial", table.Initial),
		zap.Int("transitions", len(table.Transitions)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		successes := 0
		for rec := range records {
			if rec.Result != fsmx.Success {
				continue
			}
			if err := persister.Save(context.Background(), m.Snapshot()); err != nil {
				log.Warn("save snapshot", zap.Error(err))
			}
			if successes++; successes == cfg.Cycles {
				cancel()
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	timer := extensibility.NewTimerEventSource("TIMER", cfg.Interval)
	defer timer.Stop()
	g.Go(func() error {
		err := extensibility.Feed[string](gctx, m, timer)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// Hooks and completions run here until the context ends.
	_ = loop.Run(gctx)

	cancel()
	groupErr := g.Wait()

	_ = m.Close()
	loop.Drain()
	_ = channelPub.Close()
	<-consumed

	final := m.Snapshot()
	if err := persister.Save(context.Background(), final); err != nil {
		return err
	}
	dot := (&production.DefaultVisualizer{}).ExportDOT(final)
	dotPath := filepath.Join(cfg.SnapshotDir, id+".dot")
	if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dotPath, err)
	}
	fmt.Print(dot)

	log.Info("demo finished",
		zap.String("state", final.Current),
		zap.String("snapshot_dir", cfg.SnapshotDir),
		zap.Uint64("dropped_records", channelPub.Dropped()),
	)
	return groupErr
}
