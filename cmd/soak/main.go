// Command soak exercises a shared arena under sustained concurrent load and
// prints a JSON report of the arena's lifecycle counters.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"golang.org/x/time/rate"

	"github.com/coachpo/arena/arena"
	"github.com/coachpo/arena/config"
	"github.com/coachpo/arena/lib/async"
	"github.com/coachpo/arena/lib/telemetry"
	"github.com/coachpo/arena/sanitize"
)

const (
	defaultConfigPath        = "config/soak.yaml"
	soakLoggerPrefix         = "soak "
	statsLogInterval         = 2 * time.Second
	workerShutdownTimeout    = 10 * time.Second
	registryShutdownTimeout  = 5 * time.Second
	telemetryShutdownTimeout = 5 * time.Second
	takeEvery                = 64
)

type report struct {
	RunID     string      `json:"run_id"`
	Duration  string      `json:"duration"`
	Workers   int         `json:"workers"`
	Submitted int64       `json:"submitted"`
	Rejected  int64       `json:"rejected"`
	Stats     arena.Stats `json:"stats"`
}

func main() {
	cfgPath := flag.String("config", defaultConfigPath, "path to the soak configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, soakLoggerPrefix, log.LstdFlags|log.Lmsgprefix)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	logger.Printf("configuration initialised: workers=%d rate=%.0f duration=%s",
		cfg.Soak.Workers, cfg.Soak.Rate, cfg.Soak.Duration)

	_, telemetryShutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatalf("initialize telemetry: %v", err)
	}

	buffers := arena.New(
		arena.Named[*bytes.Buffer]("soak-buffers"),
		arena.Capacity[*bytes.Buffer](cfg.Soak.ArenaCapacity),
		arena.Sanitizer(sanitize.Buffer),
	)
	telemetry.ObserveArena(buffers.Name(), buffers.Stats)

	registry := arena.NewRegistry()
	if err := registry.Register(buffers); err != nil {
		logger.Fatalf("register arena: %v", err)
	}

	workers, err := async.NewPool(cfg.Soak.Workers, cfg.Soak.Queue)
	if err != nil {
		logger.Fatalf("initialise worker pool: %v", err)
	}

	runID := uuid.NewString()
	logger.Printf("run %s starting", runID)

	submitted, rejected := drive(ctx, logger, cfg.Soak, buffers, workers)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer shutdownCancel()
	if err := workers.Shutdown(shutdownCtx); err != nil {
		logger.Printf("worker pool shutdown: %v", err)
	}

	registryCtx, registryCancel := context.WithTimeout(context.Background(), registryShutdownTimeout)
	defer registryCancel()
	if err := registry.Shutdown(registryCtx); err != nil {
		logger.Printf("registry shutdown: %v", err)
	}

	telemetryCtx, telemetryCancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer telemetryCancel()
	if err := telemetryShutdown(telemetryCtx); err != nil {
		logger.Printf("telemetry shutdown: %v", err)
	}

	out := report{
		RunID:     runID,
		Duration:  cfg.Soak.Duration.String(),
		Workers:   cfg.Soak.Workers,
		Submitted: submitted,
		Rejected:  rejected,
		Stats:     buffers.Stats(),
	}
	if err := emit(os.Stdout, out); err != nil {
		logger.Fatalf("emit report: %v", err)
	}
}

// drive submits rate-limited acquire/mutate/release tasks until the
// configured duration elapses or the signal context is cancelled.
func drive(ctx context.Context, logger *log.Logger, cfg config.SoakConfig, buffers *arena.Arena[*bytes.Buffer], workers *async.Pool) (submitted, rejected int64) {
	payload := bytes.Repeat([]byte{'x'}, cfg.PayloadBytes)
	newBuffer := func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, cfg.PayloadBytes))
	}

	var ops atomic.Int64
	task := func(context.Context) error {
		lease := buffers.Get(newBuffer)
		buf := *lease.Value()
		buf.Write(payload)
		if ops.Add(1)%takeEvery == 0 {
			// Periodically pull a value out of the recycling cycle to keep
			// the initializer path warm.
			lease.Take()
			return nil
		}
		lease.Release()
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	done := make(chan struct{})
	var reporter conc.WaitGroup
	reporter.Go(func() {
		ticker := time.NewTicker(statsLogInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				stats := buffers.Stats()
				logger.Printf("stats: created=%d reused=%d discarded=%d live=%d idle=%d",
					stats.Created, stats.Reused, stats.Discarded, stats.Live, stats.Idle)
			}
		}
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)
	for {
		if err := limiter.Wait(runCtx); err != nil {
			break
		}
		if err := workers.Submit(runCtx, task); err != nil {
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.Canceled) {
				break
			}
			rejected++
			continue
		}
		submitted++
	}

	close(done)
	reporter.Wait()
	return submitted, rejected
}

func emit(w *os.File, out report) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
