package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roguegrid/sim/internal/config"
	"github.com/roguegrid/sim/internal/core/event"
	coresys "github.com/roguegrid/sim/internal/core/system"
	"github.com/roguegrid/sim/internal/data"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/metrics"
	"github.com/roguegrid/sim/internal/msglog"
	"github.com/roguegrid/sim/internal/path"
	"github.com/roguegrid/sim/internal/scripting"
	"github.com/roguegrid/sim/internal/system"
	"github.com/roguegrid/sim/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              roguesim  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      turn scheduler · chunked world       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mseed:\033[0m %d\n\n", seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation host ────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("ROGUESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
		cfg.World.Seed = time.Now().UnixNano()
		fmt.Fprintf(os.Stderr, "config %s not found, using defaults\n", cfgPath)
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.World.Seed)

	// 3. Metrics
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// 4. Data tables
	printSection("data")

	palette, err := loadTerrain(cfg.Data.Terrain, log)
	if err != nil {
		return err
	}
	printStat("terrain kinds", palette.Count())

	spawns, err := loadSpawns(cfg.Data.Spawns, log)
	if err != nil {
		return err
	}
	printStat("spawn entries", len(spawns))

	scripts, err := scripting.NewEngine(cfg.AI.ScriptDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	if scripts.HasFunc("idle_action") {
		printOK("idle_action script loaded")
	}
	fmt.Println()

	// 5. World and entities
	printSection("world")

	worldMap := world.New(world.Options{
		ChunkSize: cfg.World.ChunkSize,
		Seed:      cfg.World.Seed,
		Palette:   palette,
		Log:       log,
		Metrics:   collector,
	})
	store := entity.NewStore(cfg.World.TilePixelSize)
	for _, sp := range spawns {
		if _, err := store.Spawn(sp.Def()); err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
	}
	printStat("entities", store.World.Pool().Live())
	printStat("chunk size", int(cfg.World.ChunkSize))

	finder := &path.Finder{
		MaxExpansions: cfg.Pathfinding.MaxExpansions,
		Strict:        cfg.Pathfinding.Strict,
		Log:           log,
		Metrics:       collector,
	}
	deps := &system.Deps{
		Store:    store,
		Map:      worldMap,
		Messages: msglog.New(cfg.Scheduler.LogCapacity),
		Bus:      event.NewBus(),
		Metrics:  collector,
		Scripts:  scripts,
		Finder:   finder,
		Rand:     rand.New(rand.NewSource(cfg.World.Seed)),
		Log:      log,
		AI:       cfg.AI,
	}
	subscribeEvents(deps.Bus, log)

	// 6. Systems
	input := system.NewInputSystem(deps)
	runner := coresys.NewRunner()
	runner.Register(input)
	runner.Register(system.NewEventDispatchSystem(deps.Bus))
	runner.Register(system.NewTurnSystem(deps))
	runner.Register(system.NewDeathSystem(deps))
	runner.Register(system.NewStreamSystem(deps, cfg.World.FocusRadius))
	runner.Register(system.NewOutputSystem(deps.Messages, func(tick uint64, e msglog.Entry) {
		log.Info("message", zap.Uint64("tick", tick), zap.String("text", e.Plain()))
	}))
	runner.Register(system.NewCleanupSystem(store.World, log))
	printStat("systems", runner.Len())
	fmt.Println()

	// 7. Metrics endpoint
	metricsSrv := serveMetrics(cfg.Metrics.ListenAddress, collector, log)

	// 8. Run
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("ready")
	printReady(fmt.Sprintf("running %d ticks (interval %s)", cfg.Scheduler.Ticks, cfg.Scheduler.TickInterval))
	fmt.Println()

	pilot := newAutopilot(deps, input)
	err = loop(ctx, cfg.Scheduler, func() {
		pilot.step()
		runner.Tick()
	})

	log.Info("simulation stopped",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("entities", store.World.Pool().Live()),
		zap.Int("chunks", worldMap.ChunkCount()))

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return err
}

// loop calls tick cfg.Ticks times, paced by cfg.TickInterval when set,
// until ctx is cancelled.
func loop(ctx context.Context, cfg config.SchedulerConfig, tick func()) error {
	if cfg.TickInterval <= 0 {
		for i := 0; i < cfg.Ticks; i++ {
			if ctx.Err() != nil {
				return nil
			}
			tick()
		}
		return nil
	}

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()
	for i := 0; i < cfg.Ticks; {
		select {
		case <-ticker.C:
			tick()
			i++
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func loadTerrain(p string, log *zap.Logger) (*data.Palette, error) {
	palette, err := data.LoadTerrain(p)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("terrain file missing, using built-in palette", zap.String("path", p))
		return data.DefaultPalette(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load terrain: %w", err)
	}
	return palette, nil
}

func loadSpawns(p string, log *zap.Logger) ([]data.SpawnEntry, error) {
	spawns, err := data.LoadSpawnList(p)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("spawn list missing, using built-in scene", zap.String("path", p))
		return data.DefaultSpawns(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load spawn list: %w", err)
	}
	return spawns, nil
}

func subscribeEvents(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.Moved) {
		log.Debug("moved",
			zap.Uint64("entity", uint64(e.Entity)),
			zap.Stringer("from", e.From),
			zap.Stringer("to", e.To))
	})
	event.Subscribe(bus, func(e event.MoveBlocked) {
		log.Debug("move blocked",
			zap.Uint64("entity", uint64(e.Entity)),
			zap.Stringer("at", e.At),
			zap.Stringer("target", e.Target))
	})
	event.Subscribe(bus, func(e event.DamageTaken) {
		log.Info("damage",
			zap.Uint64("victim", uint64(e.Victim)),
			zap.Uint64("attacker", uint64(e.Attacker)),
			zap.Uint16("amount", e.Amount),
			zap.Uint16("health", e.Health))
	})
	event.Subscribe(bus, func(e event.ItemThrown) {
		log.Info("item thrown",
			zap.Uint64("thrower", uint64(e.Thrower)),
			zap.Uint64("target", uint64(e.Target)),
			zap.String("item", e.Item.Name))
	})
	event.Subscribe(bus, func(e event.EntityDied) {
		log.Info("entity died", zap.Uint64("entity", uint64(e.Entity)), zap.String("name", e.Name))
	})
}

func serveMetrics(addr string, collector *metrics.Collector, log *zap.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server exited", zap.Error(err))
		}
	}()

	log.Info("serving Prometheus metrics", zap.String("addr", addr))
	printReady(fmt.Sprintf("metrics on %s/metrics", addr))
	return srv
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
