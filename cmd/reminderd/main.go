package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/kerolus77/reminder-app/internal/circuitbreaker"
	"github.com/kerolus77/reminder-app/internal/config"
	"github.com/kerolus77/reminder-app/internal/dispatcher"
	"github.com/kerolus77/reminder-app/internal/domain"
	"github.com/kerolus77/reminder-app/internal/metrics"
	"github.com/kerolus77/reminder-app/internal/persist"
	"github.com/kerolus77/reminder-app/internal/platform"
	"github.com/kerolus77/reminder-app/internal/sound"
	"github.com/kerolus77/reminder-app/internal/store"
	"github.com/kerolus77/reminder-app/internal/supervisor"
	"github.com/kerolus77/reminder-app/internal/transport/queue"
	"github.com/kerolus77/reminder-app/internal/ui"
)

// Build-time variables set via -ldflags
var (
	version = "dev"
	commit  = "unknown"
)

const (
	exitSuccess       = 0
	exitRuntimeError  = 1
	exitInvalidConfig = 2
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runApp())
	}

	cmd := os.Args[1]

	switch cmd {
	case "run":
		os.Exit(runApp())
	case "validate":
		os.Exit(runValidate())
	case "config":
		os.Exit(runConfig())
	case "version":
		os.Exit(runVersion())
	case "--help", "-h", "help":
		printUsage()
		os.Exit(exitSuccess)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(exitRuntimeError)
	}
}

func printUsage() {
	fmt.Println(`reminderd - desktop reminder scheduler

Usage:
  reminderd [command]

Commands:
  run        Start the reminder app (default when no command is given)
  validate   Validate configuration
  config     Print effective configuration as JSON
  version    Print version information

Environment Variables:
  REMINDERS_FILE            Path to the reminders JSON file (default: "reminders.json")
  POLL_INTERVAL             Monitor poll interval (default: "1s")
  QUEUE_POP_TIMEOUT         Dispatcher queue wait per cycle (default: "1s")
  DISPATCHER_DRAIN_TIMEOUT  Notification drain timeout on shutdown (default: "5s")
  SHUTDOWN_TIMEOUT          Monitor shutdown wait (default: "5s")
  ALERT_DISMISS_AFTER       Alert auto-dismiss delay, "0" to disable (default: "5s")

  SOUND_ENABLED             Play a sound with each alert (default: "true")
  SOUND_FILE                Sound file to play (default: "notification_sound.wav")

  METRICS_ENABLED           Enable Prometheus metrics (default: "false")
  METRICS_ADDR              Metrics server address (default: "127.0.0.1:9090")
  METRICS_PATH              Metrics endpoint path (default: "/metrics")`)
}

func runApp() int {
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitInvalidConfig
	}

	lock, err := platform.AcquireInstanceLock("reminderd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "reminderd is already running\n")
		return exitRuntimeError
	}
	defer lock.Release()

	// Initialize metrics sink (optional)
	var sink metrics.Sink = &metrics.NoopSink{}
	var metricsServer *http.Server

	if cfg.MetricsEnabled {
		sink = metrics.NewPrometheusSink(prometheus.DefaultRegisterer)
		log.Printf("reminderd: metrics enabled (addr=%s, path=%s)", cfg.MetricsAddr, cfg.MetricsPath)

		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.MetricsPath, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: metricsMux,
		}
		go func() {
			log.Printf("reminderd: metrics server listening on %s", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("reminderd: metrics server error: %v", err)
			}
		}()
	} else {
		log.Println("reminderd: metrics disabled")
	}

	// The reminder store fans out each successful mutation to the
	// persistence writer and to the list view. Both targets are assigned
	// before any mutation happens.
	var (
		writer  *persist.Writer
		mainWin *ui.MainWindow
	)
	st := store.New(store.WithOnChange(func() {
		if writer != nil {
			writer.Request()
		}
		if mainWin != nil {
			mainWin.Refresh()
		}
	}))

	fileStore := persist.NewFileStore(afero.NewOsFs(), cfg.RemindersFile)
	writer = persist.NewWriter(fileStore, st).WithMetrics(sink)

	q := queue.New(queue.WithMetrics(sink))

	sup := supervisor.New(st, q, supervisor.Config{
		PollInterval:    cfg.PollInterval,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}).WithMetrics(sink)

	fyneApp := fyneapp.New()
	mainWin = ui.NewMainWindow(fyneApp, sup, st, time.Now)
	writer = writer.WithOnError(mainWin.WarnSaveFailure)

	alert := ui.NewAlert(fyneApp, cfg.AlertDismissAfter)
	disp := dispatcher.New(q, alert, dispatcher.Config{
		PopTimeout:   cfg.QueuePopTimeout,
		DrainTimeout: cfg.DispatcherDrainTimeout,
	}).WithMetrics(sink)
	if cfg.SoundEnabled {
		player := sound.NewPlayer(cfg.SoundFile).
			WithBreaker(circuitbreaker.New(3, time.Minute))
		disp = disp.WithSound(player)
	} else {
		log.Println("reminderd: alert sound disabled")
	}

	records := loadReminders(fileStore)
	sup.Load(records)
	log.Printf("reminderd: loaded %d reminders from %s", len(records), cfg.RemindersFile)

	// Separate contexts for the dispatcher and the writer enable ordered
	// shutdown after the UI loop exits.
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	writerCtx, cancelWriter := context.WithCancel(context.Background())

	var dispatcherWg sync.WaitGroup
	var writerWg sync.WaitGroup

	dispatcherWg.Add(1)
	go func() {
		defer dispatcherWg.Done()
		disp.Run(dispatcherCtx)
	}()

	writerWg.Add(1)
	go func() {
		defer writerWg.Done()
		writer.Run(writerCtx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		received := <-sig
		log.Printf("reminderd: received signal %v, shutting down", received)
		fyne.Do(fyneApp.Quit)
	}()

	log.Printf("reminderd: started (poll=%s, file=%s)", cfg.PollInterval, cfg.RemindersFile)

	// Blocks until the main window is closed or the app quits.
	mainWin.Window().ShowAndRun()

	// Phase 1: Stop the supervisor (no new notifications enqueued)
	log.Println("reminderd: stopping supervisor...")
	sup.Shutdown()
	log.Println("reminderd: supervisor stopped")

	// Phase 2: Stop the dispatcher (drains buffered notifications)
	log.Println("reminderd: stopping dispatcher (draining notifications)...")
	cancelDispatcher()
	dispatcherWg.Wait()
	log.Println("reminderd: dispatcher stopped")

	// Phase 3: Stop the writer (performs a final save)
	log.Println("reminderd: stopping writer...")
	cancelWriter()
	writerWg.Wait()
	log.Println("reminderd: writer stopped")

	// Phase 4: Stop metrics server if running
	if metricsServer != nil {
		log.Println("reminderd: stopping metrics server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("reminderd: metrics server shutdown error: %v", err)
		}
		log.Println("reminderd: metrics server stopped")
	}

	log.Println("reminderd: stopped")
	return exitSuccess
}

// loadReminders reads the persisted set. Loading is best effort: an
// unreadable or corrupt file is logged and the app starts fresh rather
// than refusing to run. The next save replaces the broken file.
func loadReminders(fileStore *persist.FileStore) []domain.Reminder {
	records, err := fileStore.LoadAll()
	if err != nil {
		log.Printf("reminderd: failed to load reminders, starting fresh: %v", err)
		return nil
	}
	return records
}

func runValidate() int {
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitInvalidConfig
	}

	fmt.Println("configuration valid")
	return exitSuccess
}

func runConfig() int {
	cfg := config.Load()

	data, err := cfg.JSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal config: %v\n", err)
		return exitRuntimeError
	}

	fmt.Println(string(data))
	return exitSuccess
}

func runVersion() int {
	fmt.Printf("reminderd version %s (commit: %s)\n", version, commit)
	return exitSuccess
}
