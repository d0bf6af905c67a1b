// MouseHook - global low-level mouse hook relay
// Installs a process-wide mouse hook and republishes events to local observers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mousehook/internal/config"
	"mousehook/internal/hook"
	"mousehook/internal/relay"
	"mousehook/internal/tray"
)

var (
	version    = "0.1.0"
	configPath = flag.String("config", "", "Path to config file (default: per-user config dir)")
	logEvents  = flag.Bool("log-events", false, "Log every mouse event")
	relayPort  = flag.Int("relay", 0, "Serve events over WebSocket on this loopback port")
	noTray     = flag.Bool("no-tray", false, "Run without the system tray icon")
	showVer    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("mousehook version %s\n", version)
		return
	}

	cfgMgr, err := newConfigManager()
	if err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load config: %v", err)
	}

	if err := run(applyFlags(cfgMgr.Get())); err != nil {
		log.Fatalf("MouseHook: %v", err)
	}
}

func newConfigManager() (*config.Manager, error) {
	if *configPath != "" {
		return config.NewManagerAt(*configPath), nil
	}
	return config.NewManager()
}

// applyFlags overlays command-line flags on the loaded config
func applyFlags(cfg config.Config) config.Config {
	if *logEvents {
		cfg.LogEvents = true
	}
	if *relayPort != 0 {
		cfg.Relay.Enabled = true
		cfg.Relay.Port = *relayPort
	}
	if *noTray {
		cfg.TrayEnabled = false
	}
	return cfg
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := hook.NewManager()
	defer func() {
		if err := mgr.Stop(); err != nil {
			log.Printf("MouseHook: stop failed: %v", err)
		}
	}()

	if cfg.LogEvents {
		mgr.Subscribe(logEvent)
	}

	if cfg.Relay.Enabled {
		hub := relay.NewHub(version, cfg.Relay.QueueSize)
		go hub.Run(ctx)
		unsubscribe := mgr.Subscribe(hub.Listener())
		defer unsubscribe()

		server := relay.NewServer(cfg.Relay.Port, hub)
		go func() {
			if err := server.Start(); err != nil {
				log.Printf("Relay: server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			server.Shutdown(shutdownCtx)
		}()
	}

	if err := mgr.Initialize(); err != nil {
		return fmt.Errorf("install mouse hook: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if cfg.TrayEnabled {
		t := tray.New("MouseHook - global mouse hook", mgr, cancel)
		go func() {
			<-sigCh
			log.Println("Shutting down...")
			t.Stop()
		}()
		log.Println("MouseHook running. Use the tray icon or Ctrl+C to stop.")
		t.Run()
		return nil
	}

	log.Println("MouseHook running. Press Ctrl+C to stop.")
	<-sigCh
	log.Println("Shutting down...")
	return nil
}

func logEvent(ev hook.MouseEvent) {
	switch ev.Kind() {
	case hook.KindButtonDown, hook.KindButtonUp:
		log.Printf("Event: %s button=%d at (%d, %d)", ev.Kind(), ev.Button(), ev.X, ev.Y)
	case hook.KindWheel, hook.KindHWheel:
		log.Printf("Event: %s delta=%d at (%d, %d)", ev.Kind(), ev.WheelDelta(), ev.X, ev.Y)
	default:
		log.Printf("Event: %s at (%d, %d)", ev.Kind(), ev.X, ev.Y)
	}
}
