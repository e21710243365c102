package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paymanai/payman-docs-mcp/pkg/config"
	"github.com/paymanai/payman-docs-mcp/pkg/docs"
	"github.com/paymanai/payman-docs-mcp/pkg/server"
)

// Information to find out exactly which commit the server was built from.
// These are filled at build time with the -X linker flag.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  = flag.String("config", "", "Path to the configuration file (YAML)")
	addr        = flag.String("addr", "", "Address to listen on (enables HTTP mode, e.g. localhost:8080)")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("payman-docs-mcp %s (tag %s, commit %s, built %s)\n", config.Version, Tag, Commit, BuildTime)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.Logging.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Stringer("signal", sig).Msg("Shutting down")
		cancel()
	}()

	cache := docs.NewCache(time.Duration(cfg.Cache.TTLSecs) * time.Second)
	fetcher := docs.NewFetcher(docs.FetcherOpts{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.Fetch.UserAgent,
		MaxChars:  cfg.Fetch.MaxChars,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		Cache:     cache,
		Log:       log.With().Str("component", "fetcher").Logger(),
	})
	service := docs.NewService(fetcher, log.With().Str("component", "docs").Logger())
	srv := server.New(*cfg, service, *log, config.Version)

	if cfg.Refresh.IsEnabled() || cfg.Refresh.PrewarmOnStart() {
		refresher := server.NewRefreshService(service, log.With().Str("component", "refresh").Logger(), cfg.Refresh.Schedule)
		if cfg.Refresh.PrewarmOnStart() {
			go refresher.RunOnce(ctx)
		}
		if cfg.Refresh.IsEnabled() {
			if err := refresher.Start(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to start refresh schedule")
			}
			defer refresher.Stop()
		}
	}

	if *addr != "" {
		if err := srv.ListenAndServe(ctx, *addr); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
