package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbnomics/widukind-sdmx/internal/config"
	"github.com/dbnomics/widukind-sdmx/internal/logger"
	"github.com/dbnomics/widukind-sdmx/internal/storage"
	"github.com/dbnomics/widukind-sdmx/pkg/httpclient"
	"github.com/dbnomics/widukind-sdmx/pkg/sdmx"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sdmxfetch failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		agency   = flag.String("agency", "", "agency id (defaults to the configured agency)")
		resource = flag.String("resource", "dataflow", "resource type (data, dataflow, datastructure, ...)")
		id       = flag.String("id", "", "resource id")
		key      = flag.String("key", "", "dot-joined series key, e.g. A.00.INDICE")
		out      = flag.String("out", "", "write the raw body to this file instead of stdout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []sdmx.Option{
		sdmx.WithBaseURL(cfg.APIURL),
		sdmx.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)),
		sdmx.WithLogger(log),
	}

	if cfg.AgenciesFile != "" {
		registry, err := sdmx.LoadRegistry(cfg.AgenciesFile)
		if err != nil {
			return fmt.Errorf("load agencies: %w", err)
		}
		opts = append(opts, sdmx.WithRegistry(registry))
	}

	store, err := storage.NewStore(cfg.CacheType, cfg.CachePath, storage.Options{
		ResponseTTL:     cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer store.Close()
	opts = append(opts, sdmx.WithCache(store))

	agencyID := cfg.Agency
	if *agency != "" {
		agencyID = *agency
	}

	client, err := sdmx.New(agencyID, opts...)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	req := sdmx.Request{
		Resource: sdmx.ResourceType(*resource),
		ID:       *id,
		ToFile:   *out,
	}
	if *key != "" {
		req.Key = sdmx.KeyFromString(*key)
	}

	resp, err := client.Get(ctx, req)
	if err != nil {
		return err
	}

	log.Infow("response received", "url", resp.URL, "status", resp.StatusCode, "bytes", len(resp.Body))
	if *out == "" {
		if _, err := os.Stdout.Write(resp.Body); err != nil {
			return fmt.Errorf("write body: %w", err)
		}
	}
	return nil
}
