/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/api"
	"github.com/StarCoreSE/DefinitionHelper/config"
	"github.com/StarCoreSE/DefinitionHelper/datastore/ddb"
	"github.com/StarCoreSE/DefinitionHelper/errors"
	"github.com/StarCoreSE/DefinitionHelper/journal"
	"github.com/StarCoreSE/DefinitionHelper/logging"
	"github.com/StarCoreSE/DefinitionHelper/models"
	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

type seedOptions struct {
	manifest string
	envFile  string
	metrics  string
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a manifest into a registry and print its contents",
		Long: `Load a YAML manifest into a fresh registry through the definition API and
print the registered ids per type as JSON.

When DEFHELPER_JOURNAL_ENABLED is set every change is also written to the
DynamoDB journal table.

Examples:
  # Seed from a manifest
  defhelper seed --manifest definitions.yaml

  # Read settings from a .env file and keep serving metrics
  defhelper seed -m definitions.yaml --env .env --metrics :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSeed(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "path to the YAML definition manifest")
	cmd.Flags().StringVar(&opts.envFile, "env", ".env", "optional .env file")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "serve /metrics on this address until interrupted")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, opts seedOptions) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.metrics != "" {
		cfg.Metrics.Addr = opts.metrics
	}

	logger, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	manifest, err := config.LoadManifest(opts.manifest)
	if err != nil {
		return err
	}

	promRegistry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(promRegistry)

	reg := definitionhelper.New(
		definitionhelper.WithLogger(logger),
		definitionhelper.WithMetrics(metrics),
	)

	var j *journal.Journal
	if cfg.Journal.Enabled {
		client, err := ddb.NewClient(ctx, cfg.ClientConfig())
		if err != nil {
			return err
		}
		j = newJournal(client, cfg, logger, metrics)
		j.Attach(reg, manifestKeys(manifest)...)
	}

	bus := api.NewLocalBus()
	sender := api.NewSender(bus, reg, logger,
		api.WithChannel(cfg.API.Channel),
		api.WithVersion(cfg.API.Version),
		api.WithMetrics(metrics),
	)
	sender.Load()

	client := api.NewClient(bus, cfg.API.Version,
		api.WithChannel(cfg.API.Channel),
		api.WithLogger(logger),
	)
	client.Load()

	defer func() {
		client.Unload()
		sender.Unload()
		if j != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := j.Close(closeCtx); err != nil {
				logger.Warn("Journal did not drain", zap.Error(err))
			}
		}
	}()

	if !client.Ready() {
		if err := client.Err(); err != nil {
			return err
		}
		return errors.ErrProviderUnavailable
	}

	if err := manifest.Apply(client.RegisterDefinition); err != nil {
		return err
	}

	listing, err := listDefinitions(reg, client)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(listing); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		return serveMetrics(ctx, cfg.Metrics.Addr, promRegistry, logger)
	}
	return nil
}

// newJournal builds a journal over the DynamoDB table. Retries happen in the
// journal only, and only for errors DynamoDB reports as transient.
func newJournal(client ddb.API, cfg *config.Config, logger *zap.Logger, metrics *monitoring.Metrics) *journal.Journal {
	store := ddb.NewJournalStore(client, cfg.Journal.Table, 0, cfg.Journal.Backoff)
	opts := append(cfg.JournalOptions(), models.WithRetryPolicy(ddb.IsRetryableError))
	return journal.New(store, logger, opts...).WithMetrics(metrics)
}

func manifestKeys(m *config.Manifest) []definitionhelper.TypeKey {
	var keys []definitionhelper.TypeKey
	for _, e := range m.Definitions {
		key := definitionhelper.NewTypeKey(e.Type)
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func listDefinitions(reg *definitionhelper.Registry, client *api.Client) (map[string][]string, error) {
	listing := make(map[string][]string)
	for _, key := range reg.Types() {
		ids, err := client.GetDefinitionsOfType(key)
		if err != nil {
			return nil, err
		}
		slices.Sort(ids)
		listing[key.Name] = ids
	}
	return listing, nil
}

func serveMetrics(ctx context.Context, addr string, g prometheus.Gatherer, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
