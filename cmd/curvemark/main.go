package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/curvemark"
	"github.com/bft-labs/curvemark/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/curvemark/internal/adapters/http"
	"github.com/bft-labs/curvemark/internal/adapters/metrics"
	"github.com/bft-labs/curvemark/internal/adapters/natsbus"
	"github.com/bft-labs/curvemark/internal/adapters/plotpng"
	"github.com/bft-labs/curvemark/internal/cliconfig"
	"github.com/bft-labs/curvemark/pkg/log"
)

const helpDescription = `
Flag the points of a planned path where it turns tighter than a vehicle can
follow, and publish visual markers for them.

Every incoming path replaces the previous markers: a delete-all directive is
published first, then one sphere (and optionally one label) per point whose
curvature exceeds the threshold.

Paths arrive on a NATS subject or as JSON files dropped into a directory.
Markers go to NATS and, optionally, an HTTP webhook, a JSON snapshot file
and a PNG plot.
`

var exampleUsage = strings.TrimSpace(`
  curvemark --nats-url nats://127.0.0.1:4222 --threshold 0.3
  curvemark --source dir --inbox-dir ./paths --plot-file ./markers.png
  curvemark analyze path.json --show-radius=false
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	root, cfg := newRootCmd()
	if err := root.Execute(); err != nil {
		l := cliconfig.Logger(cfg.LogLevel)
		l.Error().Err(err).Msg("curvemark")
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *cliconfig.Config) {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "curvemark",
		Short:         "Flag high-curvature points on planned paths",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.curvemark/config.toml)")

	flags.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "curvature above which a point is flagged (1/m)")
	flags.BoolVar(&cfg.ShowLabels, "show-labels", cfg.ShowLabels, "add a text label to every flagged point")
	flags.BoolVar(&cfg.ShowRadius, "show-radius", cfg.ShowRadius, "label with turning radius instead of curvature")
	flags.StringVar(&cfg.FrameID, "frame-id", cfg.FrameID, "frame id stamped on markers")
	flags.Float64SliceVar(&cfg.SphereColor, "sphere-color", cfg.SphereColor, "sphere color r,g,b,a in [0,1]")
	flags.Float64SliceVar(&cfg.TextColor, "text-color", cfg.TextColor, "label color r,g,b,a in [0,1]")
	flags.Float64Var(&cfg.SphereSize, "sphere-size", cfg.SphereSize, "sphere diameter")
	flags.Float64Var(&cfg.TextSize, "text-size", cfg.TextSize, "label text height")
	flags.Float64SliceVar(&cfg.TextOffset, "text-offset", cfg.TextOffset, "label offset x,y,z from its sphere (default depends on --show-radius)")

	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	serveFlags := root.Flags()
	serveFlags.StringVar(&cfg.Source, "source", cfg.Source, "path source: nats or dir")
	serveFlags.StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS server URL")
	serveFlags.StringVar(&cfg.PathSubject, "path-subject", cfg.PathSubject, "NATS subject carrying paths")
	serveFlags.StringVar(&cfg.MarkerSubject, "marker-subject", cfg.MarkerSubject, "NATS subject for marker batches")
	serveFlags.StringVar(&cfg.InboxDir, "inbox-dir", cfg.InboxDir, "directory watched for *.json paths (source=dir)")
	serveFlags.StringVar(&cfg.HTTPURL, "http-url", cfg.HTTPURL, "webhook receiving every marker batch (optional)")
	serveFlags.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "webhook request timeout")
	serveFlags.StringVar(&cfg.SnapshotFile, "snapshot-file", cfg.SnapshotFile, "JSON file mirroring the markers on display (optional)")
	serveFlags.StringVar(&cfg.PlotFile, "plot-file", cfg.PlotFile, "PNG file rendering the markers on display (optional)")
	serveFlags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the Prometheus /metrics endpoint (optional)")
	serveFlags.BoolVar(&cfg.Once, "once", cfg.Once, "process one path and exit")

	root.AddCommand(newAnalyzeCmd(&cfg, &cfgPath))
	return root, &cfg
}

// resolveConfig layers file and environment settings under the flags.
// Callers validate the parts they use.
func resolveConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s not found", cfgPath)
	}

	// Apply environment variables (CURVEMARK_*)
	// These override file config but are overridden by flags (checked via changed map)
	return cliconfig.ApplyEnvConfig(cfg, changed)
}

func serve(cfg cliconfig.Config) error {
	zl := cliconfig.Logger(cfg.LogLevel)
	zl.Info().Interface("config", cfg).Msg("configuration")
	logger := log.FromZerolog(zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []curvemark.Option{curvemark.WithLogger(logger)}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, curvemark.WithRecorder(metrics.NewRecorder(reg)))

		srv := startMetricsServer(cfg.MetricsAddr, reg, zl)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// NATS is needed for the nats source and for marker publishing.
	if cfg.Source == cliconfig.SourceNATS || cfg.PublishesToNATS() {
		nc, err := natsbus.Connect(cfg.NATSURL, logger)
		if err != nil {
			return err
		}
		defer nc.Drain()

		if cfg.Source == cliconfig.SourceNATS {
			sub, err := natsbus.NewPathSubscriber(nc, cfg.PathSubject, logger)
			if err != nil {
				return err
			}
			opts = append(opts, curvemark.WithSource(sub))
		}
		if cfg.PublishesToNATS() {
			opts = append(opts, curvemark.WithPublisher(natsbus.NewMarkerPublisher(nc, cfg.MarkerSubject)))
		}
	}

	if cfg.Source == cliconfig.SourceDir {
		inbox, err := fs.NewInbox(cfg.InboxDir, fs.DefaultDebounce, logger)
		if err != nil {
			return err
		}
		opts = append(opts, curvemark.WithSource(inbox))
	}

	if cfg.HTTPURL != "" {
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		opts = append(opts, curvemark.WithPublisher(httpAdapter.NewWebhookPublisher(client, cfg.HTTPURL)))
	}
	if cfg.SnapshotFile != "" {
		opts = append(opts, curvemark.WithPublisher(fs.NewSnapshotFile(cfg.SnapshotFile)))
	}
	if cfg.PlotFile != "" {
		opts = append(opts, curvemark.WithPublisher(plotpng.NewRenderer(cfg.PlotFile)))
	}

	libCfg := curvemark.DefaultConfig()
	libCfg.Marker = cfg.MarkerConfig()
	libCfg.Once = cfg.Once

	err := curvemark.Run(ctx, libCfg, opts...)
	if ctx.Err() != nil {
		zl.Info().Msg("received signal, stopped")
	}
	return err
}

func startMetricsServer(addr string, reg *prometheus.Registry, zl zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error().Err(err).Str("addr", addr).Msg("metrics server")
		}
	}()
	zl.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
