package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/notecache"
	"github.com/aretw0/notecache/internal/config"
	"github.com/aretw0/notecache/internal/server"
)

var (
	verbose    bool
	configFile string

	// settings receives the flags bound below; config.Load layers env,
	// config file and defaults underneath them.
	settings = viper.New()
)

// rootCmd runs the HTTP server when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notecache",
	Short: "A small HTTP service storing text notes as files",
	Long: `notecache serves CRUD operations over text notes persisted as individual
files in a cache directory. Each file name is a note name; its content is the note text.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		slog.SetDefault(newLogger(level, settings.GetString("log.format")))
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(settings, configFile)
		if err != nil {
			fatal("Error", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger := newLogger(cfg.Log.Level, cfg.Log.Format)
		slog.SetDefault(logger)

		if err := os.MkdirAll(cfg.Cache, 0755); err != nil {
			fatal("Error creating cache directory", err)
		}

		service, err := notecache.New(cfg.Cache,
			notecache.WithReadOnly(cfg.ReadOnly),
			notecache.WithLogger(logger),
			notecache.WithWatcherErrorHandler(func(err error) {
				logger.Error("Store watcher error", "error", err)
			}),
		)
		if err != nil {
			fatal("Error initializing store", err)
		}

		opts := []server.Option{server.WithLogger(logger)}
		if cfg.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			opts = append(opts, server.WithMetrics(reg))
		}

		srv := server.New(server.Config{
			Host:            cfg.Host,
			Port:            cfg.Port,
			StoreDir:        cfg.Cache,
			MaxBodyBytes:    cfg.MaxBodyBytes,
			ShutdownTimeout: cfg.ShutdownTimeout,
			Watch:           cfg.Watch,
		}, service, opts...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			stop()
			fatal("Error running server", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func init() {
	// -h belongs to --host; help stays reachable as --help.
	rootCmd.Flags().StringP("host", "h", "", "server host")
	rootCmd.Flags().IntP("port", "p", 0, "server port")
	rootCmd.Flags().Bool("read-only", false, "Reject note creation, updates and deletion")
	rootCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	rootCmd.Flags().Bool("watch", false, "Log changes made to the cache directory by other processes")
	rootCmd.Flags().Int64("max-body-bytes", server.DefaultMaxBodyBytes, "Maximum request body size")
	rootCmd.Flags().Duration("shutdown-timeout", server.DefaultShutdownTimeout, "Graceful shutdown timeout")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML config file")

	rootCmd.PersistentFlags().StringP("cache", "c", "", "cache directory path")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	bind := map[string]string{
		"host":             "host",
		"port":             "port",
		"read_only":        "read-only",
		"metrics":          "metrics",
		"watch":            "watch",
		"max_body_bytes":   "max-body-bytes",
		"shutdown_timeout": "shutdown-timeout",
	}
	for key, flag := range bind {
		_ = settings.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
	_ = settings.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))
	_ = settings.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	settings.SetEnvPrefix(config.EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()
}
