package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/config"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/dashboard"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/metrics"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/sheet"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Long: `Serve the invoice dashboard over HTTP.

The workbook is read on the first request and cached until the file changes.
With --watch the cache is also dropped as soon as the file is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().Bool("watch", true, "watch the workbook for changes")

	_ = viper.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag(config.KeyServerWatch, cmd.Flags().Lookup("watch"))

	return cmd
}

func newLoader(cfg config.Config, opts ...sheet.LoaderOption) *sheet.Loader {
	return sheet.NewLoader(cfg.DataFile, sheet.Options{
		Sheet:     cfg.Sheet,
		Delimiter: cfg.Delimiter(),
	}, opts...)
}

func runServe(ctx context.Context, cfg config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	loader := newLoader(cfg, sheet.WithObserver(m))

	// The server starts anyway and shows the error page until the file is fixed.
	if _, err := loader.Table(); err != nil {
		common.LogInfo("Serving the error page until the workbook loads", common.Fields{"path": loader.Path()})
	}

	if cfg.Watch {
		if watcher := startWatcher(ctx, loader); watcher != nil {
			defer watcher.Stop()
		}
	}

	srv, err := dashboard.New(loader, dashboard.Options{
		Gatherer: reg,
		Requests: m,
		FileName: cfg.DataFileName(),
	})
	if err != nil {
		return err
	}

	return srv.Run(ctx, cfg.ServerAddr, cfg.ReadTimeout, cfg.ShutdownTimeout)
}

// startWatcher watches the workbook of loader. A watch that cannot start is
// logged and nil is returned; changes are then still picked up by the
// identity check on every request.
func startWatcher(ctx context.Context, loader *sheet.Loader) *sheet.Watcher {
	watcher, err := sheet.NewWatcher(loader.Path(), loader, sheet.DefaultDebounce)
	if err != nil {
		common.LogError(err, "Workbook watch disabled", common.Fields{"path": loader.Path()})
		return nil
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Stop()
		common.LogError(err, "Workbook watch disabled", common.Fields{"path": loader.Path()})
		return nil
	}
	return watcher
}
