package cmd

import (
	"context"
	"os/signal"
	"syscall"

	exportScheduler "jadwalsholat_backend/internals/features/prayers/exports/scheduler"
	exportService "jadwalsholat_backend/internals/features/prayers/exports/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportFlags struct {
	out      string
	daily    bool
	useOSS   bool
	schedule string
}

func newExportCmd(rt *runtime) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Prerender API JSON statis (provinsi, kota, jadwal bulanan) + manifest.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rt, f)
		},
	}
	cmd.Flags().StringVar(&f.out, "out", "", "direktori output (default EXPORT_DIR)")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "tulis juga file per tanggal (default EXPORT_DAILY)")
	cmd.Flags().BoolVar(&f.useOSS, "oss", false, "upload ke Aliyun OSS alih-alih direktori lokal")
	cmd.Flags().StringVar(&f.schedule, "schedule", "", `ulang terus sesuai cron spec, mis. "@every 6h"`)
	return cmd
}

func runExport(cmd *cobra.Command, rt *runtime, f *exportFlags) error {
	cfg, log := rt.cfg, rt.log
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	var sink exportService.Sink
	var publicURL func(string) string
	if f.useOSS {
		ossSink, err := exportService.NewOSSSink(cfg, log)
		if err != nil {
			return err
		}
		sink, publicURL = ossSink, ossSink.PublicURL
	} else {
		dir := cfg.ExportDir
		if f.out != "" {
			dir = f.out
		}
		sink = exportService.NewDirSink(dir)
	}

	exporter := exportService.NewExporter(newPrayerService(b, cfg, log), sink, exportService.Options{
		BasePath:    cfg.ExportBasePath,
		Concurrency: cfg.ExportConcurrency,
		Daily:       f.daily || cfg.ExportDaily,
		Logger:      log,
	})

	job := &exportScheduler.Job{Exporter: exporter, Log: log}
	if b.remote != nil {
		job.Refresher = b.remote
	}

	if f.schedule == "" {
		m, err := exporter.Run(ctx)
		if err != nil {
			return err
		}
		if publicURL != nil {
			log.Info("manifest", zap.String("url", publicURL(exportService.ManifestKey)))
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"sink":  sink.Name(),
			"files": len(m.Files),
		})
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// jalan sekali dulu, lalu sesuai jadwal
	if err := job.RunOnce(ctx); err != nil {
		log.Warn("export awal gagal, tunggu jadwal berikutnya", zap.Error(err))
	}
	stopped, err := exportScheduler.StartExportScheduler(ctx, f.schedule, job)
	if err != nil {
		return err
	}
	// tunggu job terakhir selesai sebelum b.Close()
	<-stopped
	return nil
}
