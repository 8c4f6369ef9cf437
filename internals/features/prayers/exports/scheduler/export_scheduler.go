package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	exportService "jadwalsholat_backend/internals/features/prayers/exports/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher sumber data yang bisa dimuat ulang (RemoteRepository).
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Job struct {
	Exporter  *exportService.Exporter
	Refresher Refresher // opsional
	Log       *zap.Logger

	running atomic.Bool
}

// RunOnce refresh (kalau ada) lalu export. Run yang masih jalan tidak
// ditumpuk: pemicu berikutnya dilewati.
func (j *Job) RunOnce(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		j.Log.Warn("[EXPORT] run sebelumnya belum selesai, lewati")
		return nil
	}
	defer j.running.Store(false)

	if j.Refresher != nil {
		if err := j.Refresher.Refresh(ctx); err != nil {
			// dataset lama tetap dipakai
			j.Log.Warn("[EXPORT] refresh gagal, pakai dataset terakhir", zap.Error(err))
		}
	}
	m, err := j.Exporter.Run(ctx)
	if err != nil {
		j.Log.Error("[EXPORT ERROR] gagal export", zap.Error(err))
		return err
	}
	j.Log.Info("[EXPORT] selesai", zap.Int("files", len(m.Files)))
	return nil
}

// StartExportScheduler jalankan Job sesuai spec cron ("@every 6h",
// "0 */6 * * *") sampai ctx selesai. Channel hasil ditutup setelah cron
// berhenti dan job yang sedang jalan rampung; baru setelah itu koneksi
// backend boleh ditutup.
func StartExportScheduler(ctx context.Context, spec string, job *Job) (<-chan struct{}, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { _ = job.RunOnce(ctx) }); err != nil {
		return nil, fmt.Errorf("cron spec %q: %w", spec, err)
	}
	c.Start()
	job.Log.Info("[EXPORT] scheduler aktif", zap.String("spec", spec))

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		<-c.Stop().Done()
		job.Log.Info("[EXPORT] scheduler berhenti")
	}()
	return stopped, nil
}
