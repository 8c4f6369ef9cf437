package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jadwalsholat_backend/internals/features/prayers/exports/service"
	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	scheduleService "jadwalsholat_backend/internals/features/prayers/schedules/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

func emptyExporter(t *testing.T) *service.Exporter {
	ds, err := scheduleService.NewDataset([]dto.CityData{})
	require.NoError(t, err)
	return service.NewExporter(scheduleService.NewPrayerService(ds), service.NewDirSink(t.TempDir()), service.Options{})
}

func TestRunOnceRefreshesThenExports(t *testing.T) {
	ref := &countingRefresher{err: errors.New("upstream down")}
	job := &Job{Exporter: emptyExporter(t), Refresher: ref, Log: zap.NewNop()}

	// refresh gagal tidak menggagalkan export
	require.NoError(t, job.RunOnce(context.Background()))
	assert.Equal(t, 1, ref.calls)
}

func TestStartExportSchedulerRejectsBadSpec(t *testing.T) {
	job := &Job{Exporter: emptyExporter(t), Log: zap.NewNop()}
	_, err := StartExportScheduler(context.Background(), "every sometimes", job)
	assert.Error(t, err)
}

// blockingRefresher menahan job di tengah jalan sampai release ditutup.
type blockingRefresher struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (r *blockingRefresher) Refresh(context.Context) error {
	r.once.Do(func() { close(r.started) })
	<-r.release
	return nil
}

func TestSchedulerWaitsForRunningJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ref := &blockingRefresher{started: make(chan struct{}), release: make(chan struct{})}
	job := &Job{Exporter: emptyExporter(t), Refresher: ref, Log: zap.NewNop()}

	stopped, err := StartExportScheduler(ctx, "@every 1s", job)
	require.NoError(t, err)

	select {
	case <-ref.started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}

	cancel()
	select {
	case <-stopped:
		t.Fatal("scheduler reported stopped while a job was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(ref.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after the job finished")
	}
}
