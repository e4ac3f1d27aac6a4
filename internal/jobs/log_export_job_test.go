package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/jobs"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeExporter struct {
	result   *service.ExportResult
	err      error
	calls    int
	deadline bool
}

func (f *fakeExporter) ExportLog(ctx context.Context) (*service.ExportResult, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.result, f.err
}

func TestLogExportJob_Run(t *testing.T) {
	tests := []struct {
		name      string
		exporter  *fakeExporter
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{
			name:      "archived",
			exporter:  &fakeExporter{result: &service.ExportResult{FileName: "Log_202403140506.csv", Rows: 3}},
			wantLevel: zap.InfoLevel,
			wantMsg:   "scheduled log export archived",
		},
		{
			name: "upload failed",
			exporter: &fakeExporter{result: &service.ExportResult{
				FileName: "Log_202403140506.csv",
				Err:      errors.New("share unavailable"),
			}},
			wantLevel: zap.WarnLevel,
			wantMsg:   "scheduled log export was not archived",
		},
		{
			name:      "queue failed",
			exporter:  &fakeExporter{err: errors.New("queue unavailable")},
			wantLevel: zap.ErrorLevel,
			wantMsg:   "scheduled log export failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			job := jobs.NewLogExportJob(tt.exporter, zap.New(core), 0)

			job.Run()

			assert.Equal(t, 1, tt.exporter.calls)
			assert.True(t, tt.exporter.deadline, "export runs with a timeout")
			entries := logs.FilterMessage(tt.wantMsg).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
		})
	}
}

func TestRegisterLogExportJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	exporter := &fakeExporter{result: &service.ExportResult{}}

	require.NoError(t, jobs.RegisterLogExportJob(s, exporter, "0 0 * * * *", time.Minute, zap.NewNop()))
	assert.Equal(t, []string{jobs.LogExportJobName}, s.JobNames())

	err := jobs.RegisterLogExportJob(s, exporter, "0 0 * * * *", time.Minute, zap.NewNop())
	assert.Error(t, err)
}
