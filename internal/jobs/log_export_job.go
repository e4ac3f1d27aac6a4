package jobs

import (
	"context"
	"time"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"go.uber.org/zap"
)

// LogExportJobName is the scheduler name of the periodic log export
const LogExportJobName = "log_export"

// LogExporter is the part of the audit log service the job needs
type LogExporter interface {
	ExportLog(ctx context.Context) (*service.ExportResult, error)
}

// LogExportJob archives the audit log on a schedule, the same way the export
// button does.
type LogExportJob struct {
	exporter LogExporter
	logger   *zap.Logger
	timeout  time.Duration
}

func NewLogExportJob(exporter LogExporter, logger *zap.Logger, timeout time.Duration) *LogExportJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &LogExportJob{exporter: exporter, logger: logger, timeout: timeout}
}

// Run performs one export. Failures are logged; the next tick tries again.
func (j *LogExportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.exporter.ExportLog(ctx)
	if err != nil {
		j.logger.Error("scheduled log export failed", zap.Error(err))
		return
	}
	if result.Err != nil {
		j.logger.Warn("scheduled log export was not archived",
			zap.String("file", result.FileName),
			zap.Error(result.Err))
		return
	}
	j.logger.Info("scheduled log export archived",
		zap.String("file", result.FileName),
		zap.Int("rows", result.Rows))
}

// RegisterLogExportJob adds the export job to the scheduler
func RegisterLogExportJob(s *Scheduler, exporter LogExporter, cronExpr string, timeout time.Duration, logger *zap.Logger) error {
	job := NewLogExportJob(exporter, logger.Named(LogExportJobName), timeout)
	return s.AddJob(LogExportJobName, cronExpr, job.Run)
}
