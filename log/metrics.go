package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"
)

const MetricsLogTaskName = "metrics_log"

// MetricsLogTaskImpl writes the session counters, and events reported through
// Event, as JSON lines into one file per day.
type MetricsLogTaskImpl struct {
	FileDir string
	Source  core.StatsSource

	mu     sync.Mutex
	dl     *dailyLogger
	logger *slog.Logger

	core.DefaultTaskImpl
}

func NewMetricsLogTask(fileDir string, source core.StatsSource) *MetricsLogTaskImpl {
	return &MetricsLogTaskImpl{FileDir: fileDir, Source: source}
}

// Setup opens the metrics file. Calling it again is a no-op until Cleanup.
func (m *MetricsLogTaskImpl) Setup() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dl != nil {
		return nil
	}
	if err := common.IsDirWritable(m.FileDir); err != nil {
		err = fmt.Errorf("failed to write to %s: %w", m.FileDir, err)
		zap.L().Error("failed to set up metrics log task", zap.Error(err))
		return err
	}
	m.dl = newDailyLogger(m.FileDir)
	m.logger = slog.New(slog.NewJSONHandler(m.dl, nil))
	return nil
}

// RequirePeriodUpdate follows [metrics] period_sec.
func (m *MetricsLogTaskImpl) RequirePeriodUpdate() (bool, time.Duration) {
	sec := core.GetGlobalSetting().Metrics.PeriodSec
	if sec <= 0 {
		return false, 0
	}
	return true, time.Duration(sec) * time.Second
}

func (m *MetricsLogTaskImpl) Task() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logger == nil || m.Source == nil {
		return
	}
	st := m.Source.Stats()
	m.logger.Info(
		"Metrics",
		slog.Int64("edits", st.Edits),
		slog.Int64("exports", st.Exports),
		slog.Int64("imports", st.Imports),
		slog.Int64("simulations", st.Simulations),
		slog.Int64("saves", st.Saves),
		slog.Int64("loads", st.Loads),
	)
}

// Event records one export, import or simulation. It is a no-op before Setup.
func (m *MetricsLogTaskImpl) Event(name string, args ...any) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logger == nil {
		return
	}
	m.logger.Info("Event", append([]any{slog.String("name", name)}, args...)...)
}

func (m *MetricsLogTaskImpl) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dl != nil {
		m.dl.Close()
		m.dl = nil
		m.logger = nil
	}
}

type dailyLogger struct {
	mu              sync.Mutex
	fileDir         string
	currentFileName string
	file            *os.File
	now             func() time.Time
}

func newDailyLogger(fileDir string) *dailyLogger {
	return &dailyLogger{
		fileDir: fileDir,
		now:     time.Now,
	}
}

func metricsFileName(t time.Time) string {
	return fmt.Sprintf("metrics-%s.log", t.Format("2006-01-02"))
}

func (dl *dailyLogger) Write(p []byte) (n int, err error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	fileName := metricsFileName(dl.now())
	if dl.file == nil || dl.currentFileName != fileName {
		if dl.file != nil {
			dl.file.Close()
		}
		var err error
		dl.file, err = os.OpenFile(filepath.Join(dl.fileDir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return 0, err
		}
		dl.currentFileName = fileName
	}

	return dl.file.Write(p)
}

func (dl *dailyLogger) Close() error {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		err := dl.file.Close()
		dl.file = nil
		return err
	}
	return nil
}
