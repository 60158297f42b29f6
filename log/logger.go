// Package log builds the process logger and the periodic log tasks.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	rotate "github.com/lestrrat-go/file-rotatelogs"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFilePattern = "qcanvas-%Y-%m-%d.log"

func level(name string) zap.AtomicLevel {
	switch name {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}

func ZapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	lv := level(conf.LogLevel)

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotator, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), lv))
	}
	if !conf.DisableStdoutLog {
		// stderr keeps generated code on stdout clean for redirection
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lv))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return &rotate.RotateLogs{}, fmt.Errorf("directory:%s is not found", dirPath)
	}
	if info.Mode().Perm()&(1<<uint(7)) == 0 {
		return &rotate.RotateLogs{}, fmt.Errorf("%s is not a writable directory", dirPath)
	}
	if rotationMaxDays <= 0 {
		rotationMaxDays = 1
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, logFilePattern),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

// SetZap replaces the global zap logger.
func SetZap(conf *core.Conf) (*zap.Logger, error) {
	logger, err := ZapLogger(conf)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("Starting logger")
	zap.L().Info(fmt.Sprintf("DevMode is %t", conf.DevMode))
	zap.L().Info(fmt.Sprintf("Log rotation max days is %d", conf.LogRotationMaxDays))
	return logger, nil
}
