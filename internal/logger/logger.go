// Package logger builds the zap logger shared by the commands.
package logger

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log sinks and level.
type Config struct {
	Dir        string // empty disables the file sink
	File       string
	Level      string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Stdout     bool
}

var levelMap = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

func getLoggerLevel(lvl string) zapcore.Level {
	if level, ok := levelMap[lvl]; ok {
		return level
	}
	return zapcore.InfoLevel
}

// ValidLevel reports whether lvl names a zap level.
func ValidLevel(lvl string) bool {
	_, ok := levelMap[lvl]
	return ok
}

// TimeEncoder writes timestamps with millisecond precision in local time.
func TimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

// New builds a console-encoded logger writing to a rotating file under
// cfg.Dir and, if cfg.Stdout is set, to stderr. With neither sink it
// returns a no-op logger.
func New(cfg Config) *zap.Logger {
	var sinks []zapcore.WriteSyncer
	if cfg.Dir != "" {
		name := cfg.File
		if name == "" {
			name = "ringqueue.log"
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, name),
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}))
	}
	if cfg.Stdout {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if len(sinks) == 0 {
		return zap.NewNop()
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoder),
		zap.CombineWriteSyncers(sinks...),
		zap.NewAtomicLevelAt(getLoggerLevel(cfg.Level)),
	)
	return zap.New(core, zap.AddCaller())
}

var initOnce sync.Once
var zapLogger = zap.NewNop()
var sugaredLogger = zapLogger.Sugar()

// InitLogger installs the process-wide logger. Only the first call wins.
func InitLogger(logger *zap.Logger) {
	initOnce.Do(func() {
		zapLogger = logger
		sugaredLogger = zapLogger.Sugar()
	})
}

// GetLogger returns the process-wide logger, a no-op logger until
// InitLogger is called.
func GetLogger() *zap.Logger {
	return zapLogger
}

// GetSugar returns the sugared form of GetLogger.
func GetSugar() *zap.SugaredLogger {
	return sugaredLogger
}
