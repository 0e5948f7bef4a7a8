// Package logger wraps zap for structured logging.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log     *zap.Logger
	once    sync.Once
	file    *os.File
	logFile = "" // no file log unless set
	level   = zap.NewAtomicLevelAt(zap.InfoLevel)

	// Console logs go to stderr; stdout carries the program output.
	console io.Writer = os.Stderr
)

// InitLogger initializes the Zap logger with structured logging.
func InitLogger() {
	once.Do(func() {
		// Configure console logging
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores := []zapcore.Core{
			zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(console)), level),
		}

		// Configure file logging
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				file = f
				fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
				cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(f), level))
			}
		}

		// Combine both outputs (console + file)
		log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
		if file == nil && logFile != "" {
			log.Warn("Failed to open log file, logging to console only", zap.String("path", logFile))
		}
	})
}

// SetLogPath sets the JSON log file. It takes effect on the next InitLogger.
func SetLogPath(path string) {
	logFile = path
}

// SetOutput redirects console logs. It takes effect on the next InitLogger.
func SetOutput(w io.Writer) {
	console = w
}

// SetLevel changes the minimum level of the running logger.
func SetLevel(name string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

// ResetLogger discards the current logger so the next call rebuilds it.
func ResetLogger() {
	Sync()
	if file != nil {
		_ = file.Close()
		file = nil
	}
	log = nil
	once = sync.Once{}
}

// GetLogger provides access to the initialized logger.
func GetLogger() *zap.Logger {
	if log == nil {
		InitLogger()
	}
	return log
}

// Sync ensures buffered logs are written before the application exits.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
