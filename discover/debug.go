// +build debug

package discover

import (
	"log"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// newLogger returns a new logger with default options.
func newLogger() *Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Cannot create new logger:", err)
	}
	return &Logger{SugaredLogger: l.Sugar(), module: color.CyanString("discover")}
}

// newFileLogger returns a new logger and also writes the log output to files.
func newFileLogger(files ...string) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = append(cfg.OutputPaths, files...)
	l, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot create new logger:", err)
	}
	return &Logger{SugaredLogger: l.Sugar(), module: color.CyanString("discover")}
}
