package main

import (
	"fmt"
	"os"

	"github.com/wurstmineberg/bitbar-server-status/internal/config"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MustCreateLogger builds the process logger. Logs never go to stdout since
// that is where the menu is written.
func MustCreateLogger(env config.Env, paths config.Paths) *zap.Logger {
	var loggingConfig zap.Config

	if env.LogLevel == "debug" {
		loggingConfig = zap.NewDevelopmentConfig()
		loggingConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		loggingConfig = zap.NewProductionConfig()
		loggingConfig.DisableCaller = true
	}

	loggingConfig.OutputPaths = []string{"stderr"}
	loggingConfig.ErrorOutputPaths = []string{"stderr"}

	if env.DebugLogEnabled {
		if errMkdir := os.MkdirAll(paths.CacheDir(), 0o755); errMkdir != nil {
			panic(fmt.Sprintf("Failed to create log directory: %v", errMkdir))
		}

		if util.Exists(paths.LogFile()) {
			if err := os.Remove(paths.LogFile()); err != nil {
				panic(fmt.Sprintf("Failed to remove log file: %v", err))
			}
		}

		loggingConfig.OutputPaths = append(loggingConfig.OutputPaths, paths.LogFile())
	}

	level, errLevel := zap.ParseAtomicLevel(env.LogLevel)
	if errLevel != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", errLevel))
	}

	loggingConfig.Level.SetLevel(level.Level())

	l, errLogger := loggingConfig.Build()
	if errLogger != nil {
		panic("Failed to create log config")
	}

	return l.Named("wurstmineberg")
}
