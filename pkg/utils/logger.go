package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "clubops.log"

// InitLogger tees stdout and a rotated JSON file under dir. The file is
// always JSON; stdout switches to the console encoder in debug. An empty
// dir disables the file sink.
func InitLogger(dir string, debug bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level.SetLevel(zap.DebugLevel)
	}

	stdout := zapcore.NewJSONEncoder(encoderConfig(debug))
	if debug {
		stdout = zapcore.NewConsoleEncoder(encoderConfig(debug))
	}
	cores := []zapcore.Core{
		zapcore.NewCore(stdout, zapcore.Lock(os.Stdout), level),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(dir, logFileName),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig(false)),
			zapcore.AddSync(rotated),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func encoderConfig(debug bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}
