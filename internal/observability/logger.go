package observability

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MarcusGale/LLM-Router/config"
	"github.com/MarcusGale/LLM-Router/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger from cfg. Output goes to stderr and,
// when cfg.LogFile is set, to a size-rotated file as well. The returned
// closer releases that file; it is nil when no file was opened.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	encoder, err := newEncoder(cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	var file io.Closer
	if cfg.LogFile != "" {
		rotating := RotatingFile(cfg)
		file = rotating

		// The file copy is always JSON so it can be shipped as-is
		fileEncoder, _ := newEncoder("json")
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotating), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), file, nil
}

// RotatingFile returns the lumberjack writer for cfg.LogFile
func RotatingFile(cfg config.ObservabilityConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB, // megabytes
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays, // days
		Compress:   cfg.LogCompress,
	}
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encCfg), nil
	case "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// FromContext returns logger annotated with the request ID carried by ctx,
// if any. The ID is resolved the same way the HTTP handlers resolve it.
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if reqID := middleware.GetRequestIDFromContext(ctx); reqID != "" {
		return logger.With(zap.String("request_id", reqID))
	}
	return logger
}
