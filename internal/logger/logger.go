package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger
var sugar *zap.SugaredLogger

// Options configures the global logger.
type Options struct {
	Service string
	// Env is "dev" for colored console output, anything else for JSON.
	Env   string
	Level string
	// OutputPath is a file path, "stdout" or "stderr". The TUI logs to a
	// file because it owns the terminal.
	OutputPath string
}

// Init initializes the global logger.
func Init(opts Options) error {
	var cfg zap.Config

	if opts.Env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		if opts.OutputPath == "" || opts.OutputPath == "stdout" || opts.OutputPath == "stderr" {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(opts.Level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	out := opts.OutputPath
	if out == "" {
		out = "stdout"
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}

	logger, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	if opts.Service != "" {
		logger = logger.With(zap.String("service", opts.Service))
	}

	Set(logger)

	sugar.Infow("logger initialized",
		"env", opts.Env,
		"level", opts.Level,
	)
	return nil
}

// Set replaces the global logger, e.g. with zap.NewNop() in tests.
func Set(l *zap.Logger) {
	log = l
	sugar = l.Sugar()
}

// L returns the base structured Zap logger.
func L() *zap.Logger {
	if log == nil {
		Set(zap.NewNop())
	}
	return log
}

// S returns the Sugared logger.
func S() *zap.SugaredLogger {
	if sugar == nil {
		Set(zap.NewNop())
	}
	return sugar
}

// Sync flushes any buffered logs (defer this in main()).
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
