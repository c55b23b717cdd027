// file:artkv/pkg/x_log/x_log.go

// Package x_log configures the process-wide zerolog logger: styled console
// output, optional rotating file output and per-module child loggers.
package x_log

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

//---------------------
// Levels
//---------------------

type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(s string) Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return InfoLevel
	}
	return lvl
}

//---------------------
// Initialization
//---------------------

// Init loads the config from XLOG_CONFIG or ./xlog.json and installs it.
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		c := defaultConfig
		cfg = &c
	}
	InitWithConfig(cfg, "")
	if err != nil {
		log.Warn().Err(err).Msg("log config ignored")
	}
}

// InitWithConfig installs cfg as the global logger. A non-empty module is
// attached to every entry.
func InitWithConfig(cfg *Config, module string) {
	applyDefaults(cfg)
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	var writers []io.Writer
	if cfg.ToConsole || !cfg.ToFile {
		styles := DefaultStylesByName(cfg.Style)
		styles.Out = os.Stderr
		cw := ConsoleWriterWithStyles(styles)
		cw.NoColor = !isTerminal(os.Stderr)
		writers = append(writers, cw)
	}
	if cfg.ToFile {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		if cfg.ColoredFile {
			styles := DefaultStylesByName(cfg.Style)
			styles.Out = file
			writers = append(writers, ConsoleWriterWithStyles(styles))
		} else {
			writers = append(writers, file)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if module != "" {
		ctx = ctx.Str("module", module)
	}
	log.Logger = ctx.Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

//---------------------
// Scoped Loggers
//---------------------

// New returns a child of the global logger tagged with module.
func New(module string) zerolog.Logger {
	return log.Logger.With().Str("module", module).Logger()
}

type ctxKey struct{}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx, or the global logger.
func From(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}

//---------------------
// Shortcuts
//---------------------

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
