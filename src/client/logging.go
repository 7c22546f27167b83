package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/apimgr/cwe/src/client/paths"
)

// LevelTrace is below slog.LevelDebug and logs request and response detail.
const LevelTrace = slog.LevelDebug - 4

// levelOff disables a component entirely.
const levelOff = slog.Level(math.MaxInt32)

// defaultLogLevel applies when CWE_LOG is unset.
const defaultLogLevel = slog.LevelError

// LogConfig holds logging configuration read from the environment.
type LogConfig struct {
	Filter   string // CWE_LOG, e.g. "warn,api=debug"
	File     string // CWE_LOG_FILE; empty logs to stderr
	MaxSize  int    // CWE_LOG_MAX_SIZE in MB (default: 10)
	MaxFiles int    // CWE_LOG_MAX_FILES (default: 5)
}

// GetLogConfig reads the logging environment through v.
func GetLogConfig(v *viper.Viper) LogConfig {
	v.BindEnv("log.filter", "CWE_LOG")
	v.BindEnv("log.file", "CWE_LOG_FILE")
	v.BindEnv("log.max_size", "CWE_LOG_MAX_SIZE")
	v.BindEnv("log.max_files", "CWE_LOG_MAX_FILES")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_files", 5)

	return LogConfig{
		Filter:   v.GetString("log.filter"),
		File:     v.GetString("log.file"),
		MaxSize:  v.GetInt("log.max_size"),
		MaxFiles: v.GetInt("log.max_files"),
	}
}

// logFilter is a parsed CWE_LOG value: a default level plus per-component
// overrides.
type logFilter struct {
	def        slog.Level
	components map[string]slog.Level
}

// parseLogFilter parses comma-separated directives. A bare level sets the
// default; component=level overrides one component.
func parseLogFilter(s string) (*logFilter, error) {
	f := &logFilter{def: defaultLogLevel, components: map[string]slog.Level{}}
	for _, directive := range strings.Split(s, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}
		component, levelName, scoped := strings.Cut(directive, "=")
		if !scoped {
			levelName = component
		}
		level, err := parseLevel(levelName)
		if err != nil {
			return nil, fmt.Errorf("invalid log directive %q: %w", directive, err)
		}
		if !scoped {
			f.def = level
			continue
		}
		component = strings.ToLower(strings.TrimSpace(component))
		if component == "" {
			return nil, fmt.Errorf("invalid log directive %q: empty component", directive)
		}
		f.components[component] = level
	}
	return f, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none":
		return levelOff, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}

// level returns the minimum enabled level for component.
func (f *logFilter) level(component string) slog.Level {
	if l, ok := f.components[component]; ok {
		return l
	}
	return f.def
}

// filterHandler applies a logFilter using the "component" attribute added
// with Logger.With.
type filterHandler struct {
	next      slog.Handler
	filter    *logFilter
	component string
}

func newFilterHandler(next slog.Handler, filter *logFilter) *filterHandler {
	return &filterHandler{next: next, filter: filter}
}

func (h *filterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.filter.level(h.component)
}

func (h *filterHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *filterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			component = a.Value.String()
		}
	}
	return &filterHandler{next: h.next.WithAttrs(attrs), filter: h.filter, component: component}
}

func (h *filterHandler) WithGroup(name string) slog.Handler {
	return &filterHandler{next: h.next.WithGroup(name), filter: h.filter, component: h.component}
}

// replaceLevel names LevelTrace in output.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if level, ok := a.Value.Any().(slog.Level); ok && level <= LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// InitLogging builds the CLI logger. Records go to stderr as text, or as
// JSON to a rotating file when CWE_LOG_FILE is set. The returned closer
// releases the file. On an invalid filter the logger falls back to the
// default level and the error is returned alongside it.
func InitLogging(cfg LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	filter, filterErr := parseLogFilter(cfg.Filter)
	if filterErr != nil {
		filter = &logFilter{def: defaultLogLevel, components: map[string]slog.Level{}}
	}

	opts := &slog.HandlerOptions{Level: LevelTrace, ReplaceAttr: replaceLevel}

	var (
		handler slog.Handler
		closer  io.Closer = nopCloser{}
	)
	if logPath := paths.ResolveLogPath(cfg.File); logPath != "" {
		if err := paths.EnsureFile(logPath); err != nil {
			return slog.New(newFilterHandler(slog.NewTextHandler(stderr, opts), filter)), closer,
				fmt.Errorf("create log dir: %w", err)
		}
		maxSize := cfg.MaxSize
		if maxSize <= 0 {
			maxSize = 10
		}
		maxFiles := cfg.MaxFiles
		if maxFiles <= 0 {
			maxFiles = 5
		}
		rotating := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSize, // MB
			MaxBackups: maxFiles,
			MaxAge:     30, // days
			Compress:   true,
		}
		handler = slog.NewJSONHandler(rotating, opts)
		closer = rotating
	} else {
		handler = slog.NewTextHandler(stderr, opts)
	}

	return slog.New(newFilterHandler(handler, filter)), closer, filterErr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
