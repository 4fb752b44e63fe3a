package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	rootModule     = "localize"
	catalogModule  = "localize.catalog"
	importerModule = "localize.importer"
	httpModule     = "localize.http"
	storageModule  = "localize.storage"
)

// Logger is the leveled logging contract used across the service. It mirrors
// the interface exposed by github.com/goliatone/go-logger so the base logger
// plugs in without adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// Config captures the options exposed by the go-logger provider.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// NewProvider constructs the root logger backed by go-logger.
func NewProvider(cfg Config) (*glog.BaseLogger, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return glog.NewLogger(options...), nil
}

// ModuleLogger returns a module-scoped child logger, defaulting to a no-op
// implementation when no root is supplied.
func ModuleLogger(root *glog.BaseLogger, module string) Logger {
	if module == "" {
		module = rootModule
	}
	if root == nil {
		return NoOp()
	}
	return root.GetLogger(module)
}

// CatalogLogger returns the namespace reserved for the catalog service.
func CatalogLogger(root *glog.BaseLogger) Logger {
	return ModuleLogger(root, catalogModule)
}

// ImporterLogger returns the namespace reserved for bulk imports.
func ImporterLogger(root *glog.BaseLogger) Logger {
	return ModuleLogger(root, importerModule)
}

// HTTPLogger returns the namespace reserved for the HTTP surface.
func HTTPLogger(root *glog.BaseLogger) Logger {
	return ModuleLogger(root, httpModule)
}

// StorageLogger returns the namespace reserved for storage bootstrap.
func StorageLogger(root *glog.BaseLogger) Logger {
	return ModuleLogger(root, storageModule)
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return ""
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
