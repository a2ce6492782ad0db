// Package logging resolves module scoped loggers from an optional provider.
// Every helper degrades to a no-op logger so services can run without any
// logging configured.
package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

const (
	rootModule        = "pagekit"
	editorModule      = "pagekit.editor"
	persistenceModule = "pagekit.persistence"
	storageModule     = "pagekit.storage"
	commandsModule    = "pagekit.commands"
	registryModule    = "pagekit.schema"
)

// ModuleLogger returns a logger for module, tagged with a "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// EditorLogger returns the logger namespace used by editing sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// PersistenceLogger returns the logger namespace used by the save/load coordinator.
func PersistenceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, persistenceModule)
}

// StorageLogger returns the logger namespace used by cache and remote store adapters.
func StorageLogger(provider interfaces.LoggerProvider, backend string) interfaces.Logger {
	logger := ModuleLogger(provider, storageModule)
	if backend = strings.TrimSpace(backend); backend != "" {
		logger = WithFields(logger, map[string]any{"backend": backend})
	}
	return logger
}

// CommandLogger returns the logger namespace used by command handlers.
func CommandLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return WithFields(ModuleLogger(provider, commandsModule), map[string]any{
		"component": "command",
	})
}

// RegistryLogger returns the logger namespace used by the schema registry.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// WithFields attaches structured fields when the logger supports
// interfaces.FieldsLogger; otherwise the logger is returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// Ensure returns logger, or a no-op logger when it is nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
