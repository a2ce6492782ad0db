package editorcmd

import (
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout bounds every handler execution.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// RegisterEditorCommands builds the editor handlers and registers them with
// reg when one is given.
func RegisterEditorCommands(reg CommandRegistry, session Session, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set, err := NewHandlerSet(session, logging.CommandLogger(provider), cfg.timeout)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return set, nil
	}
	for _, handler := range set.all() {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Subscribe attaches every handler to the global dispatcher and returns a
// func that detaches them.
func (s *HandlerSet) Subscribe() func() {
	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand(s.Add),
		dispatcher.SubscribeCommand(s.Update),
		dispatcher.SubscribeCommand(s.Remove),
		dispatcher.SubscribeCommand(s.Duplicate),
		dispatcher.SubscribeCommand(s.Move),
		dispatcher.SubscribeCommand(s.Drop),
		dispatcher.SubscribeCommand(s.Undo),
		dispatcher.SubscribeCommand(s.Redo),
		dispatcher.SubscribeCommand(s.Commit),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}

func (s *HandlerSet) all() []any {
	return []any{s.Add, s.Update, s.Remove, s.Duplicate, s.Move, s.Drop, s.Undo, s.Redo, s.Commit}
}
