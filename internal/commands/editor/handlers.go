package editorcmd

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/reorder"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

var (
	ErrUnknownBlockType = errors.New("editor command: unknown block type")
	ErrBlockNotFound    = errors.New("editor command: block not found")
	ErrSessionRequired  = errors.New("editor command: session is nil")
)

// Session is the editing surface the handlers drive.
type Session interface {
	Add(blockType, variant string) (string, bool)
	Update(id string, props document.Props) bool
	Commit(label string) bool
	Remove(id string) bool
	Duplicate(id string) (string, bool)
	Move(from, to int) bool
	Drop(drop reorder.Drop) bool
	Undo() bool
	Redo() bool
}

// HandlerSet groups the editor command handlers. The session treats stale or
// unknown block ids as silent no-ops; these handlers report them as
// ErrBlockNotFound (and unknown types as ErrUnknownBlockType) so callers
// dispatching commands can tell the action did nothing.
type HandlerSet struct {
	Add       *commands.Handler[AddBlockCommand]
	Update    *commands.Handler[UpdateBlockCommand]
	Remove    *commands.Handler[RemoveBlockCommand]
	Duplicate *commands.Handler[DuplicateBlockCommand]
	Move      *commands.Handler[MoveBlockCommand]
	Drop      *commands.Handler[DropBlockCommand]
	Undo      *commands.Handler[UndoCommand]
	Redo      *commands.Handler[RedoCommand]
	Commit    *commands.Handler[CommitEditCommand]
}

var (
	_ command.Commander[AddBlockCommand]   = (*commands.Handler[AddBlockCommand])(nil)
	_ command.Commander[DropBlockCommand]  = (*commands.Handler[DropBlockCommand])(nil)
	_ command.Commander[CommitEditCommand] = (*commands.Handler[CommitEditCommand])(nil)
)

// NewHandlerSet binds every editor command to session. Commands that leave
// the document unchanged, such as a drop over nothing or an undo with no
// history, succeed silently; unknown ids and types are reported.
func NewHandlerSet(session Session, logger interfaces.Logger, timeout time.Duration) (*HandlerSet, error) {
	if session == nil {
		return nil, ErrSessionRequired
	}

	return &HandlerSet{
		Add: newHandler("editor.add_block", logger, timeout, func(_ context.Context, msg AddBlockCommand) error {
			id, ok := session.Add(msg.BlockType, msg.Variant)
			if !ok {
				return ErrUnknownBlockType
			}
			if msg.Result != nil {
				msg.Result.ID = id
			}
			return nil
		}),
		Update: newHandler("editor.update_block", logger, timeout, func(_ context.Context, msg UpdateBlockCommand) error {
			if !session.Update(msg.BlockID, msg.Props) {
				return ErrBlockNotFound
			}
			return nil
		}),
		Remove: newHandler("editor.remove_block", logger, timeout, func(_ context.Context, msg RemoveBlockCommand) error {
			if !session.Remove(msg.BlockID) {
				return ErrBlockNotFound
			}
			return nil
		}),
		Duplicate: newHandler("editor.duplicate_block", logger, timeout, func(_ context.Context, msg DuplicateBlockCommand) error {
			id, ok := session.Duplicate(msg.BlockID)
			if !ok {
				return ErrBlockNotFound
			}
			if msg.Result != nil {
				msg.Result.ID = id
			}
			return nil
		}),
		Move: newHandler("editor.move_block", logger, timeout, func(_ context.Context, msg MoveBlockCommand) error {
			session.Move(msg.From, msg.To)
			return nil
		}),
		Drop: newHandler("editor.drop_block", logger, timeout, func(_ context.Context, msg DropBlockCommand) error {
			session.Drop(reorder.Drop{DraggedID: msg.DraggedID, TargetID: msg.TargetID})
			return nil
		}),
		Undo: newHandler("editor.undo", logger, timeout, func(context.Context, UndoCommand) error {
			session.Undo()
			return nil
		}),
		Redo: newHandler("editor.redo", logger, timeout, func(context.Context, RedoCommand) error {
			session.Redo()
			return nil
		}),
		Commit: newHandler("editor.commit_edit", logger, timeout, func(_ context.Context, msg CommitEditCommand) error {
			session.Commit(msg.Label)
			return nil
		}),
	}, nil
}

func newHandler[T command.Message](operation string, logger interfaces.Logger, timeout time.Duration, fn command.CommandFunc[T]) *commands.Handler[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithTelemetry[T](commands.DefaultTelemetry[T](logger)),
	}
	if timeout > 0 {
		opts = append(opts, commands.WithTimeout[T](timeout))
	}
	return commands.NewHandler(fn, opts...)
}
