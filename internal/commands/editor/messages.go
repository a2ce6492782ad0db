package editorcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	addBlockMessageType       = "pagekit.editor.add_block"
	updateBlockMessageType    = "pagekit.editor.update_block"
	removeBlockMessageType    = "pagekit.editor.remove_block"
	duplicateBlockMessageType = "pagekit.editor.duplicate_block"
	moveBlockMessageType      = "pagekit.editor.move_block"
	dropBlockMessageType      = "pagekit.editor.drop_block"
	undoMessageType           = "pagekit.editor.undo"
	redoMessageType           = "pagekit.editor.redo"
	commitEditMessageType     = "pagekit.editor.commit_edit"
)

const maxLabelLength = 64

// BlockResult receives the id of a block created by a command.
type BlockResult struct {
	ID string
}

// AddBlockCommand appends a block of BlockType. An empty Variant selects the
// type's default variant.
type AddBlockCommand struct {
	BlockType string       `json:"type"`
	Variant   string       `json:"variant,omitempty"`
	Result    *BlockResult `json:"-"`
}

func (AddBlockCommand) Type() string { return addBlockMessageType }

func (cmd AddBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlockType, validation.Required, validation.By(notBlank("pagekit.editor.add_block.type_required", "block type is required"))),
	)
}

// UpdateBlockCommand replaces the props of BlockID.
type UpdateBlockCommand struct {
	BlockID string         `json:"block_id"`
	Props   map[string]any `json:"props"`
}

func (UpdateBlockCommand) Type() string { return updateBlockMessageType }

func (cmd UpdateBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlockID, validation.Required),
		validation.Field(&cmd.Props, validation.NotNil),
	)
}

type RemoveBlockCommand struct {
	BlockID string `json:"block_id"`
}

func (RemoveBlockCommand) Type() string { return removeBlockMessageType }

func (cmd RemoveBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlockID, validation.Required),
	)
}

type DuplicateBlockCommand struct {
	BlockID string       `json:"block_id"`
	Result  *BlockResult `json:"-"`
}

func (DuplicateBlockCommand) Type() string { return duplicateBlockMessageType }

func (cmd DuplicateBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlockID, validation.Required),
	)
}

// MoveBlockCommand moves the block at From to index To.
type MoveBlockCommand struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (MoveBlockCommand) Type() string { return moveBlockMessageType }

func (cmd MoveBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.From, validation.Min(0)),
		validation.Field(&cmd.To, validation.Min(0)),
	)
}

// DropBlockCommand carries a finished drag. An empty TargetID is a drop
// over nothing and is accepted as a no-op.
type DropBlockCommand struct {
	DraggedID string `json:"dragged_id"`
	TargetID  string `json:"target_id,omitempty"`
}

func (DropBlockCommand) Type() string { return dropBlockMessageType }

func (cmd DropBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DraggedID, validation.Required),
	)
}

type UndoCommand struct{}

func (UndoCommand) Type() string { return undoMessageType }

func (UndoCommand) Validate() error { return nil }

type RedoCommand struct{}

func (RedoCommand) Type() string { return redoMessageType }

func (RedoCommand) Validate() error { return nil }

// CommitEditCommand records pending prop edits as one history entry.
type CommitEditCommand struct {
	Label string `json:"label,omitempty"`
}

func (CommitEditCommand) Type() string { return commitEditMessageType }

func (cmd CommitEditCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Label, validation.Length(0, maxLabelLength)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
